package catalog

// Source is a read-only provider of catalog products. The checkout core only
// ever reads from it.
type Source interface {
	// Get returns the product with the given id, or (nil, false) when absent.
	Get(id string) (*Product, bool)
	// List returns all products in display order.
	List() []Product
}

// StaticSource serves a fixed, normalized product list from memory.
type StaticSource struct {
	products []Product
	byID     map[string]int
}

// NewStaticSource normalizes raw records and indexes them by id.
func NewStaticSource(records []RawRecord) *StaticSource {
	s := &StaticSource{
		products: make([]Product, 0, len(records)),
		byID:     make(map[string]int, len(records)),
	}
	for _, r := range records {
		p := Normalize(r)
		s.byID[p.ID] = len(s.products)
		s.products = append(s.products, p)
	}
	return s
}

func (s *StaticSource) Get(id string) (*Product, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	p := s.products[idx]
	return &p, true
}

func (s *StaticSource) List() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// DefaultCatalog is the built-in storefront assortment.
func DefaultCatalog() *StaticSource {
	offer := func(v int64) *int64 { return &v }
	return NewStaticSource([]RawRecord{
		{ID: "FR001", Nombre: "Manzanas Fuji", Precio: 1200, Unidad: "kg", Stock: 150, Categoria: "frutas", Imagen: "manzanas-fuji.jpg"},
		{ID: "FR002", Nombre: "Naranjas Valencia", Precio: 1000, Unidad: "kg", Stock: 200, Categoria: "frutas", Imagen: "naranjas-valencia.jpg"},
		{ID: "FR003", Nombre: "Plátanos Cavendish", Precio: 800, PrecioOferta: offer(690), Descuento: 14, Unidad: "kg", Stock: 250, Categoria: "frutas", Imagen: "platanos.jpg"},
		{ID: "VR001", Nombre: "Zanahorias Orgánicas", Precio: 900, Unidad: "kg", Stock: 100, Categoria: "verduras", Imagen: "zanahorias.jpg"},
		{ID: "VR002", Nombre: "Espinacas Frescas", Precio: 700, Unidad: "bolsa 500g", Stock: 80, Categoria: "verduras", Imagen: "espinacas.jpg"},
		{ID: "VR003", Nombre: "Pimientos Tricolores", Precio: 1500, PrecioOferta: offer(1290), Descuento: 14, Unidad: "bandeja", Stock: 120, Categoria: "verduras", Imagen: "pimientos.jpg"},
		{ID: "PO001", Nombre: "Miel Orgánica", Precio: 5000, Unidad: "frasco 500g", Stock: 50, Categoria: "organicos", Imagen: "miel.jpg"},
		{ID: "PO003", Nombre: "Quinua Orgánica", Precio: 4500, PrecioOferta: offer(3990), Descuento: 11, Unidad: "bolsa 1kg", Stock: 60, Categoria: "organicos", Imagen: "quinua.jpg"},
		{ID: "PL001", Nombre: "Leche Entera", Precio: 1200, Unidad: "litro", Stock: 90, Categoria: "lacteos", Imagen: "leche.jpg"},
	})
}
