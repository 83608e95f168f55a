package catalog

// Product is the canonical internal shape for a catalog item. External
// records are normalized into this shape at the boundary; everything past
// the catalog package relies on these fields only.
type Product struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Price           int64  `json:"price"` // whole CLP units
	OfferPrice      *int64 `json:"offer_price,omitempty"`
	DiscountPercent int    `json:"discount_percent,omitempty"`
	Unit            string `json:"unit,omitempty"` // e.g. "kg", "unidad", "malla 1kg"
	Stock           int    `json:"stock"`
	Image           string `json:"image,omitempty"`
	Category        string `json:"category,omitempty"`
}

// HasOffer reports whether an offer price is active. An offer equal to or
// above the list price is treated as inactive.
func (p Product) HasOffer() bool {
	return p.OfferPrice != nil && *p.OfferPrice < p.Price
}

// EffectivePrice is the price a new cart line would snapshot right now.
func (p Product) EffectivePrice() int64 {
	if p.HasOffer() {
		return *p.OfferPrice
	}
	return p.Price
}

// RawRecord carries a product as delivered by external sources, which are
// inconsistent about field naming (English and Spanish variants coexist).
type RawRecord struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Nombre          string `json:"nombre"`
	Price           int64  `json:"price"`
	Precio          int64  `json:"precio"`
	OfferPrice      *int64 `json:"offer_price"`
	PrecioOferta    *int64 `json:"precioOferta"`
	DiscountPercent int    `json:"discount_percent"`
	Descuento       int    `json:"descuento"`
	Unit            string `json:"unit"`
	Unidad          string `json:"unidad"`
	Stock           int    `json:"stock"`
	Image           string `json:"image"`
	Imagen          string `json:"imagen"`
	Category        string `json:"category"`
	Categoria       string `json:"categoria"`
}

// Normalize maps a raw external record into the canonical Product shape,
// preferring the canonical field and falling back to the Spanish alias.
// Inactive offers (offer >= price) are dropped.
func Normalize(r RawRecord) Product {
	p := Product{
		ID:              r.ID,
		Name:            firstNonEmpty(r.Name, r.Nombre),
		Price:           firstPositive(r.Price, r.Precio),
		DiscountPercent: firstPositiveInt(r.DiscountPercent, r.Descuento),
		Unit:            firstNonEmpty(r.Unit, r.Unidad),
		Stock:           r.Stock,
		Image:           firstNonEmpty(r.Image, r.Imagen),
		Category:        firstNonEmpty(r.Category, r.Categoria),
	}
	offer := r.OfferPrice
	if offer == nil {
		offer = r.PrecioOferta
	}
	if offer != nil && *offer > 0 && *offer < p.Price {
		v := *offer
		p.OfferPrice = &v
	}
	return p
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func firstPositive(a, b int64) int64 {
	if a > 0 {
		return a
	}
	return b
}

func firstPositiveInt(a, b int) int {
	if a > 0 {
		return a
	}
	return b
}
