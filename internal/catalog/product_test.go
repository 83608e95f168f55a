package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_PrefersCanonicalFields(t *testing.T) {
	offer := int64(500)
	p := Normalize(RawRecord{
		ID:         "X1",
		Name:       "Apples",
		Nombre:     "Manzanas",
		Price:      1000,
		Precio:     900,
		OfferPrice: &offer,
		Unit:       "kg",
		Unidad:     "caja",
		Stock:      10,
	})

	assert.Equal(t, "Apples", p.Name)
	assert.Equal(t, int64(1000), p.Price)
	assert.Equal(t, "kg", p.Unit)
	require.NotNil(t, p.OfferPrice)
	assert.Equal(t, int64(500), *p.OfferPrice)
}

func TestNormalize_FallsBackToSpanishAliases(t *testing.T) {
	oferta := int64(690)
	p := Normalize(RawRecord{
		ID:           "FR003",
		Nombre:       "Plátanos Cavendish",
		Precio:       800,
		PrecioOferta: &oferta,
		Descuento:    14,
		Unidad:       "kg",
		Imagen:       "platanos.jpg",
		Categoria:    "frutas",
		Stock:        250,
	})

	assert.Equal(t, "Plátanos Cavendish", p.Name)
	assert.Equal(t, int64(800), p.Price)
	assert.Equal(t, 14, p.DiscountPercent)
	assert.Equal(t, "kg", p.Unit)
	assert.Equal(t, "platanos.jpg", p.Image)
	assert.Equal(t, "frutas", p.Category)
	require.True(t, p.HasOffer())
	assert.Equal(t, int64(690), p.EffectivePrice())
}

func TestNormalize_DropsInactiveOffer(t *testing.T) {
	tooHigh := int64(1200)
	p := Normalize(RawRecord{ID: "X2", Nombre: "Miel", Precio: 1000, PrecioOferta: &tooHigh})

	assert.Nil(t, p.OfferPrice, "offer >= price is not an active offer")
	assert.False(t, p.HasOffer())
	assert.Equal(t, int64(1000), p.EffectivePrice())
}

func TestStaticSource_GetAndList(t *testing.T) {
	src := DefaultCatalog()

	p, ok := src.Get("FR003")
	require.True(t, ok)
	assert.Equal(t, "Plátanos Cavendish", p.Name)
	require.True(t, p.HasOffer())
	assert.Less(t, *p.OfferPrice, p.Price, "active offers are always below list price")

	_, ok = src.Get("NOPE")
	assert.False(t, ok)

	list := src.List()
	assert.NotEmpty(t, list)
	for _, item := range list {
		if item.HasOffer() {
			assert.Less(t, *item.OfferPrice, item.Price, "catalog invariant: offer < price for %s", item.ID)
		}
	}
}
