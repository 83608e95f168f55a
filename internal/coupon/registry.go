package coupon

// Discount describes what a coupon code grants. Fraction is in [0,1); a zero
// fraction with FreeShipping set is a shipping-waiver-only coupon.
type Discount struct {
	Fraction     float64
	FreeShipping bool
}

// Registry resolves a normalized coupon code to its discount. Implementations
// may be static or remote; the Engine contract does not change.
type Registry interface {
	Lookup(code string) (Discount, bool)
}

// StaticRegistry is the build-time coupon catalog.
type StaticRegistry map[string]Discount

func (r StaticRegistry) Lookup(code string) (Discount, bool) {
	d, ok := r[code]
	return d, ok
}

// DefaultRegistry holds the storefront's active codes.
func DefaultRegistry() StaticRegistry {
	return StaticRegistry{
		"HUERTO10":     {Fraction: 0.10},
		"BIENVENIDO15": {Fraction: 0.15},
		"ENVIOGRATIS":  {Fraction: 0, FreeShipping: true},
	}
}
