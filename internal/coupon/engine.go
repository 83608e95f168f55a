package coupon

import (
	"errors"
	"strings"

	"github.com/huertohogar/storefront-checkout/internal/cart"
)

var (
	// ErrCodeRequired is returned for empty or blank input, before lookup.
	ErrCodeRequired = errors.New("ingresa un código de cupón")
	// ErrInvalidCode is returned when the code is not in the registry.
	ErrInvalidCode = errors.New("cupón inválido o expirado")
)

// Engine validates coupon codes against a registry and applies them to the
// cart. At most one coupon is applied at a time; applying a new valid code
// replaces the previous one.
type Engine struct {
	registry Registry
	cart     *cart.Store
}

// NewEngine binds an engine to a registry and the cart it mutates.
func NewEngine(registry Registry, c *cart.Store) *Engine {
	return &Engine{registry: registry, cart: c}
}

// Apply normalizes the code (trim, uppercase) and looks it up. On a match the
// coupon is attached to the cart, replacing any existing one. On failure the
// cart's coupon state is unchanged and a user-facing error is returned.
func (e *Engine) Apply(code string) (cart.AppliedCoupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return cart.AppliedCoupon{}, ErrCodeRequired
	}
	d, ok := e.registry.Lookup(normalized)
	if !ok {
		return cart.AppliedCoupon{}, ErrInvalidCode
	}
	applied := cart.AppliedCoupon{
		Code:         normalized,
		Fraction:     d.Fraction,
		FreeShipping: d.FreeShipping,
	}
	e.cart.SetCoupon(applied)
	return applied, nil
}

// Remove clears the applied coupon unconditionally.
func (e *Engine) Remove() {
	e.cart.RemoveCoupon()
}

// DiscountAmount is the coupon discount against the current cart subtotal.
func (e *Engine) DiscountAmount() int64 {
	return e.cart.DiscountAmount()
}

// SubtotalAfterCoupon is the cart subtotal minus the coupon discount.
func (e *Engine) SubtotalAfterCoupon() int64 {
	return e.cart.SubtotalAfterCoupon()
}
