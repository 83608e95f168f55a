package shipping

import "github.com/huertohogar/storefront-checkout/internal/cart"

// Evaluator decides shipping cost from the post-discount subtotal and the
// applied coupon. It holds the configured free-shipping threshold and the
// flat standard rate; both are whole CLP units.
type Evaluator struct {
	Threshold    int64
	StandardRate int64
}

// NewEvaluator returns an evaluator with the given threshold and rate.
func NewEvaluator(threshold, standardRate int64) Evaluator {
	return Evaluator{Threshold: threshold, StandardRate: standardRate}
}

// Cost returns 0 when the post-discount subtotal reaches the threshold
// (inclusive) or the coupon waives shipping; otherwise the standard rate.
func (e Evaluator) Cost(subtotalAfterCoupon int64, coupon *cart.AppliedCoupon) int64 {
	if subtotalAfterCoupon >= e.Threshold {
		return 0
	}
	if coupon != nil && coupon.FreeShipping {
		return 0
	}
	return e.StandardRate
}

// AmountRemaining is how much more the customer must add to reach free
// shipping. Display-only; never negative.
func (e Evaluator) AmountRemaining(subtotalAfterCoupon int64) int64 {
	if subtotalAfterCoupon >= e.Threshold {
		return 0
	}
	return e.Threshold - subtotalAfterCoupon
}
