package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huertohogar/storefront-checkout/internal/cart"
)

func TestCost_ThresholdBoundaryIsInclusive(t *testing.T) {
	e := NewEvaluator(25000, 2990)

	assert.Equal(t, int64(0), e.Cost(25000, nil), "exactly at threshold qualifies")
	assert.Equal(t, int64(2990), e.Cost(24999, nil), "one unit below pays the standard rate")
	assert.Equal(t, int64(0), e.Cost(30000, nil))
}

func TestCost_WaiverCoupon(t *testing.T) {
	e := NewEvaluator(25000, 2990)
	waiver := &cart.AppliedCoupon{Code: "ENVIOGRATIS", Fraction: 0, FreeShipping: true}
	discount := &cart.AppliedCoupon{Code: "HUERTO10", Fraction: 0.10}

	assert.Equal(t, int64(0), e.Cost(2000, waiver))
	assert.Equal(t, int64(2990), e.Cost(2000, discount), "discount coupons do not waive shipping")
}

func TestAmountRemaining(t *testing.T) {
	e := NewEvaluator(25000, 2990)

	assert.Equal(t, int64(23200), e.AmountRemaining(1800))
	assert.Equal(t, int64(0), e.AmountRemaining(25000))
	assert.Equal(t, int64(0), e.AmountRemaining(99999))
}
