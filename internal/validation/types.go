package validation

// AddItemRequest is the payload for POST /cart/items.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"` // defaults to 1 when omitted
}

// UpdateQuantityRequest is the payload for PUT /cart/items/:id.
// Zero and negative quantities are valid input: they remove the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ApplyCouponRequest is the payload for POST /cart/coupon. The code itself is
// validated by the coupon engine so blank input gets its own message.
type ApplyCouponRequest struct {
	Code string `json:"code"`
}
