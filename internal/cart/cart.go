package cart

import (
	"math"
	"sync"

	"github.com/huertohogar/storefront-checkout/internal/catalog"
)

// LineItem is a single cart entry: a product reference plus the quantity and
// the price snapshot taken when the product was first added. Price changes
// after that moment do not affect existing lines.
type LineItem struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Unit       string `json:"unit,omitempty"`
	Image      string `json:"image,omitempty"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	OfferPrice *int64 `json:"offer_price,omitempty"`
}

// EffectiveUnitPrice is the offer snapshot when present, else the list price.
func (li LineItem) EffectiveUnitPrice() int64 {
	if li.OfferPrice != nil {
		return *li.OfferPrice
	}
	return li.UnitPrice
}

// LineTotal is the price contribution of this line.
func (li LineItem) LineTotal() int64 {
	return li.EffectiveUnitPrice() * int64(li.Quantity)
}

// AppliedCoupon is the at-most-one coupon attached to the cart. A zero
// Fraction together with FreeShipping marks a shipping-waiver-only coupon.
type AppliedCoupon struct {
	Code         string  `json:"code"`
	Fraction     float64 `json:"fraction"`
	FreeShipping bool    `json:"free_shipping"`
}

// Store owns the single in-process cart. All mutation goes through its
// methods so the quantity and total invariants are enforced in one place.
// Handlers run concurrently, hence the mutex, but the logical model is one
// cart with last-writer-wins mutation order.
type Store struct {
	mu     sync.Mutex
	items  []LineItem
	open   bool
	coupon *AppliedCoupon
}

// NewStore returns an empty, closed cart.
func NewStore() *Store {
	return &Store{}
}

// AddItem inserts a line for the product or, when a line with the same
// product id exists, increments its quantity by qty. Quantities below 1 are
// treated as 1. If the product has an active offer the offer price is
// snapshotted now. The cart surface is marked open as a side effect.
func (s *Store) AddItem(p catalog.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == p.ID {
			s.items[i].Quantity += qty
			s.open = true
			return
		}
	}

	li := LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Unit:      p.Unit,
		Image:     p.Image,
		Quantity:  qty,
		UnitPrice: p.Price,
	}
	if p.HasOffer() {
		v := *p.OfferPrice
		li.OfferPrice = &v
	}
	s.items = append(s.items, li)
	s.open = true
}

// RemoveItem deletes the line with the given product id. Unknown ids are a
// silent no-op so stale UI events (double clicks) cause no errors.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
}

func (s *Store) removeLocked(productID string) {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line's quantity to exactly qty. A qty of zero or
// less removes the line entirely; a quantity of zero is never stored.
// Unknown ids are a silent no-op.
func (s *Store) UpdateQuantity(productID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if qty <= 0 {
		s.removeLocked(productID)
		return
	}
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = qty
			return
		}
	}
}

// Clear empties all line items. The open flag and any applied coupon are
// left untouched; the coupon persists until explicitly removed.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// ToggleOpen flips the cart surface visibility flag.
func (s *Store) ToggleOpen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
}

// Open marks the cart surface visible.
func (s *Store) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
}

// Close marks the cart surface hidden.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

// IsOpen reports the cart surface visibility flag.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItemCount is the sum of all line quantities.
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, li := range s.items {
		total += li.Quantity
	}
	return total
}

// Subtotal is the pre-coupon subtotal: Σ effective unit price × quantity.
func (s *Store) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, li := range s.items {
		total += li.LineTotal()
	}
	return total
}

// SetCoupon attaches a coupon, replacing any existing one.
func (s *Store) SetCoupon(c AppliedCoupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupon = &c
}

// RemoveCoupon detaches the coupon unconditionally.
func (s *Store) RemoveCoupon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupon = nil
}

// Coupon returns the applied coupon, or nil.
func (s *Store) Coupon() *AppliedCoupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coupon == nil {
		return nil
	}
	c := *s.coupon
	return &c
}

// DiscountAmount is round(subtotal × coupon fraction); zero without a coupon
// or for shipping-waiver-only coupons.
func (s *Store) DiscountAmount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coupon == nil || s.coupon.Fraction == 0 {
		return 0
	}
	var subtotal int64
	for _, li := range s.items {
		subtotal += li.LineTotal()
	}
	return int64(math.Round(float64(subtotal) * s.coupon.Fraction))
}

// SubtotalAfterCoupon is the subtotal minus the coupon discount.
func (s *Store) SubtotalAfterCoupon() int64 {
	return s.Subtotal() - s.DiscountAmount()
}
