package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/huertohogar/storefront-checkout/internal/auth"
	"github.com/huertohogar/storefront-checkout/internal/cart"
	"github.com/huertohogar/storefront-checkout/internal/orders"
	"github.com/huertohogar/storefront-checkout/internal/shipping"
)

// OrderWriter persists a finalized order. The concrete writer decides whether
// the write is a plain append or a transactional one with an idempotency record.
type OrderWriter interface {
	Create(ctx context.Context, o orders.Order) error
}

// OrderWriterFunc adapts a function to the OrderWriter interface.
type OrderWriterFunc func(ctx context.Context, o orders.Order) error

func (f OrderWriterFunc) Create(ctx context.Context, o orders.Order) error { return f(ctx, o) }

// ValidationError carries the per-field messages for the step that failed.
// The machine stays on its current step when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validación fallida" }

var (
	// ErrNotOnConfirmation is returned when Submit is called before step 4.
	ErrNotOnConfirmation = errors.New("el pedido solo puede confirmarse en el último paso")
	// ErrEmptyCart is returned when Submit finds no line items to purchase.
	ErrEmptyCart = errors.New("el carrito está vacío")
)

// Machine drives the four checkout steps. Forward navigation requires the
// current step to validate; backward navigation never does. Submit freezes
// the cart+coupon+shipping computation into an Order and hands it to the
// OrderWriter.
type Machine struct {
	mu        sync.Mutex
	draft     Draft
	step      Step
	fieldErrs map[string]string
	submitted bool
	lastOrder string

	cart     *cart.Store
	shipping shipping.Evaluator
	writer   OrderWriter
	provider auth.Provider
	validate *validatorv10.Validate
	idGen    func() string
	nowFunc  func() time.Time
}

// NewMachine starts a checkout flow at step 1 with a draft pre-filled from
// the auth provider.
func NewMachine(c *cart.Store, eval shipping.Evaluator, writer OrderWriter, provider auth.Provider) *Machine {
	return &Machine{
		draft:     NewDraft(provider),
		step:      StepPersonalInfo,
		fieldErrs: map[string]string{},
		cart:      c,
		shipping:  eval,
		writer:    writer,
		provider:  provider,
		validate:  newValidator(),
		idGen:     uuid.NewString,
		nowFunc:   time.Now,
	}
}

// Step returns the current step index (1–4).
func (m *Machine) Step() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

// FieldErrors returns a copy of the current per-field validation errors.
func (m *Machine) FieldErrors() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.fieldErrs))
	for k, v := range m.fieldErrs {
		out[k] = v
	}
	return out
}

// Submitted reports whether the flow reached the terminal success state.
func (m *Machine) Submitted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitted
}

// LastOrderID is the id of the order created by the last successful Submit.
func (m *Machine) LastOrderID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastOrder
}

// Draft returns a copy of the current draft.
func (m *Machine) Draft() Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// SetPersonalInfo records the step-1 form data without validating it.
func (m *Machine) SetPersonalInfo(p PersonalInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.PersonalInfo = p
}

// SetAddress records the step-2 form data without validating it.
func (m *Machine) SetAddress(a Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.Address = a
}

// SetPayment records the step-3 form data without validating it.
func (m *Machine) SetPayment(p Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft.Payment = p
}

// Next validates the current step. On failure it populates the field-error
// map and stays; on success it clears the errors and advances, capped at the
// confirmation step.
func (m *Machine) Next() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.validateStepLocked(m.step); err != nil {
		return err
	}
	m.fieldErrs = map[string]string{}
	if m.step < StepConfirmation {
		m.step++
	}
	return nil
}

// Back moves one step back, floored at step 1. It never validates.
func (m *Machine) Back() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.step > StepPersonalInfo {
		m.step--
	}
}

// Reset discards the draft and starts over at step 1. Used when the customer
// navigates away from checkout.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = NewDraft(m.provider)
	m.step = StepPersonalInfo
	m.fieldErrs = map[string]string{}
	m.submitted = false
	m.lastOrder = ""
}

func (m *Machine) validateStepLocked(step Step) error {
	var err error
	switch step {
	case StepPersonalInfo:
		err = m.validate.Struct(m.draft.PersonalInfo)
	case StepAddress:
		err = m.validate.Struct(m.draft.Address)
	case StepPayment:
		err = m.validate.Struct(m.draft.Payment)
	case StepConfirmation:
		// read-only summary, nothing to validate
	}
	if err == nil {
		return nil
	}
	fields := validationErrorsToFields(err)
	m.fieldErrs = fields
	return &ValidationError{Fields: fields}
}

// Submit finalizes the purchase through the machine's default writer.
func (m *Machine) Submit(ctx context.Context) (orders.Order, error) {
	return m.SubmitWith(ctx, m.writer)
}

// SubmitWith finalizes the purchase. Only callable from the confirmation
// step; it re-validates the payment step as a final guard, builds a frozen
// Order snapshot from the current cart, persists it through the writer,
// clears the cart, and moves to the terminal success state. Validation
// failures leave the cart and store untouched.
func (m *Machine) SubmitWith(ctx context.Context, writer OrderWriter) (orders.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if writer == nil {
		writer = m.writer
	}

	if m.step != StepConfirmation {
		return orders.Order{}, ErrNotOnConfirmation
	}
	if err := m.validateStepLocked(StepPayment); err != nil {
		return orders.Order{}, err
	}
	m.fieldErrs = map[string]string{}

	items := m.cart.Items()
	if len(items) == 0 {
		return orders.Order{}, ErrEmptyCart
	}

	subtotal := m.cart.Subtotal()
	discount := m.cart.DiscountAmount()
	after := subtotal - discount
	coupon := m.cart.Coupon()
	shippingCost := m.shipping.Cost(after, coupon)

	order := orders.Order{
		OrderID:       m.idGen(),
		Status:        orders.StatusPending,
		PaymentMethod: m.draft.Payment.Method,
		Items:         snapshotItems(items),
		Subtotal:      subtotal,
		Discount:      discount,
		Shipping:      shippingCost,
		Total:         after + shippingCost,
		Customer: orders.Customer{
			FirstName: m.draft.PersonalInfo.FirstName,
			LastName:  m.draft.PersonalInfo.LastName,
			Email:     m.draft.PersonalInfo.Email,
			Phone:     m.draft.PersonalInfo.Phone,
			Address:   m.draft.Address.Street,
			City:      m.draft.Address.City,
			Commune:   m.draft.Address.Commune,
		},
		CreatedAt: m.nowFunc(),
	}
	if coupon != nil {
		order.CouponCode = coupon.Code
	}

	if err := writer.Create(ctx, order); err != nil {
		return orders.Order{}, fmt.Errorf("persist order: %w", err)
	}

	m.cart.Clear()
	m.submitted = true
	m.lastOrder = order.OrderID
	return order, nil
}

func snapshotItems(items []cart.LineItem) []orders.OrderItem {
	out := make([]orders.OrderItem, 0, len(items))
	for _, li := range items {
		out = append(out, orders.OrderItem{
			ProductID: li.ProductID,
			Name:      li.Name,
			UnitPrice: li.EffectiveUnitPrice(),
			Quantity:  li.Quantity,
			Image:     li.Image,
		})
	}
	return out
}
