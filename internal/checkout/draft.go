package checkout

import "github.com/huertohogar/storefront-checkout/internal/auth"

// Step indexes the linear checkout flow.
type Step int

const (
	StepPersonalInfo Step = 1
	StepAddress      Step = 2
	StepPayment      Step = 3
	StepConfirmation Step = 4
)

// Payment method identifiers recorded on the order. Presentation-only
// selections; no gateway is involved.
const (
	MethodCreditCard     = "credit_card"
	MethodDebitCard      = "debit_card"
	MethodTransfer       = "transfer"
	MethodCashOnDelivery = "cash_on_delivery"
)

// PersonalInfo is the step-1 form data.
type PersonalInfo struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
}

// Address is the step-2 form data.
type Address struct {
	Street  string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	Commune string `json:"commune" validate:"required"`
	Notes   string `json:"notes,omitempty"`
}

// Card carries the credit-card sub-fields; required only when the selected
// method is credit_card (enforced by a struct-level validation on Payment).
type Card struct {
	Number string `json:"card_number"`
	Holder string `json:"card_holder"`
	Expiry string `json:"card_expiry"`
	CVV    string `json:"card_cvv"`
}

// Payment is the step-3 form data.
type Payment struct {
	Method string `json:"payment_method" validate:"required,oneof=credit_card debit_card transfer cash_on_delivery"`
	Card   Card   `json:"card,omitempty"`
}

// Draft is the transient, step-scoped checkout form state. It is discarded
// after submission or navigation away; nothing here is persisted directly.
type Draft struct {
	PersonalInfo PersonalInfo `json:"personal_info"`
	Address      Address      `json:"address"`
	Payment      Payment      `json:"payment"`
}

// NewDraft builds a draft pre-filled from the authenticated user when one is
// present; guests start with empty contact fields.
func NewDraft(provider auth.Provider) Draft {
	var d Draft
	if provider == nil {
		return d
	}
	if u := provider.CurrentUser(); u != nil {
		d.PersonalInfo.FirstName = u.FirstName
		d.PersonalInfo.LastName = u.LastName
		d.PersonalInfo.Email = u.Email
	}
	return d
}
