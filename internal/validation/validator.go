package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns the validator used for API request payloads. Checkout-step
// validation has its own configured instance inside the checkout package.
func New() *validatorv10.Validate {
	return validatorv10.New()
}
