package checkout

import (
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// newValidator returns a configured validator with the credit-card
// struct-level validation registered and json tag names reported.
func newValidator() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// card sub-fields are required only for credit_card payments
	v.RegisterStructValidation(paymentStructValidation, Payment{})

	return v
}

// paymentStructValidation requires the card sub-fields when the selected
// method is credit_card.
func paymentStructValidation(sl validatorv10.StructLevel) {
	p := sl.Current().Interface().(Payment)
	if p.Method != MethodCreditCard {
		return
	}
	if strings.TrimSpace(p.Card.Number) == "" {
		sl.ReportError(p.Card.Number, "card_number", "Number", "required", "")
	}
	if strings.TrimSpace(p.Card.Holder) == "" {
		sl.ReportError(p.Card.Holder, "card_holder", "Holder", "required", "")
	}
	if strings.TrimSpace(p.Card.Expiry) == "" {
		sl.ReportError(p.Card.Expiry, "card_expiry", "Expiry", "required", "")
	}
	if strings.TrimSpace(p.Card.CVV) == "" {
		sl.ReportError(p.Card.CVV, "card_cvv", "CVV", "required", "")
	}
}

// fieldMessages maps field name to its user-facing message per failed tag.
// Every failure yields a field-scoped message, never a generic one.
var fieldMessages = map[string]map[string]string{
	"first_name":     {"required": "ingresa tu nombre"},
	"last_name":      {"required": "ingresa tu apellido"},
	"email":          {"required": "ingresa tu correo electrónico", "email": "correo electrónico inválido"},
	"phone":          {"required": "ingresa tu teléfono"},
	"address":        {"required": "ingresa tu dirección"},
	"city":           {"required": "ingresa tu ciudad"},
	"commune":        {"required": "ingresa tu comuna"},
	"payment_method": {"required": "selecciona un método de pago", "oneof": "método de pago no disponible"},
	"card_number":    {"required": "ingresa el número de tarjeta"},
	"card_holder":    {"required": "ingresa el nombre del titular"},
	"card_expiry":    {"required": "ingresa la fecha de expiración"},
	"card_cvv":       {"required": "ingresa el código de seguridad"},
}

// validationErrorsToFields converts validator errors into a field→message map.
func validationErrorsToFields(err error) map[string]string {
	out := map[string]string{}
	ve, ok := err.(validatorv10.ValidationErrors)
	if !ok {
		out["form"] = err.Error()
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		if msgs, ok := fieldMessages[field]; ok {
			if msg, ok := msgs[fe.Tag()]; ok {
				out[field] = msg
				continue
			}
			for _, msg := range msgs {
				out[field] = msg
				break
			}
			continue
		}
		out[field] = "campo inválido"
	}
	return out
}
