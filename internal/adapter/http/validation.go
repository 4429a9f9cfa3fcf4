package http

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"belavista-backend/internal/pricing"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// proposal/user ids and session tokens = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return reHex32.MatchString(fl.Field().String())
	})
	// down-payment method must be one of the three known values
	_ = v.RegisterValidation("method", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "cash", "card", "boleto":
			return true
		}
		return false
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		case "hex32":
			out = append(out, FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "method":
			out = append(out, FieldError{Field: field, Message: "must be one of cash, card, boleto"})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must be at least " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}

// draftFieldErrors maps the pricing engine's submit-time errors into the
// response shape, with per-reason messages the form can surface inline.
func draftFieldErrors(ve *pricing.ValidationError) []FieldError {
	out := make([]FieldError, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		msg := "is required"
		switch f.Reason {
		case pricing.ReasonInvalidEmail:
			msg = "must be a valid email address"
		case pricing.ReasonInvalidPostalCode:
			msg = "must be exactly 8 digits"
		case pricing.ReasonInvalidState:
			msg = "must be a 2-letter UF"
		case pricing.ReasonCardInstallmentsOutOfRange:
			msg = "card down payment allows 1 to 18 installments"
		case pricing.ReasonBoletoInstallmentsOutOfRange:
			msg = "boleto down payment allows 2 or 3 installments"
		case pricing.ReasonFinancingInstallmentsOutOfRange:
			msg = "financing allows at most 120 installments"
		}
		out = append(out, FieldError{Field: f.Field, Message: msg})
	}
	return out
}
