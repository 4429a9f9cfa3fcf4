package pricing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"belavista-backend/internal/domain/proposal"
)

// Machine-readable reasons carried on FieldError.
const (
	ReasonRequired                        = "required"
	ReasonInvalidEmail                    = "invalid_email"
	ReasonInvalidPostalCode               = "invalid_postal_code"
	ReasonInvalidState                    = "invalid_state"
	ReasonCardInstallmentsOutOfRange      = "card_installments_out_of_range"
	ReasonBoletoInstallmentsOutOfRange    = "boleto_installments_out_of_range"
	ReasonFinancingInstallmentsOutOfRange = "financing_installments_out_of_range"
)

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError blocks a submit; every entry maps to one form field so the
// caller can surface them inline.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Reason
	}
	return "invalid proposal: " + strings.Join(parts, "; ")
}

var (
	reCEP = regexp.MustCompile(`^\d{8}$`)
	reUF  = regexp.MustCompile(`^[A-Za-z]{2}$`)
)

// requiredFields is validated with the shared validator instance; plan bounds
// are checked by hand because they depend on the chosen method.
type requiredFields struct {
	TaxID      string `validate:"required"`
	Name       string `validate:"required"`
	Email      string `validate:"required,email"`
	Mobile     string `validate:"required"`
	PostalCode string `validate:"required,cep8"`
	Street     string `validate:"required"`
	Number     string `validate:"required"`
	District   string `validate:"required"`
	City       string `validate:"required"`
	State      string `validate:"required,uf"`
}

var fieldNames = map[string]string{
	"TaxID":      "tax_id",
	"Name":       "name",
	"Email":      "email",
	"Mobile":     "mobile",
	"PostalCode": "postal_code",
	"Street":     "street",
	"Number":     "number",
	"District":   "district",
	"City":       "city",
	"State":      "state",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// postal code = exactly 8 digits, as stored (mask stripped)
	_ = v.RegisterValidation("cep8", func(fl validator.FieldLevel) bool {
		return reCEP.MatchString(fl.Field().String())
	})
	// state = 2-letter UF
	_ = v.RegisterValidation("uf", func(fl validator.FieldLevel) bool {
		return reUF.MatchString(fl.Field().String())
	})
	return v
}

// Validate applies the submit-time business rules. A nil error means the
// draft may be persisted as-is.
func Validate(d Draft) error {
	var fields []FieldError

	req := requiredFields{
		TaxID:      d.TaxID,
		Name:       d.Name,
		Email:      d.Email,
		Mobile:     d.Mobile,
		PostalCode: d.PostalCode,
		Street:     d.Street,
		Number:     d.Number,
		District:   d.District,
		City:       d.City,
		State:      d.State,
	}
	if err := validate.Struct(req); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("validate draft: %w", err)
		}
		for _, e := range ve {
			fe := FieldError{Field: fieldNames[e.StructField()], Reason: ReasonRequired}
			switch e.Tag() {
			case "email":
				fe.Reason = ReasonInvalidEmail
			case "cep8":
				fe.Reason = ReasonInvalidPostalCode
			case "uf":
				fe.Reason = ReasonInvalidState
			}
			fields = append(fields, fe)
		}
	}

	switch d.Plan.DownPaymentMethod {
	case proposal.MethodCard:
		if n := d.Plan.DownPaymentInstallments; n < CardInstallmentsMin || n > CardInstallmentsMax {
			fields = append(fields, FieldError{Field: "down_payment_installments", Reason: ReasonCardInstallmentsOutOfRange})
		}
	case proposal.MethodBoleto:
		if n := d.Plan.DownPaymentInstallments; n < BoletoInstallmentsMin || n > BoletoInstallmentsMax {
			fields = append(fields, FieldError{Field: "down_payment_installments", Reason: ReasonBoletoInstallmentsOutOfRange})
		}
	}
	if d.Plan.DownPaymentMethod != proposal.MethodCash {
		if n := d.Plan.FinancingInstallments; n < 0 || n > FinancingInstallmentsMax {
			fields = append(fields, FieldError{Field: "financing_installments", Reason: ReasonFinancingInstallmentsOutOfRange})
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
