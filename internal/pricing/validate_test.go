package pricing

import (
	"errors"
	"testing"

	"belavista-backend/internal/domain/proposal"
)

func validDraft() Draft {
	d := NewDraft(201, 78999.90)
	d.TaxID = "12345678901"
	d.Name = "João da Silva"
	d.Email = "joao@example.com"
	d.Mobile = "71999998888"
	d.PostalCode = "41000000"
	d.Street = "Rua das Flores"
	d.Number = "123"
	d.District = "Centro"
	d.City = "Salvador"
	d.State = "BA"
	return Recompute(d)
}

func fieldReason(t *testing.T, err error, field string) string {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	for _, f := range ve.Fields {
		if f.Field == field {
			return f.Reason
		}
	}
	t.Fatalf("no error for field %q in %v", field, ve.Fields)
	return ""
}

func TestValidate_OK(t *testing.T) {
	if err := Validate(validDraft()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	for _, tc := range []struct {
		field string
		mut   func(*Draft)
	}{
		{"tax_id", func(d *Draft) { d.TaxID = "" }},
		{"name", func(d *Draft) { d.Name = "" }},
		{"email", func(d *Draft) { d.Email = "" }},
		{"mobile", func(d *Draft) { d.Mobile = "" }},
		{"postal_code", func(d *Draft) { d.PostalCode = "" }},
		{"street", func(d *Draft) { d.Street = "" }},
		{"number", func(d *Draft) { d.Number = "" }},
		{"district", func(d *Draft) { d.District = "" }},
		{"city", func(d *Draft) { d.City = "" }},
		{"state", func(d *Draft) { d.State = "" }},
	} {
		t.Run(tc.field, func(t *testing.T) {
			d := validDraft()
			tc.mut(&d)
			if got := fieldReason(t, Validate(d), tc.field); got != ReasonRequired {
				t.Fatalf("reason = %s, want required", got)
			}
		})
	}
}

func TestValidate_Formats(t *testing.T) {
	d := validDraft()
	d.Email = "not-an-email"
	if got := fieldReason(t, Validate(d), "email"); got != ReasonInvalidEmail {
		t.Fatalf("reason = %s", got)
	}

	d = validDraft()
	d.PostalCode = "4100000" // 7 digits
	if got := fieldReason(t, Validate(d), "postal_code"); got != ReasonInvalidPostalCode {
		t.Fatalf("reason = %s", got)
	}

	d = validDraft()
	d.State = "Bahia"
	if got := fieldReason(t, Validate(d), "state"); got != ReasonInvalidState {
		t.Fatalf("reason = %s", got)
	}
}

func TestValidate_CardInstallmentsBounds(t *testing.T) {
	d := validDraft()
	d.Plan.DownPaymentMethod = proposal.MethodCard
	d = Recompute(d)
	d.Plan.DownPaymentInstallments = 19 // bypass recompute clamp on purpose

	if got := fieldReason(t, Validate(d), "down_payment_installments"); got != ReasonCardInstallmentsOutOfRange {
		t.Fatalf("reason = %s", got)
	}

	d.Plan.DownPaymentInstallments = 18
	if err := Validate(d); err != nil {
		t.Fatalf("18 installments must pass: %v", err)
	}
}

func TestValidate_BoletoInstallmentsBounds(t *testing.T) {
	d := validDraft()
	d.Plan.DownPaymentMethod = proposal.MethodBoleto
	d = Recompute(d)
	d.Plan.DownPaymentInstallments = 5

	if got := fieldReason(t, Validate(d), "down_payment_installments"); got != ReasonBoletoInstallmentsOutOfRange {
		t.Fatalf("reason = %s", got)
	}
}

func TestValidate_FinancingBounds(t *testing.T) {
	d := validDraft()
	d.Plan.DownPaymentMethod = proposal.MethodCard
	d = Recompute(d)
	d.Plan.FinancingInstallments = 121

	if got := fieldReason(t, Validate(d), "financing_installments"); got != ReasonFinancingInstallmentsOutOfRange {
		t.Fatalf("reason = %s", got)
	}

	d.Plan.FinancingInstallments = 120
	if err := Validate(d); err != nil {
		t.Fatalf("120 installments must pass: %v", err)
	}

	// zero financing is allowed even off-cash
	d.Plan.FinancingInstallments = 0
	if err := Validate(d); err != nil {
		t.Fatalf("0 installments must pass: %v", err)
	}
}

func TestValidate_CashSkipsInstallmentRules(t *testing.T) {
	d := validDraft()
	d.Plan.FinancingInstallments = 999 // irrelevant under cash
	d.Plan.DownPaymentMethod = proposal.MethodCash
	if err := Validate(d); err != nil {
		t.Fatalf("cash draft must pass: %v", err)
	}
}

func TestValidationError_Message(t *testing.T) {
	d := validDraft()
	d.Name = ""
	err := Validate(d)
	if err == nil || err.Error() == "" {
		t.Fatalf("expected descriptive error, got %v", err)
	}
}
