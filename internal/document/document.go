// Package document renders the purchase-proposal document a broker prints or
// shares with the buyer. The renderer only consumes data the proposal already
// carries plus the display formatters; it never touches the store.
package document

import (
	"bytes"
	"fmt"
	"html/template"

	"belavista-backend/internal/domain/proposal"
	"belavista-backend/internal/format"
	"belavista-backend/internal/pricing"
)

// FileName is the suggested download name for a lot's proposal document.
func FileName(lot int) string { return fmt.Sprintf("proposta_lote_%d.html", lot) }

type view struct {
	Lot        int
	LotValue   string
	Company    bool
	TaxIDLabel string
	TaxID      string
	Name       string
	BirthDate  string
	Email      string
	Mobile     string
	Phone      string

	IDDocument  string
	IDIssuer    string
	IDIssueDate string
	Birthplace  string

	PostalCode string
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string

	MethodLabel   string
	DownPayment   string
	SignalAmount  string
	HasSignal     bool
	Financing     string
	EmittedAt     string
}

var tmpl = template.Must(template.New("proposal").Parse(`<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 24px; font-size: 12px;">
  <h1 style="text-align: center; font-size: 18px;">Proposta de Compra - Lote {{.Lot}}</h1>
  <p style="text-align: center; font-size: 14px;"><strong>Valor Total do Lote:</strong> {{.LotValue}}</p>

  <h2 style="font-size: 16px; border-bottom: 1px solid #ccc;">Dados do Proponente</h2>
  <p><strong>Tipo:</strong> {{if .Company}}Pessoa Jurídica{{else}}Pessoa Física{{end}}</p>
  <p><strong>{{.TaxIDLabel}}:</strong> {{.TaxID}}</p>
  <p><strong>Nome / Razão Social:</strong> {{.Name}}</p>
  <p><strong>Data de Nascimento / Fundação:</strong> {{.BirthDate}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Celular:</strong> {{.Mobile}}</p>
  <p><strong>Telefone:</strong> {{.Phone}}</p>
{{if not .Company}}  <p><strong>RG:</strong> {{.IDDocument}}</p>
  <p><strong>Órgão Emissor:</strong> {{.IDIssuer}}</p>
  <p><strong>Data de Emissão:</strong> {{.IDIssueDate}}</p>
  <p><strong>Naturalidade:</strong> {{.Birthplace}}</p>
{{end}}
  <h2 style="font-size: 16px; border-bottom: 1px solid #ccc;">Endereço</h2>
  <p><strong>CEP:</strong> {{.PostalCode}}</p>
  <p>{{.Street}}, {{.Number}}{{if .Complement}} - {{.Complement}}{{end}}</p>
  <p>{{.District}} - {{.City}} / {{.State}}</p>

  <h2 style="font-size: 16px; border-bottom: 1px solid #ccc;">Condições de Pagamento</h2>
  <p><strong>Forma de Pagamento da Entrada:</strong> {{.MethodLabel}}</p>
  <p><strong>Condição da Entrada:</strong> {{.DownPayment}}</p>
{{if .HasSignal}}  <p><strong>Valor do Sinal:</strong> {{.SignalAmount}}</p>
{{end}}  <p><strong>Condição do Financiamento:</strong> {{.Financing}}</p>

  <p style="font-size: 10px; text-align: right;">Proposta emitida em: {{.EmittedAt}}</p>
</body>
</html>
`))

// Render produces the proposal document. emittedAt is the emission date shown
// in the footer, formatted DD/MM/YYYY.
func Render(p *proposal.Proposal, emittedAt string) ([]byte, error) {
	plan := p.ClientData.Plan
	company := p.ClientData.PersonType == proposal.PersonCompany

	v := view{
		Lot:      p.Lot,
		LotValue: format.Currency(p.Value),
		Company:  company,
		TaxID:    format.TaxID(p.ClientData.TaxID, company),
		Name:     p.ClientData.Name,

		BirthDate: format.Date(p.ClientData.BirthDate),
		Email:     p.ClientData.Email,
		Mobile:    format.Mobile(p.ClientData.Mobile),
		Phone:     format.Phone(p.ClientData.Phone),

		IDDocument:  p.ClientData.IDDocument,
		IDIssuer:    p.ClientData.IDIssuer,
		IDIssueDate: format.Date(p.ClientData.IDIssueDate),
		Birthplace:  p.ClientData.Birthplace,

		PostalCode: format.CEP(p.ClientData.PostalCode),
		Street:     p.ClientData.Street,
		Number:     orDefault(p.ClientData.Number, "S/N"),
		Complement: p.ClientData.Complement,
		District:   p.ClientData.District,
		City:       p.ClientData.City,
		State:      p.ClientData.State,

		HasSignal: plan.HasSignal,
		EmittedAt: emittedAt,
	}
	v.TaxIDLabel = "CPF"
	if company {
		v.TaxIDLabel = "CNPJ"
	}
	if plan.HasSignal {
		v.SignalAmount = format.Currency(plan.SignalAmount)
	}

	down := format.Currency(plan.DownPaymentAmount)
	switch plan.DownPaymentMethod {
	case proposal.MethodCard:
		v.MethodLabel = "Cartão de Crédito"
		v.DownPayment = fmt.Sprintf("%s em %dx no Cartão de Crédito", down, plan.DownPaymentInstallments)
	case proposal.MethodBoleto:
		v.MethodLabel = "Boleto Bancário"
		v.DownPayment = fmt.Sprintf("%s em %dx no Boleto Bancário", down, plan.DownPaymentInstallments)
	default:
		v.MethodLabel = "À vista (PIX/TED)"
		v.DownPayment = fmt.Sprintf("%s (Pagamento à vista)", down)
	}

	switch {
	case plan.DownPaymentMethod == proposal.MethodCash:
		v.Financing = "Pagamento integral realizado na entrada."
	case plan.FinancingInstallments > 0:
		v.Financing = fmt.Sprintf("Saldo financiado em %d parcelas fixas de %s.",
			plan.FinancingInstallments, format.Currency(pricing.FinancingInstallmentValue))
	default:
		v.Financing = "Sem financiamento."
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("render proposal document: %w", err)
	}
	return buf.Bytes(), nil
}

func orDefault(s, d string) string {
	if s == "" {
		return d
	}
	return s
}
