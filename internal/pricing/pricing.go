// Package pricing owns the proposal draft: the payment-plan arithmetic that
// reruns after every field change and the business validation that gates a
// submit. Recompute and Validate are pure; the caller decides when to invoke
// them and what to do with the result.
package pricing

import (
	"math"

	"belavista-backend/internal/domain/proposal"
)

const (
	// Down-payment percentage by method.
	CardDownPaymentRate   = 0.10
	BoletoDownPaymentRate = 0.15

	CardInstallmentsMin   = 1
	CardInstallmentsMax   = 18
	BoletoInstallmentsMin = 2
	BoletoInstallmentsMax = 3

	FinancingInstallmentsMax     = 120
	DefaultFinancingInstallments = 120

	// FinancingInstallmentValue is the flat per-installment amount of the
	// financed balance. It is a product constant, not balance/n.
	FinancingInstallmentValue = 592.50

	// DefaultLotPrice applies when a lot carries no price of its own.
	DefaultLotPrice = 78999.90
)

// Draft is the single in-flight proposal a broker is editing. It mirrors the
// stored record; DownPaymentAmount and the installment fields are owned by
// Recompute.
type Draft struct {
	Lot   int
	Value float64
	// EditID is the proposal id being replaced, empty for a fresh reservation.
	EditID string

	proposal.ClientData
}

// NewDraft seeds a draft for reserving lot with the given price. A
// non-positive price falls back to DefaultLotPrice.
func NewDraft(lot int, price float64) Draft {
	if price <= 0 {
		price = DefaultLotPrice
	}
	d := Draft{
		Lot:   lot,
		Value: price,
		ClientData: proposal.ClientData{
			PersonType: proposal.PersonIndividual,
			Plan: proposal.PaymentPlan{
				DownPaymentMethod:       proposal.MethodCash,
				DownPaymentInstallments: 1,
				FinancingInstallments:   DefaultFinancingInstallments,
			},
		},
	}
	return Recompute(d)
}

// DraftFrom seeds a draft from a stored proposal for edit mode.
func DraftFrom(p *proposal.Proposal) Draft {
	price := p.Value
	if price <= 0 {
		price = DefaultLotPrice
	}
	return Recompute(Draft{
		Lot:        p.Lot,
		Value:      price,
		EditID:     p.ProposalID,
		ClientData: p.ClientData,
	})
}

// Recompute rederives the payment plan after any change to the method, the
// signal or the lot price:
//
//	cash:   down = price - signal, installments pinned to 1, financing 0
//	card:   down = 10% of price - signal, installments kept if 1..18 else 1
//	boleto: down = 15% of price - signal, installments kept if 2..3 else 2
//
// Leaving cash with financing at 0 restores the 120-installment default.
func Recompute(d Draft) Draft {
	signal := 0.0
	if d.Plan.HasSignal {
		signal = d.Plan.SignalAmount
	}

	switch d.Plan.DownPaymentMethod {
	case proposal.MethodCash:
		d.Plan.DownPaymentAmount = round2(d.Value - signal)
		d.Plan.DownPaymentInstallments = 1
		d.Plan.FinancingInstallments = 0
	case proposal.MethodCard:
		d.Plan.DownPaymentAmount = round2(d.Value*CardDownPaymentRate - signal)
		if n := d.Plan.DownPaymentInstallments; n < CardInstallmentsMin || n > CardInstallmentsMax {
			d.Plan.DownPaymentInstallments = 1
		}
		if d.Plan.FinancingInstallments == 0 {
			d.Plan.FinancingInstallments = DefaultFinancingInstallments
		}
	case proposal.MethodBoleto:
		d.Plan.DownPaymentAmount = round2(d.Value*BoletoDownPaymentRate - signal)
		if n := d.Plan.DownPaymentInstallments; n < BoletoInstallmentsMin || n > BoletoInstallmentsMax {
			d.Plan.DownPaymentInstallments = 2
		}
		if d.Plan.FinancingInstallments == 0 {
			d.Plan.FinancingInstallments = DefaultFinancingInstallments
		}
	}
	return d
}

// InstallmentOption is one selectable down-payment split with its per-payment
// amount.
type InstallmentOption struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// InstallmentOptions lists the valid down-payment splits for the draft's
// method. Cash has the single full payment.
func InstallmentOptions(d Draft) []InstallmentOption {
	var lo, hi int
	switch d.Plan.DownPaymentMethod {
	case proposal.MethodCard:
		lo, hi = CardInstallmentsMin, CardInstallmentsMax
	case proposal.MethodBoleto:
		lo, hi = BoletoInstallmentsMin, BoletoInstallmentsMax
	default:
		return []InstallmentOption{{Count: 1, Amount: d.Plan.DownPaymentAmount}}
	}
	opts := make([]InstallmentOption, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		opts = append(opts, InstallmentOption{Count: n, Amount: round2(d.Plan.DownPaymentAmount / float64(n))})
	}
	return opts
}

// Proposal materializes the draft into the record shape the store expects.
// The caller supplies the identity fields.
func (d Draft) Proposal(proposalID, ownerID string) *proposal.Proposal {
	return &proposal.Proposal{
		ProposalID: proposalID,
		Lot:        d.Lot,
		Value:      d.Value,
		ClientData: d.ClientData,
		OwnerID:    ownerID,
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
