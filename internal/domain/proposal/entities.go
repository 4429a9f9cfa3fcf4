package proposal

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type PersonType string

const (
	PersonIndividual PersonType = "individual"
	PersonCompany    PersonType = "company"
)

// Method is the down-payment method chosen for a proposal.
type Method string

const (
	MethodCash   Method = "cash"   // single up-front payment (PIX/TED)
	MethodCard   Method = "card"   // 10% down on credit card
	MethodBoleto Method = "boleto" // 15% down on bank slip installments
)

// PaymentPlan is embedded in ClientData. DownPaymentAmount is always derived
// from (method, lot price, signal); it is never authoritative on its own.
type PaymentPlan struct {
	DownPaymentMethod       Method  `json:"down_payment_method"`
	DownPaymentAmount       float64 `json:"down_payment_amount"`
	DownPaymentInstallments int     `json:"down_payment_installments"`
	FinancingInstallments   int     `json:"financing_installments"`
	HasSignal               bool    `json:"has_signal"`
	SignalAmount            float64 `json:"signal_amount"`
}

// ClientData is the structured buyer record stored as JSON in the
// dados_cliente column. Date fields hold digit-only DDMMYYYY input; the
// format package renders them.
type ClientData struct {
	PersonType  PersonType `json:"person_type"`
	TaxID       string     `json:"tax_id"`
	Name        string     `json:"name"`
	BirthDate   string     `json:"birth_date"`
	Email       string     `json:"email"`
	IDDocument  string     `json:"id_document"`
	IDIssuer    string     `json:"id_issuer"`
	IDIssueDate string     `json:"id_issue_date"`
	Birthplace  string     `json:"birthplace"`
	Mobile      string     `json:"mobile"`
	Phone       string     `json:"phone"`

	PostalCode string `json:"postal_code"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`

	Plan PaymentPlan `json:"payment_plan"`
}

func (c ClientData) Value() (driver.Value, error) { return json.Marshal(c) }

func (c *ClientData) Scan(v any) error {
	switch src := v.(type) {
	case nil:
		*c = ClientData{}
		return nil
	case []byte:
		return json.Unmarshal(src, c)
	case string:
		return json.Unmarshal([]byte(src), c)
	default:
		return fmt.Errorf("client data: unsupported column type %T", v)
	}
}

// Proposal is a buyer's reservation/purchase record for one lot. Lot status is
// never stored here; it is projected from the proposal set on every read.
type Proposal struct {
	ID         uint64     `gorm:"primaryKey;column:id" json:"-"`
	ProposalID string     `gorm:"size:32;uniqueIndex:ux_propostas_proposal_id" json:"proposal_id"`
	Lot        int        `gorm:"column:lot;index:idx_propostas_lot" json:"lot"`
	Value      float64    `gorm:"type:decimal(18,2)" json:"value"`
	ClientData ClientData `gorm:"column:dados_cliente;type:json" json:"dados_cliente"`
	OwnerID    string     `gorm:"size:32;column:user_id;index:idx_propostas_user" json:"user_id"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Proposal) TableName() string { return "propostas" }

// ExpiryWindow is how long a reservation holds a lot before the projection
// treats the proposal as absent. Expiry is evaluated at read time only; the
// record itself is never deleted by it.
const ExpiryWindow = 5 * 24 * time.Hour

// Expired reports whether the reservation no longer holds its lot at instant
// now.
func (p *Proposal) Expired(now time.Time) bool {
	return now.Sub(p.CreatedAt) > ExpiryWindow
}

var (
	ErrNotFound = errors.New("proposal not found")
	ErrNotOwner = errors.New("proposal belongs to another broker")
)
