package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	mw "belavista-backend/internal/adapter/middleware"
	"belavista-backend/internal/document"
	proposalDomain "belavista-backend/internal/domain/proposal"
	"belavista-backend/internal/format"
	"belavista-backend/internal/pricing"
	proposalUC "belavista-backend/internal/usecase/proposal"
)

type ProposalHandler struct {
	uc *proposalUC.Service
	// lotPrice fills in for drafts submitted without a value.
	lotPrice float64
}

func NewProposalHandler(uc *proposalUC.Service, lotPrice float64) *ProposalHandler {
	if lotPrice <= 0 {
		lotPrice = pricing.DefaultLotPrice
	}
	return &ProposalHandler{uc: uc, lotPrice: lotPrice}
}

// draftReq mirrors the editing form. Masked inputs (tax id, phones, postal
// code, dates) are accepted with or without their masks; digits are what get
// stored.
type draftReq struct {
	Lot   int     `json:"lot" validate:"required,gte=1"`
	Value float64 `json:"value" validate:"gte=0"`

	PersonType  string `json:"person_type"`
	TaxID       string `json:"tax_id"`
	Name        string `json:"name"`
	BirthDate   string `json:"birth_date"`
	Email       string `json:"email"`
	IDDocument  string `json:"id_document"`
	IDIssuer    string `json:"id_issuer"`
	IDIssueDate string `json:"id_issue_date"`
	Birthplace  string `json:"birthplace"`
	Mobile      string `json:"mobile"`
	Phone       string `json:"phone"`

	PostalCode string `json:"postal_code"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`

	DownPaymentMethod       string  `json:"down_payment_method" validate:"required,method"`
	DownPaymentInstallments int     `json:"down_payment_installments"`
	FinancingInstallments   int     `json:"financing_installments"`
	HasSignal               bool    `json:"has_signal"`
	SignalAmount            float64 `json:"signal_amount" validate:"gte=0"`
}

func (r draftReq) draft(editID string) pricing.Draft {
	personType := proposalDomain.PersonIndividual
	if r.PersonType == string(proposalDomain.PersonCompany) {
		personType = proposalDomain.PersonCompany
	}

	d := pricing.Draft{
		Lot:    r.Lot,
		Value:  r.Value,
		EditID: editID,
		ClientData: proposalDomain.ClientData{
			PersonType:  personType,
			TaxID:       format.Digits(r.TaxID),
			Name:        r.Name,
			BirthDate:   format.Digits(r.BirthDate),
			Email:       r.Email,
			IDDocument:  r.IDDocument,
			IDIssuer:    r.IDIssuer,
			IDIssueDate: format.Digits(r.IDIssueDate),
			Birthplace:  r.Birthplace,
			Mobile:      format.Digits(r.Mobile),
			Phone:       format.Digits(r.Phone),
			PostalCode:  format.Digits(r.PostalCode),
			Street:      r.Street,
			Number:      r.Number,
			Complement:  r.Complement,
			District:    r.District,
			City:        r.City,
			State:       r.State,
			Plan: proposalDomain.PaymentPlan{
				DownPaymentMethod:       proposalDomain.Method(r.DownPaymentMethod),
				DownPaymentInstallments: r.DownPaymentInstallments,
				FinancingInstallments:   r.FinancingInstallments,
				HasSignal:               r.HasSignal,
				SignalAmount:            r.SignalAmount,
			},
		},
	}
	return d
}

func (h *ProposalHandler) bindDraft(c echo.Context, editID string) (pricing.Draft, bool) {
	var req draftReq
	if err := c.Bind(&req); err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
		return pricing.Draft{}, false
	}
	if err := c.Validate(&req); err != nil {
		_ = c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
		return pricing.Draft{}, false
	}
	d := req.draft(editID)
	if d.Value <= 0 {
		d.Value = h.lotPrice
	}
	return d, true
}

// Create reserves a lot with a fresh proposal.
func (h *ProposalHandler) Create(c echo.Context) error {
	d, ok := h.bindDraft(c, "")
	if !ok {
		return nil
	}
	return h.submit(c, d, http.StatusCreated)
}

// Update replaces the client data and value of an existing proposal.
func (h *ProposalHandler) Update(c echo.Context) error {
	editID := c.Param("proposal_id")
	if !reHex32.MatchString(editID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid proposal id"})
	}
	d, ok := h.bindDraft(c, editID)
	if !ok {
		return nil
	}
	return h.submit(c, d, http.StatusOK)
}

func (h *ProposalHandler) submit(c echo.Context, d pricing.Draft, okStatus int) error {
	sess := mw.SessionFrom(c)
	p, err := h.uc.Submit(c.Request().Context(), sess.UserID, d)
	if err != nil {
		var ve *pricing.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: draftFieldErrors(ve)})
		case errors.Is(err, proposalDomain.ErrNotFound):
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "proposal not found"})
		case errors.Is(err, proposalDomain.ErrNotOwner):
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: "proposal belongs to another broker"})
		default:
			// store failure, surfaced verbatim; the broker resubmits
			return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		}
	}
	return c.JSON(okStatus, p)
}

// Quote recomputes a draft without persisting: derived down payment plus the
// selectable installment splits, for live form feedback.
func (h *ProposalHandler) Quote(c echo.Context) error {
	d, ok := h.bindDraft(c, "")
	if !ok {
		return nil
	}
	d = pricing.Recompute(d)
	return c.JSON(http.StatusOK, map[string]any{
		"lot":                         d.Lot,
		"value":                       d.Value,
		"payment_plan":                d.Plan,
		"installment_options":         pricing.InstallmentOptions(d),
		"financing_installment_value": pricing.FinancingInstallmentValue,
		"down_payment_display":        format.Currency(d.Plan.DownPaymentAmount),
	})
}

// List returns the broker's saved proposals, optionally filtered by ?q=.
func (h *ProposalHandler) List(c echo.Context) error {
	sess := mw.SessionFrom(c)
	out, err := h.uc.ListSaved(c.Request().Context(), sess.UserID, c.QueryParam("q"))
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "proposal list unavailable"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProposalHandler) Delete(c echo.Context) error {
	sess := mw.SessionFrom(c)
	proposalID := c.Param("proposal_id")
	if !reHex32.MatchString(proposalID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid proposal id"})
	}
	err := h.uc.Delete(c.Request().Context(), sess.UserID, proposalID)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, proposalDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "proposal not found"})
	case errors.Is(err, proposalDomain.ErrNotOwner):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "proposal belongs to another broker"})
	default:
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	}
}

// CancelByLot frees the broker's reservation on a lot number.
func (h *ProposalHandler) CancelByLot(c echo.Context) error {
	sess := mw.SessionFrom(c)
	lotNumber, err := strconv.Atoi(c.Param("number"))
	if err != nil || lotNumber < 1 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lot number"})
	}
	err = h.uc.CancelByLot(c.Request().Context(), sess.UserID, lotNumber)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, proposalDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no reservation of yours on this lot"})
	default:
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	}
}

// Document renders the proposal document; ?download=1 serves it as an
// attachment with the lot-numbered file name.
func (h *ProposalHandler) Document(c echo.Context) error {
	sess := mw.SessionFrom(c)
	proposalID := c.Param("proposal_id")
	if !reHex32.MatchString(proposalID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid proposal id"})
	}

	p, err := h.uc.Get(c.Request().Context(), sess.UserID, proposalID)
	switch {
	case errors.Is(err, proposalDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "proposal not found"})
	case errors.Is(err, proposalDomain.ErrNotOwner):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "proposal belongs to another broker"})
	case err != nil:
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	}

	html, err := document.Render(p, timeNowBR())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not render document"})
	}
	if c.QueryParam("download") == "1" {
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+document.FileName(p.Lot)+`"`)
	}
	return c.HTMLBlob(http.StatusOK, html)
}
