package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"belavista-backend/internal/format"
	"belavista-backend/internal/infrastructure/viacep"
)

type CEPHandler struct{ client *viacep.Client }

func NewCEPHandler(client *viacep.Client) *CEPHandler { return &CEPHandler{client: client} }

// Lookup resolves a postal code for address autofill. Failures here never
// block a proposal; the form stays editable on the client.
func (h *CEPHandler) Lookup(c echo.Context) error {
	code := format.Digits(c.Param("code"))

	addr, err := h.client.Lookup(c.Request().Context(), code)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, addr)
	case errors.Is(err, viacep.ErrInvalidCEP):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "postal code must be 8 digits"})
	case errors.Is(err, viacep.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "postal code not found"})
	default:
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "postal lookup unavailable"})
	}
}
