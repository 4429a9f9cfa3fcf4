package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"belavista-backend/internal/usecase/inventory"
)

type LotHandler struct{ inv *inventory.Service }

func NewLotHandler(inv *inventory.Service) *LotHandler { return &LotHandler{inv: inv} }

// Grid serves the full lot projection. When the store read fails but an
// earlier projection exists, that projection is served marked stale instead
// of blanking the plant view.
func (h *LotHandler) Grid(c echo.Context) error {
	g, err := h.inv.Load(c.Request().Context())
	if err != nil {
		if errors.Is(err, inventory.ErrDataUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "lot inventory unavailable"})
		}
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, g)
}
