package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Iris-api/internal/application/ledger"
)

// DashboardHandler resumen del portal.
type DashboardHandler struct {
	ledger *ledger.Service
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(ledgerSvc *ledger.Service) *DashboardHandler {
	return &DashboardHandler{ledger: ledgerSvc}
}

// Summary conteo por estado, actividad reciente y referencia sugerida.
// GET /api/dashboard
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	ctx := c.UserContext()
	seller := GetSellerNTN(c)
	sum, err := h.ledger.Summary(ctx, seller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ledger.SummaryToResponse(sum))
}
