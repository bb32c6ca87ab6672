package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Iris-api/internal/application/dto"
	"github.com/jhoicas/Iris-api/internal/application/ledger"
)

// AttemptHandler consulta del ledger de intentos.
type AttemptHandler struct {
	ledger *ledger.Service
}

// NewAttemptHandler construye el handler.
func NewAttemptHandler(ledgerSvc *ledger.Service) *AttemptHandler {
	return &AttemptHandler{ledger: ledgerSvc}
}

// List intentos del vendedor, más recientes primero, con búsqueda y filtro por resultado.
// GET /api/attempts?q=&outcome=
func (h *AttemptHandler) List(c *fiber.Ctx) error {
	var f dto.AttemptFilter
	if err := c.QueryParser(&f); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(f); err != nil {
		return writeError(c, err)
	}
	ctx := c.UserContext()
	seller := GetSellerNTN(c)
	list, err := h.ledger.FilterAttempts(ctx, seller, f.Query, f.Outcome)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": ledger.AttemptsToResponse(list)})
}
