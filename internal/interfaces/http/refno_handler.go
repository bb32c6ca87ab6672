package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Iris-api/internal/application/dto"
	"github.com/jhoicas/Iris-api/internal/application/ledger"
)

// RefNoHandler consultas sobre referencias de factura del vendedor.
type RefNoHandler struct {
	ledger *ledger.Service
}

// NewRefNoHandler construye el handler.
func NewRefNoHandler(ledgerSvc *ledger.Service) *RefNoHandler {
	return &RefNoHandler{ledger: ledgerSvc}
}

func missingRef(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetro ref requerido"})
}

// Check estado de uso de una referencia, si bloquea un documento nuevo y su historial.
// GET /api/refno/check?ref=
func (h *RefNoHandler) Check(c *fiber.Ctx) error {
	ref := strings.TrimSpace(c.Query("ref"))
	if ref == "" {
		return missingRef(c)
	}
	ctx := c.UserContext()
	seller := GetSellerNTN(c)

	usage, err := h.ledger.IsRefNoUsed(ctx, ref, seller)
	if err != nil {
		return writeError(c, err)
	}
	history, err := h.ledger.GetAttemptsByRefNo(ctx, ref, seller)
	if err != nil {
		return writeError(c, err)
	}
	reason, err := h.ledger.CheckRefNo(ctx, ref, seller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.RefNoCheckResponse{
		RefNo:    ref,
		Used:     usage.Used,
		Status:   usage.Status,
		Blocked:  reason != "",
		Reason:   reason,
		Attempts: ledger.AttemptsToResponse(history),
	})
}

// Suggest próxima referencia a partir de la última aceptada.
// GET /api/refno/suggest
func (h *RefNoHandler) Suggest(c *fiber.Ctx) error {
	last, next, ok, err := h.ledger.SuggestNextRefNo(c.UserContext(), GetSellerNTN(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.RefNoSuggestionResponse{LastSuccessfulRefNo: last, Suggestion: next, Available: ok})
}

// Reference valida la factura que una nota débito/crédito quiere referenciar.
// GET /api/refno/reference?ref=
func (h *RefNoHandler) Reference(c *fiber.Ctx) error {
	ref := strings.TrimSpace(c.Query("ref"))
	if ref == "" {
		return missingRef(c)
	}
	check, err := h.ledger.IsReferencedInvoiceValid(c.UserContext(), ref, GetSellerNTN(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ReferenceValidationResponse{RefNo: ref, Valid: check.Valid, Reason: check.Reason})
}
