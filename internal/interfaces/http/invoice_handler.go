package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Iris-api/internal/application/dto"
	"github.com/jhoicas/Iris-api/internal/application/ledger"
	"github.com/jhoicas/Iris-api/internal/application/submission"
	"github.com/jhoicas/Iris-api/internal/domain"
)

// InvoiceHandler creación, envío y consulta de documentos.
type InvoiceHandler struct {
	submit *submission.UseCase
	ledger *ledger.Service
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(submit *submission.UseCase, ledgerSvc *ledger.Service) *InvoiceHandler {
	return &InvoiceHandler{submit: submit, ledger: ledgerSvc}
}

// Create crea el documento y ejecuta el ciclo de envío. Responde 201 aunque IRIS lo rechace: el
// documento existe y el resultado del ciclo va en el cuerpo.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.submit.SubmitDocument(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateDraft guarda el documento sin enviarlo.
// POST /api/invoices/drafts
func (h *InvoiceHandler) CreateDraft(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.submit.SaveDraft(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Submit primer envío de un borrador.
// POST /api/invoices/:id/submit
func (h *InvoiceHandler) Submit(c *fiber.Ctx) error {
	out, err := h.submit.SubmitDraft(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un borrador.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.submit.DeleteDraft(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Resubmit nuevo ciclo de envío para un documento existente.
// POST /api/invoices/:id/resubmit
func (h *InvoiceHandler) Resubmit(c *fiber.Ctx) error {
	out, err := h.submit.ResubmitDocument(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List documentos del vendedor con estado derivado.
// GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	views, err := h.ledger.ListDocuments(c.UserContext(), GetSellerNTN(c))
	if err != nil {
		return writeError(c, err)
	}
	items := make([]*dto.DocumentResponse, 0, len(views))
	for i := range views {
		items = append(items, ledger.ViewToResponse(&views[i]))
	}
	return c.JSON(fiber.Map{"items": items})
}

// GetByID documento con ítems e historial de intentos.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	view, err := h.ledger.GetDocument(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if view == nil {
		return writeError(c, domain.ErrNotFound)
	}
	return c.JSON(ledger.ViewToResponse(view))
}
