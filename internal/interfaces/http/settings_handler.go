package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Iris-api/internal/application/dto"
	"github.com/jhoicas/Iris-api/internal/application/settings"
)

// SettingsHandler identidad del vendedor.
type SettingsHandler struct {
	uc *settings.UseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *settings.UseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// GetSeller devuelve la identidad configurada.
// GET /api/settings/seller
func (h *SettingsHandler) GetSeller(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SaveSeller reemplaza la identidad.
// PUT /api/settings/seller
func (h *SettingsHandler) SaveSeller(c *fiber.Ctx) error {
	var in dto.SellerIdentityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Save(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
