package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Iris-api/internal/application/dto"
	"github.com/jhoicas/Iris-api/internal/domain"
	"github.com/jhoicas/Iris-api/internal/domain/entity"
)

// LocalSeller key en c.Locals para la identidad del vendedor.
const LocalSeller = "seller"

// sellerResolver es el contrato mínimo que necesita el middleware; lo implementa *settings.UseCase.
type sellerResolver interface {
	Identity(ctx context.Context) (*entity.SellerIdentity, error)
}

// RequireSeller carga la identidad del vendedor en c.Locals.
//
// Comportamiento:
//   - 412 Precondition Failed → identidad no configurada.
//   - 503 Service Unavailable → fallo al leer la configuración.
func RequireSeller(resolver sellerResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		seller, err := resolver.Identity(c.UserContext())
		if errors.Is(err, domain.ErrSellerNotConfigured) {
			return writeError(c, err)
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SELLER_LOOKUP_FAILED",
				Message: "no se pudo leer la identidad del vendedor, intente más tarde",
			})
		}
		c.Locals(LocalSeller, seller)
		return c.Next()
	}
}

// GetSellerNTN devuelve el NTN/CNIC del vendedor cargado por RequireSeller ("" si no hay).
func GetSellerNTN(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocalSeller).(*entity.SellerIdentity); ok && s != nil {
		return s.NTNCNIC
	}
	return ""
}
