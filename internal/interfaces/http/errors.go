package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Iris-api/internal/application/dto"
	"github.com/jhoicas/Iris-api/internal/domain"
)

// writeError traduce errores de dominio a código HTTP + dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos inválidos", Details: detailLines(err),
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrSellerNotConfigured):
		return c.Status(fiber.StatusPreconditionFailed).JSON(dto.ErrorResponse{
			Code: "SELLER_NOT_CONFIGURED", Message: "configure la identidad del vendedor en /api/settings/seller",
		})
	case errors.Is(err, domain.ErrRefNoBlocked):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REFNO_BLOCKED", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidReference):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_REFERENCE", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadySubmitted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_SUBMITTED", Message: err.Error()})
	case errors.Is(err, domain.ErrNotDraft):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_DRAFT", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// detailLines mensajes individuales de un error compuesto con errors.Join, sin los sentinelas.
func detailLines(err error) []string {
	var out []string
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == domain.ErrInvalidInput.Error() {
			continue
		}
		out = append(out, line)
	}
	return out
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
