package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrRefNoBlocked        = errors.New("la referencia de factura no puede reutilizarse")
	ErrInvalidReference    = errors.New("la factura referenciada no es válida")
	ErrSellerNotConfigured = errors.New("la identidad del vendedor no está configurada")
	ErrAlreadySubmitted    = errors.New("el documento ya fue aceptado por IRIS")
	ErrNotDraft            = errors.New("el documento ya tiene intentos de envío")
)
