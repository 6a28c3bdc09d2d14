package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jvargas/trazalote/internal/application/dto"
	"github.com/jvargas/trazalote/internal/domain"
)

// errorResponse mapea los errores de dominio a códigos HTTP. Los casos de uso
// envuelven los centinelas con contexto, por eso errors.Is y no comparación
// directa.
func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_QUANTITY", Message: err.Error()})
	case errors.Is(err, domain.ErrLotClosed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LOT_CLOSED", Message: err.Error()})
	case errors.Is(err, domain.ErrCyclicReference):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CYCLIC_REFERENCE", Message: err.Error()})
	case errors.Is(err, domain.ErrSelfReference):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "SELF_REFERENCE", Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownProcess):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_PROCESS", Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownGrade):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_GRADE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrReadOnlyCatalog):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "READ_ONLY_CATALOG", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
