package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/domain"
)

// statusForCode estado HTTP de un código de error de dominio.
func statusForCode(code string) int {
	switch code {
	case dto.CodeValidation:
		return fiber.StatusBadRequest
	case dto.CodeNotFound, dto.CodeNoMatch:
		return fiber.StatusNotFound
	case dto.CodeSessionBusy, dto.CodeDuplicateTemplate:
		return fiber.StatusConflict
	case dto.CodeConfirmationMismatch:
		return fiber.StatusUnprocessableEntity
	case dto.CodeCaptureTimeout:
		return fiber.StatusRequestTimeout
	case dto.CodeCaptureCancelled:
		return 499
	case dto.CodeDeviceError:
		return fiber.StatusBadGateway
	case dto.CodeStoreUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError responde con el ErrorResponse de un error de dominio.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta inactiva o suspendida"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
	}
	code := dto.ErrorCode(err)
	return c.Status(statusForCode(code)).JSON(dto.ErrorResponse{Code: code, Message: dto.ErrorMessage(err)})
}

// writeResult responde un OperationResult: okStatus si tuvo éxito, el estado del código si no.
func writeResult(c *fiber.Ctx, res dto.OperationResult, okStatus int, body any) error {
	if res.Success {
		return c.Status(okStatus).JSON(body)
	}
	return c.Status(statusForCode(res.Error)).JSON(body)
}
