package dto

import (
	"errors"

	"github.com/jhoicas/Asistencia-api/internal/domain"
)

// Códigos de error expuestos a clientes.
const (
	CodeCaptureTimeout       = "CAPTURE_TIMEOUT"
	CodeCaptureCancelled     = "CAPTURE_CANCELLED"
	CodeDeviceError          = "DEVICE_ERROR"
	CodeSessionBusy          = "SESSION_BUSY"
	CodeConfirmationMismatch = "CONFIRMATION_MISMATCH"
	CodeDuplicateTemplate    = "DUPLICATE_TEMPLATE"
	CodeNoMatch              = "NO_MATCH"
	CodeStoreUnavailable     = "STORE_UNAVAILABLE"
	CodeValidation           = "VALIDATION"
	CodeNotFound             = "NOT_FOUND"
	CodeInternal             = "INTERNAL"
)

type errorInfo struct {
	err     error
	code    string
	message string
}

// El orden importa: un error de almacenamiento envuelto junto a otro se reporta como tal.
var errorTable = []errorInfo{
	{domain.ErrSessionBusy, CodeSessionBusy, "La estación ya está esperando una huella"},
	{domain.ErrCaptureTimeout, CodeCaptureTimeout, "No se detectó ninguna huella a tiempo, intente de nuevo"},
	{domain.ErrCaptureCancelled, CodeCaptureCancelled, "La captura fue cancelada"},
	{domain.ErrDeviceError, CodeDeviceError, "El lector de huellas no responde"},
	{domain.ErrConfirmationMismatch, CodeConfirmationMismatch, "Las dos lecturas de la huella no coinciden, repita el enrolamiento"},
	{domain.ErrDuplicateTemplate, CodeDuplicateTemplate, "Esta huella ya está registrada"},
	{domain.ErrNoMatch, CodeNoMatch, "Huella no reconocida"},
	{domain.ErrStoreUnavailable, CodeStoreUnavailable, "El sistema no está disponible, intente más tarde"},
	{domain.ErrInvalidInput, CodeValidation, "Datos inválidos"},
	{domain.ErrNotFound, CodeNotFound, "Recurso no encontrado"},
}

// ErrorCode traduce un error del dominio a su código estable.
func ErrorCode(err error) string {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return CodeInternal
}

// ErrorMessage traduce un error del dominio a un mensaje para el usuario final.
func ErrorMessage(err error) string {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			return e.message
		}
	}
	return "Error inesperado"
}
