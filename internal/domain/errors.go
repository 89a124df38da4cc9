package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// Errores del flujo biométrico y de asistencia.
var (
	ErrCaptureTimeout       = errors.New("tiempo de captura agotado")
	ErrCaptureCancelled     = errors.New("captura cancelada")
	ErrDeviceError          = errors.New("error del lector de huellas")
	ErrSessionBusy          = errors.New("ya hay una captura en curso en esta estación")
	ErrConfirmationMismatch = errors.New("las dos capturas de la huella no coinciden")
	ErrDuplicateTemplate    = errors.New("la huella ya está registrada para otro empleado")
	ErrNoMatch              = errors.New("huella no reconocida")
	ErrStoreUnavailable     = errors.New("almacenamiento no disponible")
)
