package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// CaptureDevice puerto de salida hacia el lector de huellas.
// El protocolo del dispositivo (USB, agente remoto, simulador) queda del lado del adaptador.
type CaptureDevice interface {
	// ID identificador del dispositivo.
	ID() string
	// Format codificación de las muestras que entrega.
	Format() entity.TemplateFormat
	// Enumerate lista los dispositivos visibles para este adaptador.
	Enumerate(ctx context.Context) ([]string, error)
	// StartAcquisition pone el lector en modo de adquisición. deliver se invoca como máximo una
	// vez con la muestra cruda, de forma asíncrona; si el lector falla antes de formar una
	// muestra, no se invoca.
	StartAcquisition(ctx context.Context, deliver func(sample []byte)) error
	// StopAcquisition sale del modo de adquisición y libera el deliver registrado.
	StopAcquisition(ctx context.Context) error
}

// Capturer obtiene una plantilla en un tiempo acotado. Lo implementa *capture.Session.
type Capturer interface {
	Capture(ctx context.Context, timeout time.Duration) (entity.Template, error)
}
