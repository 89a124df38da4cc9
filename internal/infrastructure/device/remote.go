// Package device adaptadores de lector de huellas. RemoteDevice recibe las muestras que empuja
// el agente de la estación por HTTP.
package device

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"sync"

	_ "golang.org/x/image/bmp"

	"github.com/jhoicas/Asistencia-api/internal/application/ports"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

var _ ports.CaptureDevice = (*RemoteDevice)(nil)

var (
	// ErrAlreadyAcquiring el lector ya tiene una adquisición armada.
	ErrAlreadyAcquiring = errors.New("el lector ya está en adquisición")
	// ErrNotAcquiring nadie espera una muestra en esta estación.
	ErrNotAcquiring = errors.New("la estación no está esperando una huella")
	// ErrInvalidSample la muestra no corresponde al formato del lector.
	ErrInvalidSample = errors.New("muestra inválida")
)

// RemoteDevice lector virtual: StartAcquisition arma un handle, Push entrega como máximo una muestra.
type RemoteDevice struct {
	id     string
	format entity.TemplateFormat

	mu      sync.Mutex
	deliver func([]byte)
}

// NewRemoteDevice crea el lector de una estación.
func NewRemoteDevice(id string, format entity.TemplateFormat) *RemoteDevice {
	return &RemoteDevice{id: id, format: format}
}

func (d *RemoteDevice) ID() string                    { return d.id }
func (d *RemoteDevice) Format() entity.TemplateFormat { return d.format }

// Enumerate un agente remoto expone un único lector.
func (d *RemoteDevice) Enumerate(context.Context) ([]string, error) {
	return []string{d.id}, nil
}

// StartAcquisition arma el handle de entrega.
func (d *RemoteDevice) StartAcquisition(_ context.Context, deliver func([]byte)) error {
	if deliver == nil {
		return errors.New("deliver requerido")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.deliver != nil {
		return ErrAlreadyAcquiring
	}
	d.deliver = deliver
	return nil
}

// StopAcquisition desarma; es idempotente.
func (d *RemoteDevice) StopAcquisition(context.Context) error {
	d.mu.Lock()
	d.deliver = nil
	d.mu.Unlock()
	return nil
}

// Acquiring indica si hay una captura esperando muestra.
func (d *RemoteDevice) Acquiring() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deliver != nil
}

// Push valida la muestra y la entrega a la captura armada. El handle se consume: una segunda
// muestra antes del siguiente StartAcquisition devuelve ErrNotAcquiring.
func (d *RemoteDevice) Push(sample []byte) error {
	if err := ValidateSample(d.format, sample); err != nil {
		return err
	}
	d.mu.Lock()
	deliver := d.deliver
	d.deliver = nil
	d.mu.Unlock()
	if deliver == nil {
		return ErrNotAcquiring
	}
	deliver(bytes.Clone(sample))
	return nil
}

// ValidateSample PNG y BMP deben decodificar su cabecera con el formato esperado; RAW solo no vacío.
func ValidateSample(format entity.TemplateFormat, sample []byte) error {
	if len(sample) == 0 {
		return fmt.Errorf("%w: vacía", ErrInvalidSample)
	}
	var want string
	switch format {
	case entity.TemplateFormatRAW:
		return nil
	case entity.TemplateFormatPNG:
		want = "png"
	case entity.TemplateFormatBMP:
		want = "bmp"
	default:
		return fmt.Errorf("%w: formato %q no soportado", ErrInvalidSample, format)
	}
	cfg, got, err := image.DecodeConfig(bytes.NewReader(sample))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSample, err)
	}
	if got != want {
		return fmt.Errorf("%w: se esperaba %s y llegó %s", ErrInvalidSample, want, got)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("%w: imagen sin dimensiones", ErrInvalidSample)
	}
	return nil
}
