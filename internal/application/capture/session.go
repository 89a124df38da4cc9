// Package capture media la interacción acotada en el tiempo con un lector de huellas.
package capture

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jhoicas/Asistencia-api/internal/application/ports"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// Mensajes de estado publicados hacia la estación.
const (
	MsgWaiting  = "Coloque el dedo en el lector"
	MsgCaptured = "Huella capturada"
	MsgTimedOut = "Tiempo de captura agotado"
)

// Resultados de captura para métricas.
const (
	OutcomeCaptured    = "captured"
	OutcomeTimeout     = "timeout"
	OutcomeDeviceError = "device_error"
	OutcomeBusy        = "busy"
	OutcomeCancelled   = "cancelled"
)

// Session una captura a la vez sobre un dispositivo.
type Session struct {
	stationID string
	device    ports.CaptureDevice
	notifier  ports.StatusNotifier
	clock     ports.Clock
	metrics   ports.BiometricMetrics
	busy      atomic.Bool
}

// Option configura una Session.
type Option func(*Session)

// WithClock reemplaza el reloj usado para CapturedAt.
func WithClock(c ports.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithMetrics registra los resultados de captura.
func WithMetrics(m ports.BiometricMetrics) Option {
	return func(s *Session) { s.metrics = m }
}

// NewSession construye la sesión de captura de una estación.
func NewSession(stationID string, device ports.CaptureDevice, notifier ports.StatusNotifier, opts ...Option) *Session {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	s := &Session{
		stationID: stationID,
		device:    device,
		notifier:  notifier,
		clock:     ports.SystemClock{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// StationID estación a la que pertenece la sesión.
func (s *Session) StationID() string { return s.stationID }

// Busy informa si hay una captura en curso.
func (s *Session) Busy() bool { return s.busy.Load() }

// Capture arma el lector y espera una muestra durante timeout.
// Al volver, el lector quedó fuera de adquisición y el handle de entrega está desarmado:
// una muestra tardía se descarta.
func (s *Session) Capture(ctx context.Context, timeout time.Duration) (entity.Template, error) {
	if !s.busy.CompareAndSwap(false, true) {
		s.observe(OutcomeBusy)
		return entity.Template{}, domain.ErrSessionBusy
	}
	defer s.busy.Store(false)

	// Handle de un solo uso: CAS garantiza un único envío, por lo que el buffer de 1 nunca bloquea.
	samples := make(chan []byte, 1)
	var armed atomic.Bool
	armed.Store(true)
	deliver := func(sample []byte) {
		if armed.CompareAndSwap(true, false) {
			samples <- sample
		}
	}

	if err := s.device.StartAcquisition(ctx, deliver); err != nil {
		armed.Store(false)
		s.observe(OutcomeDeviceError)
		return entity.Template{}, fmt.Errorf("%w: iniciar adquisición: %v", domain.ErrDeviceError, err)
	}
	s.notifier.Notify(s.stationID, MsgWaiting)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case sample := <-samples:
		if err := s.stop(); err != nil {
			s.observe(OutcomeDeviceError)
			return entity.Template{}, err
		}
		if len(sample) == 0 {
			s.observe(OutcomeDeviceError)
			return entity.Template{}, fmt.Errorf("%w: muestra vacía", domain.ErrDeviceError)
		}
		s.notifier.Notify(s.stationID, MsgCaptured)
		s.observe(OutcomeCaptured)
		return entity.NewTemplate(s.device.Format(), sample, s.clock.Now()), nil

	case <-timer.C:
		armed.Store(false)
		stopErr := s.stop()
		s.notifier.Notify(s.stationID, MsgTimedOut)
		s.observe(OutcomeTimeout)
		if stopErr != nil {
			return entity.Template{}, errors.Join(domain.ErrCaptureTimeout, stopErr)
		}
		return entity.Template{}, domain.ErrCaptureTimeout

	case <-ctx.Done():
		armed.Store(false)
		stopErr := s.stop()
		s.observe(OutcomeCancelled)
		return entity.Template{}, errors.Join(fmt.Errorf("%w: %w", domain.ErrCaptureCancelled, ctx.Err()), stopErr)
	}
}

// stop usa un contexto propio: la adquisición debe detenerse aunque el del caller ya esté cancelado.
func (s *Session) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.device.StopAcquisition(ctx); err != nil {
		return fmt.Errorf("%w: detener adquisición: %v", domain.ErrDeviceError, err)
	}
	return nil
}

func (s *Session) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveCapture(outcome)
	}
}
