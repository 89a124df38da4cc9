// Package enrollment registra empleados nuevos a partir de dos capturas confirmadas de la misma huella.
package enrollment

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/application/ports"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/biometric"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
)

// Mensajes de estado del enrolamiento.
const (
	MsgFirstCapture = "Enrolamiento: coloque el dedo en el lector"
	MsgReposition   = "Retire el dedo y vuelva a colocarlo para confirmar"
	MsgMismatch     = "Las lecturas no coinciden, repita el enrolamiento"
	MsgDuplicate    = "Esta huella ya pertenece a otro empleado"
	MsgEnrolled     = "Empleado enrolado: "
)

// Resultados para métricas.
const (
	OutcomeEnrolled  = "enrolled"
	OutcomeMismatch  = "mismatch"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
)

// Config tiempos del enrolamiento.
type Config struct {
	CaptureTimeout    time.Duration // por captura, 15 s
	ConfirmationPause time.Duration // entre la primera y la segunda captura, 2 s
}

// DefaultConfig valores por defecto del flujo.
func DefaultConfig() Config {
	return Config{CaptureTimeout: 15 * time.Second, ConfirmationPause: 2 * time.Second}
}

// UseCase flujo de enrolamiento con doble captura.
type UseCase struct {
	employees repository.EmployeeRepository
	notifier  ports.StatusNotifier
	clock     ports.Clock
	sleeper   ports.Sleeper
	metrics   ports.BiometricMetrics
	cfg       Config
}

// Option configura el caso de uso.
type Option func(*UseCase)

// WithClock reemplaza el reloj usado para EnrolledAt.
func WithClock(c ports.Clock) Option { return func(uc *UseCase) { uc.clock = c } }

// WithSleeper reemplaza la pausa de confirmación (tests sin espera real).
func WithSleeper(s ports.Sleeper) Option { return func(uc *UseCase) { uc.sleeper = s } }

// WithMetrics registra resultados de enrolamiento y puntajes de confirmación.
func WithMetrics(m ports.BiometricMetrics) Option { return func(uc *UseCase) { uc.metrics = m } }

// NewUseCase construye el caso de uso.
func NewUseCase(employees repository.EmployeeRepository, notifier ports.StatusNotifier, cfg Config, opts ...Option) *UseCase {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	uc := &UseCase{
		employees: employees,
		notifier:  notifier,
		clock:     ports.SystemClock{},
		sleeper:   ports.SystemClock{},
		cfg:       cfg,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(uc)
		}
	}
	return uc
}

// Enroll captura dos veces, confirma que ambas lecturas coinciden, verifica que la huella no esté
// registrada (igualdad exacta, no difusa) y persiste el empleado con la primera captura.
// No reintenta: ante timeout el caller debe volver a invocar.
func (uc *UseCase) Enroll(ctx context.Context, stationID string, capturer ports.Capturer, profile entity.EmployeeProfile) (*entity.Employee, error) {
	profile, err := normalizeProfile(profile)
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(stationID, MsgFirstCapture)
	first, err := capturer.Capture(ctx, uc.cfg.CaptureTimeout)
	if err != nil {
		uc.observe(OutcomeFailed)
		return nil, fmt.Errorf("primera captura: %w", err)
	}

	uc.notifier.Notify(stationID, MsgReposition)
	if err := uc.sleeper.Sleep(ctx, uc.cfg.ConfirmationPause); err != nil {
		uc.observe(OutcomeFailed)
		return nil, fmt.Errorf("%w: %w", domain.ErrCaptureCancelled, err)
	}
	second, err := capturer.Capture(ctx, uc.cfg.CaptureTimeout)
	if err != nil {
		uc.observe(OutcomeFailed)
		return nil, fmt.Errorf("captura de confirmación: %w", err)
	}

	verdict := biometric.Compare(first, second)
	if uc.metrics != nil {
		uc.metrics.ObserveMatch(verdict.Score, verdict.Matched)
	}
	if !verdict.Matched {
		uc.notifier.Notify(stationID, MsgMismatch)
		uc.observe(OutcomeMismatch)
		return nil, fmt.Errorf("%w (puntaje %.1f)", domain.ErrConfirmationMismatch, verdict.Score)
	}

	existing, err := uc.employees.FindActiveByExactTemplate(ctx, first.Raw)
	if err != nil {
		uc.observe(OutcomeFailed)
		return nil, err
	}
	if existing != nil {
		uc.notifier.Notify(stationID, MsgDuplicate)
		uc.observe(OutcomeDuplicate)
		return nil, domain.ErrDuplicateTemplate
	}

	employee := &entity.Employee{
		ID:         uuid.New().String(),
		Name:       profile.Name,
		Role:       profile.Role,
		Department: profile.Department,
		Email:      profile.Email,
		Template:   first,
		Active:     true,
		EnrolledAt: uc.clock.Now(),
	}
	// InsertEmployee repite la verificación de unicidad de forma atómica (compare-and-commit).
	if err := uc.employees.InsertEmployee(ctx, employee); err != nil {
		if errors.Is(err, domain.ErrDuplicateTemplate) {
			uc.notifier.Notify(stationID, MsgDuplicate)
			uc.observe(OutcomeDuplicate)
		} else {
			uc.observe(OutcomeFailed)
		}
		return nil, err
	}

	uc.notifier.Notify(stationID, MsgEnrolled+employee.Name)
	uc.observe(OutcomeEnrolled)
	return employee, nil
}

// EnrollResult ejecuta Enroll y traduce cualquier fallo a un resultado estructurado.
func (uc *UseCase) EnrollResult(ctx context.Context, stationID string, capturer ports.Capturer, profile entity.EmployeeProfile) dto.EnrollmentResult {
	employee, err := uc.Enroll(ctx, stationID, capturer, profile)
	if err != nil {
		return dto.EnrollmentResult{OperationResult: dto.Failure(err)}
	}
	return dto.EnrollmentResult{
		OperationResult: dto.OperationResult{Success: true, Message: MsgEnrolled + employee.Name},
		Employee:        dto.ToEmployeeResponse(employee),
	}
}

func normalizeProfile(p entity.EmployeeProfile) (entity.EmployeeProfile, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Role = strings.TrimSpace(p.Role)
	p.Department = strings.TrimSpace(p.Department)
	p.Email = strings.TrimSpace(p.Email)
	if p.Name == "" {
		return p, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if p.Email != "" {
		if _, err := mail.ParseAddress(p.Email); err != nil {
			return p, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
		}
	}
	return p, nil
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.ObserveEnrollment(outcome)
	}
}
