// Package attendance decide si una marcación es entrada o salida y la persiste.
package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Asistencia-api/internal/application/ports"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
)

// Config parámetros de la máquina de estados.
type Config struct {
	Location *time.Location // zona usada para calcular el día local
	// DefaultInOnStoreError: si la consulta de la última marcación falla, registrar IN en vez de
	// propagar domain.ErrStoreUnavailable. Desactivado por defecto.
	DefaultInOnStoreError bool
}

// UseCase máquina de estados de asistencia. No guarda estado entre invocaciones: todo vive en el
// registro append-only, indexado por (employeeID, día local).
type UseCase struct {
	txRunner  TxRunner
	locker    ports.KeyedLocker
	clock     ports.Clock
	publisher ports.AttendancePublisher
	metrics   ports.BiometricMetrics
	cfg       Config

	publishTimeout time.Duration
}

// DefaultPublishTimeout límite de la publicación de cada marcación.
const DefaultPublishTimeout = 3 * time.Second

// Option configura el caso de uso.
type Option func(*UseCase)

// WithClock reemplaza el reloj.
func WithClock(c ports.Clock) Option { return func(uc *UseCase) { uc.clock = c } }

// WithPublisher publica cada marcación confirmada.
func WithPublisher(p ports.AttendancePublisher) Option { return func(uc *UseCase) { uc.publisher = p } }

// WithPublishTimeout acota cuánto espera RecordEvent al publicador (d <= 0 usa DefaultPublishTimeout).
func WithPublishTimeout(d time.Duration) Option {
	return func(uc *UseCase) {
		if d > 0 {
			uc.publishTimeout = d
		}
	}
}

// WithMetrics cuenta marcaciones por tipo.
func WithMetrics(m ports.BiometricMetrics) Option { return func(uc *UseCase) { uc.metrics = m } }

// NewUseCase construye el caso de uso. locker serializa RecordEvent por empleado dentro del proceso
// (o entre instancias, si es distribuido).
func NewUseCase(txRunner TxRunner, locker ports.KeyedLocker, cfg Config, opts ...Option) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	uc := &UseCase{
		txRunner:       txRunner,
		locker:         locker,
		clock:          ports.SystemClock{},
		cfg:            cfg,
		publishTimeout: DefaultPublishTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(uc)
		}
	}
	return uc
}

// Location zona horaria del día local.
func (uc *UseCase) Location() *time.Location { return uc.cfg.Location }

// RecordEvent registra la siguiente marcación del empleado: IN si no hay marcaciones hoy o la
// última fue OUT; OUT si la última fue IN.
func (uc *UseCase) RecordEvent(ctx context.Context, employee *entity.Employee, stationID string) (*entity.AttendanceRecord, error) {
	if employee == nil || employee.ID == "" {
		return nil, fmt.Errorf("%w: empleado requerido", domain.ErrInvalidInput)
	}

	// El candado cubre solo la transacción; la publicación corre después.
	record, err := uc.commit(ctx, employee.ID, stationID)
	if err != nil {
		if !errors.Is(err, domain.ErrStoreUnavailable) && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ObserveAttendance(record.Type)
	}
	uc.publish(ctx, record, employee)
	return record, nil
}

// commit decide y persiste la marcación con el candado del empleado tomado.
func (uc *UseCase) commit(ctx context.Context, employeeID, stationID string) (*entity.AttendanceRecord, error) {
	unlock, err := uc.locker.Lock(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("bloquear marcación de %s: %w", employeeID, err)
	}
	defer unlock()

	var record *entity.AttendanceRecord
	err = uc.txRunner.RunAttendance(ctx, employeeID, func(repo repository.AttendanceRepository) error {
		now := uc.clock.Now()
		today := entity.LocalDate(now, uc.cfg.Location)

		last, err := repo.FindLastRecordForDay(ctx, employeeID, today)
		if err != nil {
			if !uc.cfg.DefaultInOnStoreError {
				return err
			}
			log.Warn().Err(err).Str("employee_id", employeeID).
				Msg("última marcación no disponible, se registra IN por configuración")
			last = nil
		}

		record = &entity.AttendanceRecord{
			ID:         uuid.New().String(),
			EmployeeID: employeeID,
			Type:       entity.NextAttendanceType(last),
			Timestamp:  now,
			LocalDate:  today,
			StationID:  stationID,
		}
		return repo.InsertRecord(ctx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// publish no falla la marcación: un error solo se registra en el log.
func (uc *UseCase) publish(ctx context.Context, record *entity.AttendanceRecord, employee *entity.Employee) {
	if uc.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, uc.publishTimeout)
	defer cancel()
	if err := uc.publisher.PublishAttendance(pubCtx, record, employee); err != nil {
		log.Warn().Err(err).Str("record_id", record.ID).Msg("publicar marcación")
	}
}
