// Package identification resuelve a qué empleado activo pertenece una captura (búsqueda 1:N).
package identification

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/application/ports"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/biometric"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
)

// Resultados para métricas.
const (
	OutcomeExact   = "exact"
	OutcomeFuzzy   = "fuzzy"
	OutcomeNoMatch = "no_match"
	OutcomeFailed  = "failed"
)

// MsgNoMatch mensaje para la estación cuando ninguna plantilla coincide.
const MsgNoMatch = "Huella no reconocida"

// Config parámetros de la identificación.
type Config struct {
	CaptureTimeout time.Duration // 15 s
	// ScanWorkers > 1 reparte la búsqueda difusa entre goroutines; el resultado sigue siendo
	// la coincidencia de menor índice en el orden del repositorio.
	ScanWorkers int
}

// DefaultConfig valores por defecto.
func DefaultConfig() Config {
	return Config{CaptureTimeout: 15 * time.Second, ScanWorkers: 1}
}

// UseCase flujo de identificación.
type UseCase struct {
	employees repository.EmployeeRepository
	notifier  ports.StatusNotifier
	metrics   ports.BiometricMetrics
	cfg       Config
}

// NewUseCase construye el caso de uso. metrics puede ser nil.
func NewUseCase(employees repository.EmployeeRepository, notifier ports.StatusNotifier, metrics ports.BiometricMetrics, cfg Config) *UseCase {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if cfg.ScanWorkers < 1 {
		cfg.ScanWorkers = 1
	}
	return &UseCase{employees: employees, notifier: notifier, metrics: metrics, cfg: cfg}
}

// Identify captura una huella y busca al empleado:
//  1. atajo exacto: plantilla idéntica en el repositorio => puntaje 100, sin comparación difusa;
//  2. búsqueda difusa sobre ListActive en su orden estable, gana la PRIMERA coincidencia
//     (no la de mayor puntaje).
//
// Sin candidatos o sin coincidencia => domain.ErrNoMatch.
func (uc *UseCase) Identify(ctx context.Context, stationID string, capturer ports.Capturer) (*entity.Employee, biometric.MatchResult, error) {
	probe, err := capturer.Capture(ctx, uc.cfg.CaptureTimeout)
	if err != nil {
		uc.observe(OutcomeFailed)
		return nil, biometric.MatchResult{}, err
	}
	return uc.Resolve(ctx, stationID, probe)
}

// Resolve ejecuta la búsqueda 1:N para una plantilla ya capturada.
func (uc *UseCase) Resolve(ctx context.Context, stationID string, probe entity.Template) (*entity.Employee, biometric.MatchResult, error) {
	exact, err := uc.employees.FindActiveByExactTemplate(ctx, probe.Raw)
	if err != nil {
		uc.observe(OutcomeFailed)
		return nil, biometric.MatchResult{}, err
	}
	if exact != nil {
		uc.observe(OutcomeExact)
		return exact, biometric.Exact(), nil
	}

	candidates, err := uc.employees.ListActive(ctx)
	if err != nil {
		uc.observe(OutcomeFailed)
		return nil, biometric.MatchResult{}, err
	}
	idx, res, err := firstMatch(ctx, probe, candidates, uc.cfg.ScanWorkers)
	if err != nil {
		uc.observe(OutcomeFailed)
		return nil, biometric.MatchResult{}, err
	}
	if idx < 0 {
		uc.notifier.Notify(stationID, MsgNoMatch)
		uc.observe(OutcomeNoMatch)
		return nil, biometric.MatchResult{}, fmt.Errorf("%w: %d candidatos evaluados", domain.ErrNoMatch, len(candidates))
	}
	if uc.metrics != nil {
		uc.metrics.ObserveMatch(res.Score, res.Matched)
	}
	uc.observe(OutcomeFuzzy)
	return candidates[idx], res, nil
}

// IdentifyResult ejecuta Identify y traduce el resultado a la forma estructurada.
func (uc *UseCase) IdentifyResult(ctx context.Context, stationID string, capturer ports.Capturer) dto.IdentificationResult {
	employee, match, err := uc.Identify(ctx, stationID, capturer)
	if err != nil {
		return dto.IdentificationResult{OperationResult: dto.Failure(err)}
	}
	return dto.IdentificationResult{
		OperationResult: dto.OperationResult{Success: true, Message: "Identificado: " + employee.Name},
		Employee:        dto.ToEmployeeResponse(employee),
		Match:           &dto.MatchResponse{Matched: match.Matched, Score: match.Score},
	}
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.ObserveIdentification(outcome)
	}
}
