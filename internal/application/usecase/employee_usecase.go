package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
)

// EmployeeUseCase consultas y baja lógica de empleados enrolados.
type EmployeeUseCase struct {
	employees  repository.EmployeeRepository
	attendance repository.AttendanceRepository
}

// NewEmployeeUseCase construye el caso de uso con los puertos de persistencia.
func NewEmployeeUseCase(employees repository.EmployeeRepository, attendance repository.AttendanceRepository) *EmployeeUseCase {
	return &EmployeeUseCase{employees: employees, attendance: attendance}
}

// ListActive lista empleados activos; si query no está vacío filtra por nombre, departamento o
// email sin distinguir mayúsculas ni tildes ("jose" encuentra a "José").
func (uc *EmployeeUseCase) ListActive(ctx context.Context, query string) ([]*dto.EmployeeResponse, error) {
	list, err := uc.employees.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	needle := NormalizeText(query)
	out := make([]*dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		if needle != "" && !matchesQuery(e, needle) {
			continue
		}
		out = append(out, dto.ToEmployeeResponse(e))
	}
	return out, nil
}

// GetByID devuelve domain.ErrNotFound si el empleado no existe.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	e, err := uc.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToEmployeeResponse(e), nil
}

// Deactivate baja lógica: el empleado deja de identificarse y su huella queda libre para un
// nuevo enrolamiento. Nunca se borra.
func (uc *EmployeeUseCase) Deactivate(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	return uc.employees.SetActive(ctx, id, false)
}

// History marcaciones del empleado entre dos días locales (inclusive).
func (uc *EmployeeUseCase) History(ctx context.Context, id string, from, to time.Time) ([]*dto.AttendanceRecordResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}
	if to.Sub(from) > 366*24*time.Hour {
		return nil, fmt.Errorf("%w: rango máximo de un año", domain.ErrInvalidInput)
	}
	e, err := uc.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	records, err := uc.attendance.ListByEmployee(ctx, id, from, to)
	if err != nil {
		return nil, err
	}
	return dto.ToAttendanceRecordList(records), nil
}

func matchesQuery(e *entity.Employee, needle string) bool {
	for _, field := range []string{e.Name, e.Department, e.Email} {
		if strings.Contains(NormalizeText(field), needle) {
			return true
		}
	}
	return false
}

// NormalizeText minúsculas, sin diacríticos y con espacios colapsados.
func NormalizeText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
