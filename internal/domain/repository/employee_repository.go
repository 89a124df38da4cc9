package repository

import (
	"context"

	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para empleados enrolados (DIP).
// Los errores de infraestructura se devuelven envueltos con domain.ErrStoreUnavailable.
type EmployeeRepository interface {
	// FindActiveByExactTemplate busca un empleado activo cuya plantilla sea byte a byte igual a raw.
	// Devuelve (nil, nil) si no existe.
	FindActiveByExactTemplate(ctx context.Context, raw []byte) (*entity.Employee, error)
	// ListActive lista los empleados activos en orden estable: enrolled_at ascendente y luego id.
	ListActive(ctx context.Context) ([]*entity.Employee, error)
	// InsertEmployee persiste un empleado nuevo verificando de forma atómica que ningún
	// empleado activo tenga la misma plantilla (domain.ErrDuplicateTemplate).
	InsertEmployee(ctx context.Context, employee *entity.Employee) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	// SetActive cambia únicamente el flag active (baja lógica). domain.ErrNotFound si no existe.
	SetActive(ctx context.Context, id string, active bool) error
}
