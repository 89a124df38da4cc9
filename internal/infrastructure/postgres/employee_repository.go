package postgres

import (
	"context"
	"crypto/sha256"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, name, role, department, email, template_format, template_raw, template_captured_at, active, enrolled_at`

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// FindActiveByExactTemplate busca por hash (índice) y confirma con igualdad de bytes.
func (r *EmployeeRepo) FindActiveByExactTemplate(ctx context.Context, raw []byte) (*entity.Employee, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	sum := sha256.Sum256(raw)
	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE active AND template_sha256 = $1 AND template_raw = $2
		LIMIT 1`
	e, err := scanEmployee(r.q.QueryRow(ctx, query, sum[:], raw))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("find employee by template", err)
	}
	return e, nil
}

// ListActive orden estable documentado: enrolled_at y luego id.
func (r *EmployeeRepo) ListActive(ctx context.Context) ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + `
		FROM employees WHERE active ORDER BY enrolled_at, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list active employees", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, storeErr("scan employee", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list active employees", err)
	}
	return list, nil
}

// InsertEmployee el índice único parcial employees_active_template_uq hace atómica la verificación
// de unicidad frente a enrolamientos concurrentes.
func (r *EmployeeRepo) InsertEmployee(ctx context.Context, e *entity.Employee) error {
	sum := sha256.Sum256(e.Template.Raw)
	query := `
		INSERT INTO employees (id, name, role, department, email, template_format, template_raw,
			template_sha256, template_captured_at, active, enrolled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Name, e.Role, e.Department, e.Email, string(e.Template.Format), e.Template.Raw,
		sum[:], e.Template.CapturedAt, e.Active, e.EnrolledAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateTemplate
		}
		return storeErr("insert employee", err)
	}
	return nil
}

// GetByID obtiene un empleado (activo o no) por ID.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	// Un id que no es UUID no existe (evita el error de sintaxis de Postgres).
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	e, err := scanEmployee(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get employee", err)
	}
	return e, nil
}

// SetActive reactivar puede chocar con otra plantilla activa idéntica (ErrDuplicateTemplate).
func (r *EmployeeRepo) SetActive(ctx context.Context, id string, active bool) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `UPDATE employees SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateTemplate
		}
		return storeErr("set employee active", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var (
		e      entity.Employee
		format string
	)
	err := row.Scan(&e.ID, &e.Name, &e.Role, &e.Department, &e.Email,
		&format, &e.Template.Raw, &e.Template.CapturedAt, &e.Active, &e.EnrolledAt)
	if err != nil {
		return nil, err
	}
	e.Template.Format = entity.TemplateFormat(format)
	return &e, nil
}

