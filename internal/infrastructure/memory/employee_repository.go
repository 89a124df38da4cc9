// Package memory implementa los puertos de persistencia en memoria (modo STORE_DRIVER=memory y tests).
package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo almacén de empleados protegido por RWMutex.
type EmployeeRepo struct {
	mu        sync.RWMutex
	employees map[string]*entity.Employee
}

// NewEmployeeRepository crea el almacén vacío.
func NewEmployeeRepository() *EmployeeRepo {
	return &EmployeeRepo{
		employees: make(map[string]*entity.Employee),
	}
}

// FindActiveByExactTemplate busca un activo con plantilla idéntica.
func (r *EmployeeRepo) FindActiveByExactTemplate(_ context.Context, raw []byte) (*entity.Employee, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.sortedLocked() {
		if e.Active && bytes.Equal(e.Template.Raw, raw) {
			return cloneEmployee(e), nil
		}
	}
	return nil, nil
}

// ListActive activos en orden enrolled_at, id.
func (r *EmployeeRepo) ListActive(_ context.Context) ([]*entity.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Employee
	for _, e := range r.sortedLocked() {
		if e.Active {
			list = append(list, cloneEmployee(e))
		}
	}
	return list, nil
}

// InsertEmployee verifica la unicidad bajo el candado de escritura.
func (r *EmployeeRepo) InsertEmployee(_ context.Context, e *entity.Employee) error {
	if e == nil || e.ID == "" {
		return domain.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[e.ID]; ok {
		return domain.ErrInvalidInput
	}
	if e.Active && r.activeDuplicateLocked(e.ID, e.Template.Raw) {
		return domain.ErrDuplicateTemplate
	}
	r.employees[e.ID] = cloneEmployee(e)
	return nil
}

// GetByID devuelve una copia o (nil, nil).
func (r *EmployeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.employees[id]
	if !ok {
		return nil, nil
	}
	return cloneEmployee(e), nil
}

// SetActive baja o reactivación lógica.
func (r *EmployeeRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return domain.ErrNotFound
	}
	if active && !e.Active && r.activeDuplicateLocked(id, e.Template.Raw) {
		return domain.ErrDuplicateTemplate
	}
	e.Active = active
	return nil
}

func (r *EmployeeRepo) activeDuplicateLocked(selfID string, raw []byte) bool {
	for id, other := range r.employees {
		if id != selfID && other.Active && bytes.Equal(other.Template.Raw, raw) {
			return true
		}
	}
	return false
}

func (r *EmployeeRepo) sortedLocked() []*entity.Employee {
	list := make([]*entity.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.EnrolledAt.Equal(b.EnrolledAt) {
			return a.EnrolledAt.Before(b.EnrolledAt)
		}
		return a.ID < b.ID
	})
	return list
}

func cloneEmployee(e *entity.Employee) *entity.Employee {
	c := *e
	c.Template.Raw = bytes.Clone(e.Template.Raw)
	return &c
}
