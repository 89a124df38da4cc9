package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
)

var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

// AttendanceRepo registro append-only en memoria.
type AttendanceRepo struct {
	mu      sync.RWMutex
	records []*entity.AttendanceRecord
}

// NewAttendanceRepository crea el registro vacío.
func NewAttendanceRepository() *AttendanceRepo {
	return &AttendanceRepo{}
}

// FindLastRecordForDay la más reciente por timestamp; a igual timestamp gana la última insertada.
func (r *AttendanceRepo) FindLastRecordForDay(_ context.Context, employeeID string, localDate time.Time) (*entity.AttendanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var last *entity.AttendanceRecord
	for _, rec := range r.records {
		if rec.EmployeeID != employeeID || !rec.LocalDate.Equal(localDate) {
			continue
		}
		if last == nil || !rec.Timestamp.Before(last.Timestamp) {
			last = rec
		}
	}
	if last == nil {
		return nil, nil
	}
	c := *last
	return &c, nil
}

// InsertRecord agrega una copia.
func (r *AttendanceRepo) InsertRecord(_ context.Context, rec *entity.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *rec
	r.records = append(r.records, &c)
	return nil
}

// ListByDate por empleado y timestamp.
func (r *AttendanceRepo) ListByDate(_ context.Context, localDate time.Time) ([]*entity.AttendanceRecord, error) {
	return r.filter(func(rec *entity.AttendanceRecord) bool {
		return rec.LocalDate.Equal(localDate)
	}, true), nil
}

// ListByEmployee rango de días locales inclusivo.
func (r *AttendanceRepo) ListByEmployee(_ context.Context, employeeID string, from, to time.Time) ([]*entity.AttendanceRecord, error) {
	return r.filter(func(rec *entity.AttendanceRecord) bool {
		return rec.EmployeeID == employeeID && !rec.LocalDate.Before(from) && !rec.LocalDate.After(to)
	}, false), nil
}

func (r *AttendanceRepo) filter(keep func(*entity.AttendanceRecord) bool, byEmployee bool) []*entity.AttendanceRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.AttendanceRecord
	for _, rec := range r.records {
		if keep(rec) {
			c := *rec
			list = append(list, &c)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if byEmployee && list[i].EmployeeID != list[j].EmployeeID {
			return list[i].EmployeeID < list[j].EmployeeID
		}
		return list[i].Timestamp.Before(list[j].Timestamp)
	})
	return list
}
