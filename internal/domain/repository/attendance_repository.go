package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// AttendanceRepository define el puerto de persistencia del registro append-only de marcaciones.
type AttendanceRepository interface {
	// FindLastRecordForDay devuelve la marcación más reciente (por timestamp) del empleado en el
	// día local indicado, o (nil, nil) si no hay ninguna.
	FindLastRecordForDay(ctx context.Context, employeeID string, localDate time.Time) (*entity.AttendanceRecord, error)
	// InsertRecord agrega una marcación. Nunca se actualizan ni borran marcaciones.
	InsertRecord(ctx context.Context, record *entity.AttendanceRecord) error
	// ListByDate lista las marcaciones de un día local ordenadas por empleado y timestamp.
	ListByDate(ctx context.Context, localDate time.Time) ([]*entity.AttendanceRecord, error)
	// ListByEmployee lista las marcaciones de un empleado entre dos días locales (inclusive), por timestamp.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]*entity.AttendanceRecord, error)
}
