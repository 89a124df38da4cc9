package ports

import (
	"context"

	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// AttendancePublisher publica marcaciones ya confirmadas hacia sistemas externos (nómina, BI).
// Es posterior al commit: un fallo de publicación no invalida la marcación.
type AttendancePublisher interface {
	PublishAttendance(ctx context.Context, record *entity.AttendanceRecord, employee *entity.Employee) error
}
