package attendance

import (
	"context"

	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con el repositorio de marcaciones atado a ella.
// La implementación debe serializar las transacciones del mismo employeeID (lectura de la última
// marcación + inserción atómicas).
type TxRunner interface {
	RunAttendance(ctx context.Context, employeeID string, fn func(repo repository.AttendanceRepository) error) error
}
