package memory

import (
	"context"

	"github.com/jhoicas/Asistencia-api/internal/application/attendance"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
)

var _ attendance.TxRunner = (*TxRunner)(nil)

// TxRunner sin transacciones: la atomicidad la da el KeyedLocker del caso de uso.
type TxRunner struct {
	repo repository.AttendanceRepository
}

// NewTxRunner envuelve el repositorio de marcaciones.
func NewTxRunner(repo repository.AttendanceRepository) *TxRunner {
	return &TxRunner{repo: repo}
}

// RunAttendance ejecuta fn con el repositorio.
func (r *TxRunner) RunAttendance(ctx context.Context, _ string, fn func(repo repository.AttendanceRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r.repo)
}
