package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Asistencia-api/internal/application/attendance"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
)

// Ensure TxRunner implements attendance.TxRunner.
var _ attendance.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunAttendance inicia una transacción, toma un advisory lock de transacción sobre el empleado
// (serializa "leer última marcación + insertar" entre instancias), ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) RunAttendance(ctx context.Context, employeeID string, fn func(repo repository.AttendanceRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storeErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended('attendance:' || $1, 0))`, employeeID); err != nil {
		return storeErr("advisory lock", err)
	}

	if err := fn(NewAttendanceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit transaction", err)
	}
	return nil
}
