package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Asistencia-api/internal/application/attendance"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/memory"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Asistencia-api/pkg/config"
)

// stores repositorios según STORE_DRIVER.
type stores struct {
	employees  repository.EmployeeRepository
	attendance repository.AttendanceRepository
	users      repository.UserRepository
	txRunner   attendance.TxRunner
	pool       *pgxpool.Pool
}

func (s *stores) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		att := memory.NewAttendanceRepository()
		return &stores{
			employees:  memory.NewEmployeeRepository(),
			attendance: att,
			users:      memory.NewUserRepository(),
			txRunner:   memory.NewTxRunner(att),
		}, nil
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if _, err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		return &stores{
			employees:  postgres.NewEmployeeRepository(pool),
			attendance: postgres.NewAttendanceRepository(pool),
			users:      postgres.NewUserRepository(pool),
			txRunner:   postgres.NewTxRunner(pool),
			pool:       pool,
		}, nil
	default:
		return nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.Store.Driver)
	}
}
