//go:build integration

// Package containers levanta dependencias reales con testcontainers para los tests de integración.
package containers

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jhoicas/Asistencia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Asistencia-api/pkg/config"
)

// PostgresContainer instancia de PostgreSQL con el esquema migrado.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	Pool      *pgxpool.Pool
}

// NewPostgresContainer arranca PostgreSQL y aplica las migraciones. Sin Docker, el test se omite.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("asistencia"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("Docker no disponible, se omite el test de integración: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 5})
	if err != nil {
		t.Fatalf("crear pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := postgres.Migrate(ctx, pool); err != nil {
		t.Fatalf("migrar: %v", err)
	}
	return &PostgresContainer{Container: container, DSN: dsn, Pool: pool}
}

// Truncate vacía las tablas de datos entre subtests.
func (p *PostgresContainer) Truncate(t *testing.T) {
	t.Helper()
	if _, err := p.Pool.Exec(context.Background(), `TRUNCATE attendance_records, employees, users`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
}
