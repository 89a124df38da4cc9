package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Asistencia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Asistencia-api/pkg/config"
	"github.com/jhoicas/Asistencia-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "asistencia-admin",
	Short: "Tareas de administración del servicio de asistencia",
	Long: `asistencia-admin opera directamente sobre la base PostgreSQL configurada
(DATABASE_URL o DB_HOST/DB_PORT/...): migraciones, cuentas de operador y reportes.`,
	SilenceUsage: true,
}

// Execute ejecuta el comando raíz.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env carga configuración, logger y pool para los subcomandos.
type env struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return &env{cfg: cfg, log: log, pool: pool}, nil
}

func (e *env) Close() { e.pool.Close() }
