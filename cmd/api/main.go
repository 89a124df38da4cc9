package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Asistencia-api/internal/application/attendance"
	"github.com/jhoicas/Asistencia-api/internal/application/auth"
	"github.com/jhoicas/Asistencia-api/internal/application/capture"
	"github.com/jhoicas/Asistencia-api/internal/application/enrollment"
	"github.com/jhoicas/Asistencia-api/internal/application/identification"
	"github.com/jhoicas/Asistencia-api/internal/application/ports"
	"github.com/jhoicas/Asistencia-api/internal/application/report"
	"github.com/jhoicas/Asistencia-api/internal/application/timeclock"
	"github.com/jhoicas/Asistencia-api/internal/application/usecase"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/device"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/kafka"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/lock"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/notifier"
	infrapdf "github.com/jhoicas/Asistencia-api/internal/infrastructure/pdf"
	infraredis "github.com/jhoicas/Asistencia-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Asistencia-api/internal/interfaces/http"
	"github.com/jhoicas/Asistencia-api/pkg/config"
	"github.com/jhoicas/Asistencia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer st.Close()

	loc, _ := cfg.Attendance.Location() // validada en config.Load
	mtr := metrics.New()
	board := notifier.NewBoard(notifier.DefaultCapacity, log.Component("station"))

	// Candado por empleado: Redis si está configurado (varias instancias), si no en proceso.
	var locker ports.KeyedLocker = lock.NewLocal()
	redisClient, err := infraredis.New(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
		locker = lock.NewRedis(redisClient.Client, cfg.Redis.LockTTL)
		log.Info().Msg("candado distribuido de marcaciones en Redis")
	}

	attendanceOpts := []attendance.Option{attendance.WithMetrics(mtr)}
	if cfg.Kafka.Enabled() {
		pub, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente Kafka")
		}
		defer pub.Close()
		attendanceOpts = append(attendanceOpts, attendance.WithPublisher(pub))
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicación de marcaciones activa")
	}

	stations := device.NewRegistry(entity.TemplateFormat(cfg.Biometric.SampleFormat), board, capture.WithMetrics(mtr))
	if len(cfg.Biometric.Stations) > 0 {
		if err := stations.Allow(cfg.Biometric.Stations...); err != nil {
			log.Fatal().Err(err).Msg("BIOMETRIC_STATIONS")
		}
	}

	enrollUC := enrollment.NewUseCase(st.employees, board, enrollment.Config{
		CaptureTimeout:    cfg.Biometric.CaptureTimeout,
		ConfirmationPause: cfg.Biometric.ConfirmationPause,
	}, enrollment.WithMetrics(mtr))
	identifyUC := identification.NewUseCase(st.employees, board, mtr, identification.Config{
		CaptureTimeout: cfg.Biometric.CaptureTimeout,
		ScanWorkers:    cfg.Biometric.ScanWorkers,
	})
	attendanceUC := attendance.NewUseCase(st.txRunner, locker, attendance.Config{
		Location:              loc,
		DefaultInOnStoreError: cfg.Attendance.DefaultInOnStoreError,
	}, attendanceOpts...)
	timeclockUC := timeclock.NewUseCase(identifyUC, attendanceUC, board)
	employeeUC := usecase.NewEmployeeUseCase(st.employees, st.attendance)
	reportUC := report.NewUseCase(st.employees, st.attendance, infrapdf.NewMarotoPDFGenerator(), loc, cfg.Report.Title)
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// El enrolamiento hace dos capturas y una pausa dentro de la misma petición.
	writeTimeout := 2*cfg.Biometric.CaptureTimeout + cfg.Biometric.ConfirmationPause + 10*time.Second
	app := httpRouter.NewApp(cfg.App.Name, writeTimeout)
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Asistencia API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if redisClient != nil {
			if err := redisClient.Health(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "redis": err.Error()})
			}
		}
		if st.pool != nil {
			if err := st.pool.Ping(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "postgres": err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(mtr.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		EnrollUC:     enrollUC,
		IdentifyUC:   identifyUC,
		TimeclockUC:  timeclockUC,
		EmployeeUC:   employeeUC,
		ReportUC:     reportUC,
		Stations:     stations,
		Board:        board,
		JWTSecret:    cfg.JWT.Secret,
		MaxSampleLen: cfg.HTTP.MaxSampleBytes,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
