package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Asistencia-api/internal/application/auth"
	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/application/enrollment"
	"github.com/jhoicas/Asistencia-api/internal/application/identification"
	"github.com/jhoicas/Asistencia-api/internal/application/report"
	"github.com/jhoicas/Asistencia-api/internal/application/timeclock"
	"github.com/jhoicas/Asistencia-api/internal/application/usecase"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/device"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/notifier"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	EnrollUC     *enrollment.UseCase
	IdentifyUC   *identification.UseCase
	TimeclockUC  *timeclock.UseCase
	EmployeeUC   *usecase.EmployeeUseCase
	ReportUC     *report.UseCase
	Stations     *device.Registry
	Board        *notifier.Board
	JWTSecret    string
	MaxSampleLen int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	staff := RequireRole(StaffRoles...)
	kiosk := RequireRole(KioskRoles...)

	// Estaciones: el agente del kiosco usa un token de rol station
	stationHandler := NewStationHandler(deps.Stations, deps.Board, deps.EnrollUC, deps.IdentifyUC, deps.TimeclockUC)
	stations := protected.Group("/stations")
	stations.Get("/", staff, stationHandler.List)
	stations.Post("/:id/samples", kiosk, maxBody(deps.MaxSampleLen), stationHandler.Samples)
	stations.Post("/:id/punch", kiosk, stationHandler.Punch)
	stations.Post("/:id/identify", kiosk, stationHandler.Identify)
	stations.Get("/:id/status", kiosk, stationHandler.Status)
	stations.Post("/:id/enroll", staff, stationHandler.Enroll)

	// Empleados
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC, deps.ReportUC.Today)
	employees := protected.Group("/employees", staff)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Get("/:id/attendance", employeeHandler.History)
	employees.Delete("/:id", RequireRole(entity.RoleAdmin), employeeHandler.Deactivate)

	// Reportes
	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports", staff)
	reports.Get("/daily", reportHandler.Daily)
	reports.Get("/daily.pdf", reportHandler.DailyPDF)
}

// maxBody rechaza cuerpos mayores a n bytes (n <= 0 sin límite propio).
func maxBody(n int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if n > 0 && len(c.Body()) > n {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
				Code:    "SAMPLE_TOO_LARGE",
				Message: "la muestra supera el tamaño permitido",
			})
		}
		return c.Next()
	}
}

// NewApp configuración de Fiber para el servicio. writeTimeout debe cubrir una captura completa
// (el enrolamiento hace dos).
func NewApp(name string, writeTimeout time.Duration) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    8 << 20,
	})
}
