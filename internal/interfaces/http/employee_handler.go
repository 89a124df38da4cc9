package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/application/usecase"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// EmployeeHandler administración de empleados enrolados (protegido).
type EmployeeHandler struct {
	uc    *usecase.EmployeeUseCase
	today func() time.Time
}

// NewEmployeeHandler today da el día local por defecto para el historial.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase, today func() time.Time) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, today: today}
}

// List godoc
// @Summary      Listar empleados activos
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Búsqueda por nombre, área o email (sin tildes ni mayúsculas)"
// @Success      200  {array}  dto.EmployeeResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListActive(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		out = []*dto.EmployeeResponse{}
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener empleado por ID
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Dar de baja un empleado
// @Tags         employees
// @Security     Bearer
// @Param        id   path  string  true  "ID del empleado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// History godoc
// @Summary      Historial de marcaciones
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del empleado"
// @Param        from  query  string  false  "Día local inicial (YYYY-MM-DD), por defecto hoy"
// @Param        to    query  string  false  "Día local final (YYYY-MM-DD), por defecto from"
// @Success      200  {array}  dto.AttendanceRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/attendance [get]
func (h *EmployeeHandler) History(c *fiber.Ctx) error {
	from, ok := parseDay(c.Query("from"), h.today())
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe tener formato YYYY-MM-DD"})
	}
	to, ok := parseDay(c.Query("to"), from)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe tener formato YYYY-MM-DD"})
	}
	out, err := h.uc.History(c.UserContext(), c.Params("id"), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// parseDay día local como medianoche UTC; vacío devuelve def.
func parseDay(s string, def time.Time) (time.Time, bool) {
	if s == "" {
		return def, true
	}
	d, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
