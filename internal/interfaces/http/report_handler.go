package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/application/report"
)

// ReportHandler hojas de asistencia (protegido).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Daily godoc
// @Summary      Hoja diaria de asistencia
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día local (YYYY-MM-DD), por defecto hoy"
// @Success      200  {object}  dto.DailyReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/daily [get]
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	day, ok := parseDay(c.Query("date"), h.uc.Today())
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe tener formato YYYY-MM-DD"})
	}
	out, err := h.uc.Daily(c.UserContext(), day)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DailyPDF godoc
// @Summary      Hoja diaria de asistencia en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        date  query  string  false  "Día local (YYYY-MM-DD), por defecto hoy"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/daily.pdf [get]
func (h *ReportHandler) DailyPDF(c *fiber.Ctx) error {
	day, ok := parseDay(c.Query("date"), h.uc.Today())
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe tener formato YYYY-MM-DD"})
	}
	doc, err := h.uc.DailyPDF(c.UserContext(), day)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="asistencia-`+day.Format("2006-01-02")+`.pdf"`)
	return c.Send(doc)
}
