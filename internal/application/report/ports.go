package report

import (
	"context"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
)

// PDFGenerator puerto de salida para la representación imprimible de la hoja diaria.
type PDFGenerator interface {
	GenerateDailyReportPDF(ctx context.Context, report *dto.DailyReport, title string) ([]byte, error)
}
