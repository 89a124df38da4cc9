// Package pdf genera la hoja diaria de asistencia imprimible.
//
// Layout de la página A4 (horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Fecha      │  Zona horaria + Generado     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Empleado | Área | Entrada | Salida | Marc. | Horas   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Empleados / Turnos abiertos / Horas trabajadas     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/application/report"
)

var _ report.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 176, Green: 32, Blue: 32}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateDailyReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDailyReportPDF(ctx context.Context, rep *dto.DailyReport, title string) ([]byte, error) {
	if rep == nil {
		return nil, fmt.Errorf("pdf: reporte nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(rep.Timezone)
	if err != nil {
		loc = time.UTC
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title+" "+rep.Date, true).
		WithAuthor(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep, title, loc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	if len(rep.Rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin marcaciones registradas para este día.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for _, r := range tableDetailRows(rep.Rows, loc) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rep))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(rep *dto.DailyReport, title string, loc *time.Location) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+rep.Date, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Zona horaria: "+rep.Timezone, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Generado: "+rep.GeneratedAt.In(loc).Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Empleado", 4, align.Left),
		h("Área", 2, align.Left),
		h("Entrada", 2, align.Center),
		h("Salida", 2, align.Center),
		h("Marc.", 1, align.Center),
		h("Horas", 1, align.Right),
	)
}

func tableDetailRows(rows []dto.DailyAttendanceRow, loc *time.Location) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		out := clock(r.LastOut, loc)
		outProps := props.Text{Size: 8, Align: align.Center, Top: 1}
		if r.OpenShift {
			out = "abierto"
			outProps.Color = colorAlert
			outProps.Style = fontstyle.Bold
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(nonEmpty(r.Name, r.EmployeeID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(r.Department, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(clock(r.FirstIn, loc), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(out, outProps)),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Events), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(r.WorkedHours.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(rep *dto.DailyReport) core.Row {
	open := 0
	for _, r := range rep.Rows {
		if r.OpenShift {
			open++
		}
	}
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(24).Add(
		col.New(2).Add(code.NewQr(verificationData(rep), props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(4).Add(
			text.New("Código de control de la hoja.", props.Text{
				Size: 7, Top: 8, Left: 2, Color: colorGray,
			}),
		),
		col.New(4).Add(
			label("Empleados:", 1),
			label("Turnos abiertos:", 7),
			text.New("HORAS TRABAJADAS:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 13,
			}),
		),
		col.New(2).Add(
			value(fmt.Sprintf("%d", len(rep.Rows)), 1),
			value(fmt.Sprintf("%d", open), 7),
			text.New(rep.TotalHours.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 13,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// verificationData contenido del QR: fecha|empleados|horas|generado (UTC).
func verificationData(rep *dto.DailyReport) string {
	return fmt.Sprintf("ASISTENCIA|%s|%d|%s|%s",
		rep.Date, len(rep.Rows), rep.TotalHours.StringFixed(2), rep.GeneratedAt.UTC().Format(time.RFC3339))
}

func clock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "—"
	}
	return t.In(loc).Format("15:04")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
