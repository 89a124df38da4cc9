// Package report arma la hoja diaria de asistencia a partir del registro de marcaciones.
package report

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/application/ports"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
)

// UseCase reportes de asistencia.
type UseCase struct {
	employees  repository.EmployeeRepository
	attendance repository.AttendanceRepository
	pdf        PDFGenerator
	clock      ports.Clock
	loc        *time.Location
	title      string
}

// NewUseCase construye el caso de uso. pdf puede ser nil si no se exponen PDFs.
func NewUseCase(
	employees repository.EmployeeRepository,
	attendance repository.AttendanceRepository,
	pdf PDFGenerator,
	loc *time.Location,
	title string,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{employees: employees, attendance: attendance, pdf: pdf, clock: ports.SystemClock{}, loc: loc, title: title}
}

// Today día local actual en la zona del reporte.
func (uc *UseCase) Today() time.Time {
	return entity.LocalDate(uc.clock.Now(), uc.loc)
}

// Daily hoja de asistencia del día local indicado (medianoche UTC, ver entity.LocalDate).
// Las horas trabajadas suman los pares IN→OUT; un IN sin OUT queda como turno abierto.
func (uc *UseCase) Daily(ctx context.Context, day time.Time) (*dto.DailyReport, error) {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	records, err := uc.attendance.ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[string][]*entity.AttendanceRecord)
	for _, r := range records {
		byEmployee[r.EmployeeID] = append(byEmployee[r.EmployeeID], r)
	}

	rows := make([]dto.DailyAttendanceRow, 0, len(byEmployee))
	total := decimal.Zero
	for employeeID, recs := range byEmployee {
		sort.SliceStable(recs, func(i, j int) bool { return recs[i].Timestamp.Before(recs[j].Timestamp) })
		row := summarize(employeeID, recs)
		if e, err := uc.employees.GetByID(ctx, employeeID); err != nil {
			return nil, err
		} else if e != nil {
			row.Name = e.Name
			row.Department = e.Department
		}
		total = total.Add(row.WorkedHours)
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})

	return &dto.DailyReport{
		Date:        day.Format(entity.DateLayout),
		Timezone:    uc.loc.String(),
		Rows:        rows,
		TotalHours:  total,
		GeneratedAt: uc.clock.Now(),
	}, nil
}

// DailyPDF genera el PDF de la hoja diaria.
func (uc *UseCase) DailyPDF(ctx context.Context, day time.Time) ([]byte, error) {
	if uc.pdf == nil {
		return nil, errors.New("generador PDF no configurado")
	}
	rep, err := uc.Daily(ctx, day)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateDailyReportPDF(ctx, rep, uc.title)
}

// summarize recs debe venir ordenado por timestamp.
func summarize(employeeID string, recs []*entity.AttendanceRecord) dto.DailyAttendanceRow {
	row := dto.DailyAttendanceRow{EmployeeID: employeeID, Events: len(recs), WorkedHours: decimal.Zero}
	var openSince *time.Time
	worked := time.Duration(0)
	for _, r := range recs {
		ts := r.Timestamp
		switch r.Type {
		case entity.AttendanceTypeIN:
			if row.FirstIn == nil {
				row.FirstIn = &ts
			}
			openSince = &ts
		case entity.AttendanceTypeOUT:
			row.LastOut = &ts
			if openSince != nil {
				worked += ts.Sub(*openSince)
				openSince = nil
			}
		}
	}
	row.OpenShift = openSince != nil
	row.WorkedHours = decimal.NewFromFloat(worked.Hours()).Round(2)
	return row
}
