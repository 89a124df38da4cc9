package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyAttendanceRow resumen diario de un empleado.
type DailyAttendanceRow struct {
	EmployeeID  string          `json:"employee_id"`
	Name        string          `json:"name"`
	Department  string          `json:"department"`
	FirstIn     *time.Time      `json:"first_in,omitempty"`
	LastOut     *time.Time      `json:"last_out,omitempty"`
	Events      int             `json:"events"`
	WorkedHours decimal.Decimal `json:"worked_hours"`
	OpenShift   bool            `json:"open_shift"` // última marcación del día es IN
}

// DailyReport hoja de asistencia de un día local.
type DailyReport struct {
	Date        string               `json:"date"`
	Timezone    string               `json:"timezone"`
	Rows        []DailyAttendanceRow `json:"rows"`
	TotalHours  decimal.Decimal      `json:"total_hours"`
	GeneratedAt time.Time            `json:"generated_at"`
}
