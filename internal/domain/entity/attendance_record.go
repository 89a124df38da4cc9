package entity

import "time"

// Tipos de marcación de asistencia.
const (
	AttendanceTypeIN  = "IN"  // entrada
	AttendanceTypeOUT = "OUT" // salida
)

// DateLayout formato de LocalDate en DTOs y parámetros de consulta.
const DateLayout = "2006-01-02"

// AttendanceRecord marcación de entrada o salida. Solo se insertan, nunca se editan.
type AttendanceRecord struct {
	ID         string
	EmployeeID string
	Type       string // IN, OUT
	Timestamp  time.Time
	LocalDate  time.Time // medianoche UTC del día local de Timestamp
	StationID  string
}

// LocalDate proyecta t al día calendario en loc, representado como medianoche UTC
// para que la comparación y el almacenamiento (DATE) no dependan de la zona.
func LocalDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextAttendanceType alterna estrictamente: sin marcación previa del día o última OUT => IN; última IN => OUT.
func NextAttendanceType(last *AttendanceRecord) string {
	if last == nil || last.Type != AttendanceTypeIN {
		return AttendanceTypeIN
	}
	return AttendanceTypeOUT
}
