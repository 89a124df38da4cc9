package dto

import (
	"time"

	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// AttendanceRecordResponse salida de una marcación.
type AttendanceRecordResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	LocalDate  string    `json:"local_date"`
	StationID  string    `json:"station_id,omitempty"`
}

// MatchResponse resultado del comparador expuesto en la identificación.
type MatchResponse struct {
	Matched bool    `json:"matched"`
	Score   float64 `json:"score"`
}

// IdentificationResult resultado del flujo de identificación 1:N.
type IdentificationResult struct {
	OperationResult
	Employee *EmployeeResponse `json:"employee,omitempty"`
	Match    *MatchResponse    `json:"match,omitempty"`
}

// PunchResult resultado de una marcación completa (identificación + asistencia).
type PunchResult struct {
	IdentificationResult
	Record *AttendanceRecordResponse `json:"record,omitempty"`
}

// ToAttendanceRecordResponse proyecta la entidad.
func ToAttendanceRecordResponse(r *entity.AttendanceRecord) *AttendanceRecordResponse {
	if r == nil {
		return nil
	}
	return &AttendanceRecordResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Type:       r.Type,
		Timestamp:  r.Timestamp,
		LocalDate:  r.LocalDate.Format(entity.DateLayout),
		StationID:  r.StationID,
	}
}

// ToAttendanceRecordList proyecta una lista de marcaciones.
func ToAttendanceRecordList(records []*entity.AttendanceRecord) []*AttendanceRecordResponse {
	out := make([]*AttendanceRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToAttendanceRecordResponse(r))
	}
	return out
}
