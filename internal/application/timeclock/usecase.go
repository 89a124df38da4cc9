// Package timeclock encadena identificación y asistencia en una marcación de estación.
package timeclock

import (
	"context"

	"github.com/jhoicas/Asistencia-api/internal/application/attendance"
	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/application/identification"
	"github.com/jhoicas/Asistencia-api/internal/application/ports"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// UseCase marcación completa: captura → identificación 1:N → entrada/salida.
type UseCase struct {
	identify   *identification.UseCase
	attendance *attendance.UseCase
	notifier   ports.StatusNotifier
}

// NewUseCase construye el caso de uso.
func NewUseCase(identify *identification.UseCase, attendance *attendance.UseCase, notifier ports.StatusNotifier) *UseCase {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &UseCase{identify: identify, attendance: attendance, notifier: notifier}
}

// Punch identifica al empleado en la estación y registra su marcación.
// Todos los fallos se devuelven como PunchResult con success=false.
func (uc *UseCase) Punch(ctx context.Context, stationID string, capturer ports.Capturer) dto.PunchResult {
	employee, match, err := uc.identify.Identify(ctx, stationID, capturer)
	if err != nil {
		return dto.PunchResult{IdentificationResult: dto.IdentificationResult{OperationResult: dto.Failure(err)}}
	}

	ident := dto.IdentificationResult{
		Employee: dto.ToEmployeeResponse(employee),
		Match:    &dto.MatchResponse{Matched: match.Matched, Score: match.Score},
	}
	record, err := uc.attendance.RecordEvent(ctx, employee, stationID)
	if err != nil {
		ident.OperationResult = dto.Failure(err)
		uc.notifier.Notify(stationID, ident.Message)
		return dto.PunchResult{IdentificationResult: ident}
	}

	msg := punchMessage(record.Type, employee.Name)
	uc.notifier.Notify(stationID, msg)
	ident.OperationResult = dto.OperationResult{Success: true, Message: msg}
	return dto.PunchResult{IdentificationResult: ident, Record: dto.ToAttendanceRecordResponse(record)}
}

func punchMessage(recordType, name string) string {
	if recordType == entity.AttendanceTypeOUT {
		return "Salida registrada: " + name
	}
	return "Entrada registrada: " + name
}
