package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

func TestNewEvent(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	rec := &entity.AttendanceRecord{
		ID:         "r1",
		EmployeeID: "e1",
		Type:       entity.AttendanceTypeIN,
		Timestamp:  time.Date(2025, 3, 10, 8, 0, 0, 0, bogota),
		LocalDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StationID:  "st-1",
	}

	ev := NewEvent(rec, &entity.Employee{ID: "e1", Name: "Ana", Department: "Producción"})

	assert.Equal(t, EventType, ev.Event)
	assert.Equal(t, "2025-03-10", ev.LocalDate)
	assert.Equal(t, time.UTC, ev.Timestamp.Location())
	assert.Equal(t, 13, ev.Timestamp.Hour())
	assert.Equal(t, "Ana", ev.Name)

	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"event": "attendance.recorded",
		"record_id": "r1",
		"employee_id": "e1",
		"name": "Ana",
		"department": "Producción",
		"type": "IN",
		"timestamp": "2025-03-10T13:00:00Z",
		"local_date": "2025-03-10",
		"station_id": "st-1"
	}`, string(raw))
}

func TestNewEvent_SinEmpleado(t *testing.T) {
	ev := NewEvent(&entity.AttendanceRecord{ID: "r1", EmployeeID: "e1", Type: entity.AttendanceTypeOUT}, nil)

	assert.Equal(t, "e1", ev.EmployeeID)
	assert.Empty(t, ev.Name)
}

func TestNewPublisher_NoContactaAlBroker(t *testing.T) {
	p, err := NewPublisher([]string{"127.0.0.1:1"}, "attendance.recorded")
	require.NoError(t, err)
	p.Close()
}

func TestPublishAttendance_BrokerInalcanzable(t *testing.T) {
	p, err := NewPublisher([]string{"127.0.0.1:1"}, "asistencia.test")
	require.NoError(t, err)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err = p.PublishAttendance(ctx, &entity.AttendanceRecord{ID: "r1", EmployeeID: "e1"}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "produce asistencia.test")
}
