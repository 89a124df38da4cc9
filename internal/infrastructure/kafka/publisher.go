// Package kafka publica marcaciones confirmadas en un tópico Kafka (franz-go).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/jhoicas/Asistencia-api/internal/application/ports"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

var _ ports.AttendancePublisher = (*Publisher)(nil)

// EventType tipo de evento publicado.
const EventType = "attendance.recorded"

// AttendanceEvent payload JSON de cada mensaje. Key = employee_id (orden por empleado en la partición).
type AttendanceEvent struct {
	Event      string    `json:"event"`
	RecordID   string    `json:"record_id"`
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	Department string    `json:"department,omitempty"`
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	LocalDate  string    `json:"local_date"`
	StationID  string    `json:"station_id"`
}

// Publisher productor síncrono.
type Publisher struct {
	client *kgo.Client
	topic  string
}

// NewPublisher crea el cliente. No contacta a los brokers hasta el primer produce.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchMaxBytes(1<<20),
		kgo.RecordDeliveryTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &Publisher{client: client, topic: topic}, nil
}

// NewEvent construye el payload.
func NewEvent(rec *entity.AttendanceRecord, emp *entity.Employee) AttendanceEvent {
	ev := AttendanceEvent{
		Event:      EventType,
		RecordID:   rec.ID,
		EmployeeID: rec.EmployeeID,
		Type:       rec.Type,
		Timestamp:  rec.Timestamp.UTC(),
		LocalDate:  rec.LocalDate.Format(entity.DateLayout),
		StationID:  rec.StationID,
	}
	if emp != nil {
		ev.Name = emp.Name
		ev.Department = emp.Department
	}
	return ev
}

// PublishAttendance produce y espera el acuse del broker.
func (p *Publisher) PublishAttendance(ctx context.Context, rec *entity.AttendanceRecord, emp *entity.Employee) error {
	payload, err := json.Marshal(NewEvent(rec, emp))
	if err != nil {
		return fmt.Errorf("marshal attendance event: %w", err)
	}
	r := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(rec.EmployeeID),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "event", Value: []byte(EventType)},
		},
	}
	if err := p.client.ProduceSync(ctx, r).FirstErr(); err != nil {
		return fmt.Errorf("produce %s: %w", p.topic, err)
	}
	log.Debug().Str("record_id", rec.ID).Str("topic", p.topic).Msg("marcación publicada")
	return nil
}

// Close vacía el buffer y cierra el cliente.
func (p *Publisher) Close() {
	p.client.Close()
}
