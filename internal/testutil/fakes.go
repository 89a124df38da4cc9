// Package testutil dobles de prueba compartidos por los tests de los casos de uso.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// FakeClock reloj manual.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock reloj detenido en t.
func NewFakeClock(t time.Time) *FakeClock { return &FakeClock{now: t} }

// Now hora actual del reloj.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set fija la hora.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance adelanta el reloj.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// NoSleep Sleeper que vuelve de inmediato y registra las pausas pedidas.
type NoSleep struct {
	mu    sync.Mutex
	Calls []time.Duration
	Err   error
}

// Sleep registra d; respeta un ctx ya cancelado.
func (s *NoSleep) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.Calls = append(s.Calls, d)
	s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	return ctx.Err()
}

// Notification mensaje recibido por RecordingNotifier.
type Notification struct {
	StationID string
	Message   string
}

// RecordingNotifier guarda los mensajes en orden.
type RecordingNotifier struct {
	mu   sync.Mutex
	msgs []Notification
}

// Notify registra el mensaje.
func (n *RecordingNotifier) Notify(stationID, message string) {
	n.mu.Lock()
	n.msgs = append(n.msgs, Notification{StationID: stationID, Message: message})
	n.mu.Unlock()
}

// Messages textos recibidos en orden.
func (n *RecordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.msgs))
	for i, m := range n.msgs {
		out[i] = m.Message
	}
	return out
}

// CaptureStep resultado programado de una llamada a Capture.
type CaptureStep struct {
	Raw []byte
	Err error
}

// ScriptedCapturer devuelve los pasos en orden; agotados, falla con Exhausted.
type ScriptedCapturer struct {
	mu        sync.Mutex
	Format    entity.TemplateFormat
	Steps     []CaptureStep
	Exhausted error
	Timeouts  []time.Duration
	calls     int
}

// NewScriptedCapturer capturas RAW con los bytes dados.
func NewScriptedCapturer(raws ...[]byte) *ScriptedCapturer {
	c := &ScriptedCapturer{Format: entity.TemplateFormatRAW}
	for _, r := range raws {
		c.Steps = append(c.Steps, CaptureStep{Raw: r})
	}
	return c
}

// Capture siguiente paso programado.
func (c *ScriptedCapturer) Capture(ctx context.Context, timeout time.Duration) (entity.Template, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Timeouts = append(c.Timeouts, timeout)
	if err := ctx.Err(); err != nil {
		return entity.Template{}, err
	}
	if c.calls >= len(c.Steps) {
		c.calls++
		return entity.Template{}, c.Exhausted
	}
	step := c.Steps[c.calls]
	c.calls++
	if step.Err != nil {
		return entity.Template{}, step.Err
	}
	return entity.NewTemplate(c.Format, step.Raw, time.Now()), nil
}

// Calls cantidad de capturas pedidas.
func (c *ScriptedCapturer) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Bytes plantilla sintética de n bytes con valor v.
func Bytes(n int, v byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = v
	}
	return b
}

// WithDiffs copia base y suma delta a las primeras k posiciones.
func WithDiffs(base []byte, k int, delta byte) []byte {
	out := append([]byte(nil), base...)
	for i := 0; i < k && i < len(out); i++ {
		out[i] += delta
	}
	return out
}
