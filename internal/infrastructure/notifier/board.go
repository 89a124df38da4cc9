// Package notifier sumideros de mensajes de estado para los kioscos.
package notifier

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Asistencia-api/internal/application/ports"
)

var _ ports.StatusNotifier = (*Board)(nil)

// DefaultCapacity mensajes retenidos por estación.
const DefaultCapacity = 20

// Message mensaje publicado en el tablero.
type Message struct {
	Seq  uint64    `json:"seq"`
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

// Board guarda los últimos mensajes de cada estación (el kiosco los consulta por polling) y los
// registra en el log.
type Board struct {
	capacity int
	logger   zerolog.Logger
	now      func() time.Time

	mu       sync.RWMutex
	seq      uint64
	stations map[string][]Message
}

// NewBoard capacity <= 0 usa DefaultCapacity.
func NewBoard(capacity int, logger zerolog.Logger) *Board {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Board{
		capacity: capacity,
		logger:   logger,
		now:      time.Now,
		stations: make(map[string][]Message),
	}
}

// Notify no bloquea más allá del mutex interno.
func (b *Board) Notify(stationID, message string) {
	b.mu.Lock()
	b.seq++
	msg := Message{Seq: b.seq, At: b.now(), Text: message}
	list := append(b.stations[stationID], msg)
	if len(list) > b.capacity {
		list = append([]Message(nil), list[len(list)-b.capacity:]...)
	}
	b.stations[stationID] = list
	b.mu.Unlock()

	b.logger.Info().Str("station_id", stationID).Uint64("seq", msg.Seq).Msg(message)
}

// Since mensajes de la estación con Seq > after, del más antiguo al más reciente.
func (b *Board) Since(stationID string, after uint64) []Message {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []Message
	for _, m := range b.stations[stationID] {
		if m.Seq > after {
			out = append(out, m)
		}
	}
	return out
}

// Last último mensaje de la estación.
func (b *Board) Last(stationID string) (Message, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	list := b.stations[stationID]
	if len(list) == 0 {
		return Message{}, false
	}
	return list[len(list)-1], true
}
