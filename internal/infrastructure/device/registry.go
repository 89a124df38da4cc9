package device

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/Asistencia-api/internal/application/capture"
	"github.com/jhoicas/Asistencia-api/internal/application/ports"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

var (
	// ErrInvalidStationID id de estación vacío o con caracteres no permitidos.
	ErrInvalidStationID = errors.New("id de estación inválido")
	// ErrUnknownStation id fuera de la lista de estaciones configurada.
	ErrUnknownStation = errors.New("estación no registrada")
)

const maxStationIDLen = 64

// Station lector remoto y sesión de captura de un kiosco.
type Station struct {
	ID      string
	Device  *RemoteDevice
	Session *capture.Session
}

// StationInfo estado visible de una estación.
type StationInfo struct {
	ID        string `json:"id"`
	Format    string `json:"format"`
	Acquiring bool   `json:"acquiring"`
	Busy      bool   `json:"busy"`
}

// Registry crea bajo demanda una estación (lector + sesión) por id.
type Registry struct {
	format   entity.TemplateFormat
	notifier ports.StatusNotifier
	opts     []capture.Option

	mu       sync.Mutex
	stations map[string]*Station
	allowed  map[string]struct{} // nil: cualquier id válido
}

// NewRegistry format es el formato que entregan los agentes de las estaciones.
func NewRegistry(format entity.TemplateFormat, notifier ports.StatusNotifier, opts ...capture.Option) *Registry {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &Registry{
		format:   format,
		notifier: notifier,
		opts:     opts,
		stations: make(map[string]*Station),
	}
}

// Allow restringe el registro a ids (STATIONS). Sin llamar a Allow se acepta cualquier id válido.
func (r *Registry) Allow(ids ...string) error {
	allowed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if !ValidStationID(id) {
			return fmt.Errorf("%w: %q", ErrInvalidStationID, id)
		}
		allowed[id] = struct{}{}
	}
	r.mu.Lock()
	r.allowed = allowed
	r.mu.Unlock()
	return nil
}

// Station devuelve (o crea) la estación id. Solo la usan los endpoints que inician una captura.
func (r *Registry) Station(id string) (*Station, error) {
	if !ValidStationID(id) {
		return nil, ErrInvalidStationID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.stations[id]; ok {
		return st, nil
	}
	if r.allowed != nil {
		if _, ok := r.allowed[id]; !ok {
			return nil, ErrUnknownStation
		}
	}
	dev := NewRemoteDevice(id, r.format)
	st := &Station{
		ID:      id,
		Device:  dev,
		Session: capture.NewSession(id, dev, r.notifier, r.opts...),
	}
	r.stations[id] = st
	return st, nil
}

// Lookup devuelve la estación id sin crearla; (nil, nil) si todavía no existe.
func (r *Registry) Lookup(id string) (*Station, error) {
	if !ValidStationID(id) {
		return nil, ErrInvalidStationID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stations[id], nil
}

// List estaciones conocidas ordenadas por id.
func (r *Registry) List() []StationInfo {
	r.mu.Lock()
	list := make([]StationInfo, 0, len(r.stations))
	for _, st := range r.stations {
		list = append(list, StationInfo{
			ID:        st.ID,
			Format:    string(st.Device.Format()),
			Acquiring: st.Device.Acquiring(),
			Busy:      st.Session.Busy(),
		})
	}
	r.mu.Unlock()
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Enumerate ids de las estaciones conocidas.
func (r *Registry) Enumerate(context.Context) ([]string, error) {
	infos := r.List()
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids, nil
}

// ValidStationID letras, dígitos, '-' y '_'.
func ValidStationID(id string) bool {
	if id == "" || len(id) > maxStationIDLen {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
