package ports

// StatusNotifier sumidero de mensajes de estado para la UI de la estación.
// Es informativo: sin acuse, sin orden garantizado respecto a las transiciones del núcleo.
type StatusNotifier interface {
	Notify(stationID, message string)
}

// NopNotifier descarta los mensajes.
type NopNotifier struct{}

// Notify no hace nada.
func (NopNotifier) Notify(string, string) {}
