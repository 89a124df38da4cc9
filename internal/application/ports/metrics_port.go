package ports

// BiometricMetrics observa los resultados del flujo biométrico. Opcional: los casos de uso
// aceptan nil.
type BiometricMetrics interface {
	ObserveCapture(outcome string)
	ObserveMatch(score float64, matched bool)
	ObserveEnrollment(outcome string)
	ObserveIdentification(outcome string)
	ObserveAttendance(recordType string)
}
