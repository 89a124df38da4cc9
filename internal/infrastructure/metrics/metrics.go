// Package metrics expone contadores Prometheus del flujo biométrico.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Asistencia-api/internal/application/ports"
)

var _ ports.BiometricMetrics = (*Metrics)(nil)

// Metrics registro propio (no el global) para que los tests puedan crear varios.
type Metrics struct {
	registry *prometheus.Registry

	Captures        *prometheus.CounterVec
	MatchScore      prometheus.Histogram
	Matches         *prometheus.CounterVec
	Enrollments     *prometheus.CounterVec
	Identifications *prometheus.CounterVec
	Attendance      *prometheus.CounterVec
}

// New crea y registra las métricas.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Captures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "asistencia_captures_total",
			Help: "Capturas de huella por resultado",
		}, []string{"outcome"}),
		MatchScore: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "asistencia_match_score",
			Help:    "Distribución del puntaje de comparación",
			Buckets: []float64{10, 25, 50, 60, 70, 80, 90, 100},
		}),
		Matches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "asistencia_matches_total",
			Help: "Comparaciones de plantillas por resultado",
		}, []string{"matched"}),
		Enrollments: f.NewCounterVec(prometheus.CounterOpts{
			Name: "asistencia_enrollments_total",
			Help: "Enrolamientos por resultado",
		}, []string{"outcome"}),
		Identifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "asistencia_identifications_total",
			Help: "Identificaciones por resultado",
		}, []string{"outcome"}),
		Attendance: f.NewCounterVec(prometheus.CounterOpts{
			Name: "asistencia_attendance_records_total",
			Help: "Marcaciones registradas por tipo",
		}, []string{"type"}),
	}
}

func (m *Metrics) ObserveCapture(outcome string)        { m.Captures.WithLabelValues(outcome).Inc() }
func (m *Metrics) ObserveEnrollment(outcome string)     { m.Enrollments.WithLabelValues(outcome).Inc() }
func (m *Metrics) ObserveIdentification(outcome string) { m.Identifications.WithLabelValues(outcome).Inc() }
func (m *Metrics) ObserveAttendance(recordType string)  { m.Attendance.WithLabelValues(recordType).Inc() }

// ObserveMatch registra el puntaje y si superó el umbral.
func (m *Metrics) ObserveMatch(score float64, matched bool) {
	m.MatchScore.Observe(score)
	label := "false"
	if matched {
		label = "true"
	}
	m.Matches.WithLabelValues(label).Inc()
}

// Registry para tests y exportadores.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler endpoint /metrics en formato de exposición Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
