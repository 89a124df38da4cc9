// Package biometric contiene la comparación de plantillas de huella (servicio de dominio puro).
//
// La política es una heurística simple de similitud byte a byte: no extrae minucias ni
// analiza crestas. Dos plantillas coinciden cuando más del 70% de las posiciones comparables
// difieren en 5 o menos.
package biometric

import "github.com/jhoicas/Asistencia-api/internal/domain/entity"

const (
	// MatchThreshold puntaje mínimo (exclusivo) para declarar coincidencia.
	MatchThreshold = 70.0
	// ByteTolerance diferencia máxima entre bytes para que una posición cuente como coincidente.
	ByteTolerance = 5
	// ExactScore puntaje del atajo de igualdad exacta.
	ExactScore = 100.0
)

// MatchResult resultado de comparar dos plantillas. Derivado, nunca se persiste.
type MatchResult struct {
	Matched bool
	Score   float64 // [0,100]
}

// Exact resultado del atajo por igualdad byte a byte.
func Exact() MatchResult {
	return MatchResult{Matched: true, Score: ExactScore}
}

// Compare compara dos plantillas. Es total, determinista y conmutativa.
//  1. Bytes idénticos => {true, 100} sin importar el umbral.
//  2. n = min(len(a), len(b)); n == 0 => {false, 0}.
//  3. score = 100 * posiciones con |a[i]-b[i]| <= 5 / n.
//  4. matched = score > 70 (70 exacto NO coincide).
func Compare(a, b entity.Template) MatchResult {
	if a.SameRaw(b) && !a.Empty() {
		return Exact()
	}
	n := min(len(a.Raw), len(b.Raw))
	if n == 0 {
		return MatchResult{}
	}
	agreements := 0
	for i := 0; i < n; i++ {
		if absDiff(a.Raw[i], b.Raw[i]) <= ByteTolerance {
			agreements++
		}
	}
	score := float64(agreements) * 100 / float64(n)
	return MatchResult{Matched: score > MatchThreshold, Score: score}
}

func absDiff(x, y byte) int {
	d := int(x) - int(y)
	if d < 0 {
		return -d
	}
	return d
}
