package biometric_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Asistencia-api/internal/domain/biometric"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

func tpl(raw ...byte) entity.Template {
	return entity.NewTemplate(entity.TemplateFormatRAW, raw, time.Time{})
}

func repeat(n int, v byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = v
	}
	return b
}

// ──────────────────────────────────────────────────────────────────────────────
// Compare
// ──────────────────────────────────────────────────────────────────────────────

func TestCompare(t *testing.T) {
	base := repeat(10, 100)
	far := func(k int) []byte { // k posiciones fuera de tolerancia
		out := append([]byte(nil), base...)
		for i := 0; i < k; i++ {
			out[i] = 200
		}
		return out
	}

	tests := []struct {
		name    string
		a, b    []byte
		matched bool
		score   float64
	}{
		{"idénticas", base, base, true, 100},
		{"diferencia dentro de tolerancia", base, repeat(10, 105), true, 100},
		{"diferencia fuera de tolerancia", base, repeat(10, 106), false, 0},
		{"tolerancia simétrica hacia abajo", base, repeat(10, 95), true, 100},
		{"80% de acuerdo", base, far(2), true, 80},
		{"70% exacto no coincide", base, far(3), false, 70},
		{"60% de acuerdo", base, far(4), false, 60},
		{"longitudes distintas usa el mínimo", base, append(repeat(10, 101), repeat(50, 0)...), true, 100},
		{"una vacía", base, nil, false, 0},
		{"ambas vacías", nil, nil, false, 0},
		{"bytes extremos sin desborde", []byte{0, 255}, []byte{255, 0}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := biometric.Compare(tpl(tt.a...), tpl(tt.b...))
			assert.Equal(t, tt.matched, got.Matched)
			assert.InDelta(t, tt.score, got.Score, 1e-9)
		})
	}
}

func TestCompare_ConmutativaYEnRango(t *testing.T) {
	pairs := [][2][]byte{
		{repeat(10, 100), repeat(7, 103)},
		{{1, 2, 3, 4, 5}, {9, 2, 30, 4, 50}},
		{repeat(3, 0), repeat(30, 255)},
		{nil, {1}},
	}
	for _, p := range pairs {
		ab := biometric.Compare(tpl(p[0]...), tpl(p[1]...))
		ba := biometric.Compare(tpl(p[1]...), tpl(p[0]...))
		assert.Equal(t, ab, ba, "Compare debe ser conmutativa")
		assert.GreaterOrEqual(t, ab.Score, 0.0)
		assert.LessOrEqual(t, ab.Score, 100.0)
		if ab.Matched {
			assert.Greater(t, ab.Score, biometric.MatchThreshold, "matched implica score > 70")
		}
	}
}

func TestCompare_IgnoraFormato(t *testing.T) {
	raw := []byte{10, 20, 30}
	a := entity.NewTemplate(entity.TemplateFormatPNG, raw, time.Now())
	b := entity.NewTemplate(entity.TemplateFormatBMP, raw, time.Time{})
	assert.Equal(t, biometric.Exact(), biometric.Compare(a, b))
}
