package identification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

func candidatesWithMatchesAt(n int, matchAt ...int) []*entity.Employee {
	probe := make([]byte, 20)
	list := make([]*entity.Employee, n)
	for i := range list {
		raw := make([]byte, 20)
		for j := range raw {
			raw[j] = 200 // fuera de tolerancia respecto a probe (ceros)
		}
		list[i] = &entity.Employee{ID: fmt.Sprintf("e%03d", i), Template: entity.NewTemplate(entity.TemplateFormatRAW, raw, time.Time{})}
	}
	for k, idx := range matchAt {
		raw := append([]byte(nil), probe...)
		raw[0] = byte(k) // puntajes distintos, todos > 70
		list[idx].Template = entity.NewTemplate(entity.TemplateFormatRAW, raw, time.Time{})
	}
	return list
}

func TestFirstMatch_MenorIndiceSinImportarWorkers(t *testing.T) {
	probe := entity.NewTemplate(entity.TemplateFormatRAW, make([]byte, 20), time.Time{})
	list := candidatesWithMatchesAt(300, 250, 77, 140)

	for _, workers := range []int{1, 2, 3, 8, 64} {
		for run := 0; run < 5; run++ {
			idx, res, err := firstMatch(context.Background(), probe, list, workers)
			require.NoError(t, err)
			assert.Equal(t, 77, idx, "workers=%d", workers)
			assert.True(t, res.Matched)
		}
	}
}

func TestFirstMatch_SinCoincidencia(t *testing.T) {
	probe := entity.NewTemplate(entity.TemplateFormatRAW, make([]byte, 20), time.Time{})
	list := candidatesWithMatchesAt(50)

	idx, _, err := firstMatch(context.Background(), probe, list, 4)

	require.NoError(t, err)
	assert.Equal(t, -1, idx)
}

func TestFirstMatch_IgnoraPlantillasVacias(t *testing.T) {
	probe := entity.NewTemplate(entity.TemplateFormatRAW, nil, time.Time{})
	list := []*entity.Employee{{ID: "a"}, nil, {ID: "b"}}

	idx, _, err := firstMatch(context.Background(), probe, list, 1)

	require.NoError(t, err)
	assert.Equal(t, -1, idx)
}

func TestFirstMatch_ContextoCancelado(t *testing.T) {
	probe := entity.NewTemplate(entity.TemplateFormatRAW, make([]byte, 20), time.Time{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := firstMatch(ctx, probe, candidatesWithMatchesAt(10, 5), 1)

	assert.ErrorIs(t, err, context.Canceled)
}
