package identification

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Asistencia-api/internal/domain/biometric"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// firstMatch devuelve el índice de la primera plantilla candidata que coincide con probe
// (o -1). Con workers > 1 los candidatos se reparten en bloques contiguos; cada bloque se
// recorre en orden y se conserva el menor índice, no el primero en terminar.
func firstMatch(ctx context.Context, probe entity.Template, candidates []*entity.Employee, workers int) (int, biometric.MatchResult, error) {
	if workers <= 1 || len(candidates) < 2*workers {
		return scanRange(ctx, probe, candidates, 0, len(candidates))
	}

	var (
		mu      sync.Mutex
		bestIdx = -1
		bestRes biometric.MatchResult
	)
	chunk := (len(candidates) + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(candidates); start += chunk {
		end := min(start+chunk, len(candidates))
		g.Go(func() error {
			idx, res, err := scanRange(gctx, probe, candidates, start, end)
			if err != nil || idx < 0 {
				return err
			}
			mu.Lock()
			if bestIdx < 0 || idx < bestIdx {
				bestIdx, bestRes = idx, res
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return -1, biometric.MatchResult{}, err
	}
	return bestIdx, bestRes, nil
}

func scanRange(ctx context.Context, probe entity.Template, candidates []*entity.Employee, start, end int) (int, biometric.MatchResult, error) {
	for i := start; i < end; i++ {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return -1, biometric.MatchResult{}, err
			}
		}
		c := candidates[i]
		if c == nil || c.Template.Empty() {
			continue
		}
		if res := biometric.Compare(probe, c.Template); res.Matched {
			return i, res, nil
		}
	}
	return -1, biometric.MatchResult{}, nil
}
