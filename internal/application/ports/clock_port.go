package ports

import (
	"context"
	"time"
)

// Clock fuente de tiempo inyectable (tests deterministas).
type Clock interface {
	Now() time.Time
}

// Sleeper pausa inyectable; debe respetar la cancelación del contexto.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock reloj y pausa de pared.
type SystemClock struct{}

// Now devuelve la hora actual.
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep espera d o hasta que ctx termine.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
