package ports

import "context"

// KeyedLocker serializa secciones críticas por clave (p. ej. por employeeID).
// Lock bloquea hasta obtener el candado o hasta que ctx termine; la función devuelta lo libera.
type KeyedLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
