package repository

import (
	"context"

	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para cuentas de operador (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail devuelve (nil, nil) si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByID devuelve (nil, nil) si no existe.
	FindByID(ctx context.Context, id string) (*entity.User, error)
}
