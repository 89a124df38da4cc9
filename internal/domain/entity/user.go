package entity

import "time"

// Roles válidos para User (operadores del sistema, no empleados enrolados).
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleStation    = "station"
)

// Estados de User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User cuenta de operador: administradores, supervisores y estaciones de fichaje.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, supervisor, station
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole informa si role es uno de los roles de operador.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSupervisor, RoleStation:
		return true
	}
	return false
}
