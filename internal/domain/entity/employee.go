package entity

import "time"

// EmployeeProfile datos personales que se capturan al enrolar.
type EmployeeProfile struct {
	Name       string
	Role       string
	Department string
	Email      string
}

// Employee empleado enrolado con su plantilla de huella.
// Solo el enrolamiento lo crea; el núcleo únicamente cambia Active (baja lógica).
type Employee struct {
	ID         string
	Name       string
	Role       string
	Department string
	Email      string
	Template   Template
	Active     bool
	EnrolledAt time.Time
}

// Profile devuelve los datos personales del empleado.
func (e *Employee) Profile() EmployeeProfile {
	return EmployeeProfile{Name: e.Name, Role: e.Role, Department: e.Department, Email: e.Email}
}
