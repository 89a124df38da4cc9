package dto

import (
	"time"

	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// EnrollRequest datos personales del empleado a enrolar.
type EnrollRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Role       string `json:"role" validate:"omitempty,max=100"`
	Department string `json:"department" validate:"omitempty,max=100"`
	Email      string `json:"email" validate:"omitempty,email"`
}

// Profile convierte la petición en el perfil de dominio.
func (r EnrollRequest) Profile() entity.EmployeeProfile {
	return entity.EmployeeProfile{Name: r.Name, Role: r.Role, Department: r.Department, Email: r.Email}
}

// EmployeeResponse salida de un empleado (sin la plantilla).
type EmployeeResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Department     string    `json:"department"`
	Email          string    `json:"email"`
	Active         bool      `json:"active"`
	TemplateFormat string    `json:"template_format"`
	EnrolledAt     time.Time `json:"enrolled_at"`
}

// EnrollmentResult resultado del flujo de enrolamiento.
type EnrollmentResult struct {
	OperationResult
	Employee *EmployeeResponse `json:"employee,omitempty"`
}

// ToEmployeeResponse proyecta la entidad sin exponer los bytes de la huella.
func ToEmployeeResponse(e *entity.Employee) *EmployeeResponse {
	if e == nil {
		return nil
	}
	return &EmployeeResponse{
		ID:             e.ID,
		Name:           e.Name,
		Role:           e.Role,
		Department:     e.Department,
		Email:          e.Email,
		Active:         e.Active,
		TemplateFormat: string(e.Template.Format),
		EnrolledAt:     e.EnrolledAt,
	}
}
