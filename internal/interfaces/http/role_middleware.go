package http

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// Grupos de roles de las rutas.
var (
	// StaffRoles administración: enrolamiento, empleados, reportes.
	StaffRoles = []string{entity.RoleAdmin, entity.RoleSupervisor}
	// KioskRoles marcación y muestras del lector; el personal también puede operar un kiosco.
	KioskRoles = []string{entity.RoleStation, entity.RoleAdmin, entity.RoleSupervisor}
)

// RequireRole devuelve un middleware Fiber que verifica que el rol del token esté entre los
// permitidos. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
//
// Comportamiento:
//   - 401 Unauthorized → el token no trae rol.
//   - 403 Forbidden    → el rol no está permitido en la ruta.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "el token no incluye un rol",
			})
		}
		if !slices.Contains(allowed, role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol '" + role + "' no tiene acceso a este recurso",
			})
		}
		return c.Next()
	}
}
