package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/remitos-api/internal/application/dto"
)

// companyChecker es el contrato mínimo que necesita el middleware para verificar la empresa.
// Lo implementa *usecase.CompanyUseCase; el uso de interfaz evita el import circular.
type companyChecker interface {
	IsActive(ctx context.Context, companyID string) (bool, error)
}

// RequireActiveCompany corta las peticiones de usuarios cuya empresa está suspendida o ya no
// existe. Debe usarse DESPUÉS de AuthMiddleware. Un token sin empresa (operador privilegiado)
// pasa sin consulta: su alcance lo decide la Policy.
//
// Comportamiento:
//   - 403 COMPANY_SUSPENDED → empresa suspendida o inexistente.
//   - 503 COMPANY_CHECK_FAILED → fallo de infraestructura al consultar la DB.
func RequireActiveCompany(checker companyChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Next()
		}

		active, err := checker.IsActive(c.UserContext(), companyID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "COMPANY_CHECK_FAILED",
				Message: "no se pudo verificar la empresa, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "COMPANY_SUSPENDED",
				Message: "la empresa no está activa",
			})
		}
		return c.Next()
	}
}
