package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"

	appanalytics "github.com/jhoicas/remitos-api/internal/application/analytics"
	"github.com/jhoicas/remitos-api/internal/application/dto"
	"github.com/jhoicas/remitos-api/pkg/logger"
)

// DashboardHandler maneja el agregado operativo del dashboard.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	ttl time.Duration
	log *logger.Logger
}

// NewDashboardHandler construye el handler. ttl es la vigencia que se anuncia en Cache-Control.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, ttl time.Duration, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, ttl: ttl, log: log}
}

// Get godoc
// @Summary      Dashboard de remitos
// @Description  Totales, distribución por estado, serie de 30 días, conteos y top 5 de productos.
// @Description  Las secciones que no se pudieron calcular se listan en degraded.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        companyId       query  string  false  "Empresa (solo superadmin)"
// @Param        productsPeriod  query  string  false  "hoy | ayer | esta_semana | este_mes | siempre"
// @Success      200  {object}  dto.DashboardResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	var req dto.DashboardRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}

	out, err := h.uc.GetDashboard(c.UserContext(), CallerFrom(c), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if h.ttl > 0 {
		c.Set(fiber.HeaderCacheControl, fmt.Sprintf("private, max-age=%d", int(h.ttl.Seconds())))
	}
	return c.JSON(out)
}

// dashboardCache caché en memoria del agregado. La clave incluye rol y empresa del token:
// dos tenants nunca comparten entrada. Solo se guardan respuestas 200.
func dashboardCache(ttl time.Duration) fiber.Handler {
	return cache.New(cache.Config{
		Expiration:           ttl,
		StoreResponseHeaders: true,
		Next: func(c *fiber.Ctx) bool {
			return c.Response().StatusCode() != fiber.StatusOK
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return GetRole(c) + "|" + GetCompanyID(c) + "|" + c.OriginalURL()
		},
	})
}
