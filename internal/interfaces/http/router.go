package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/remitos-api/internal/application/analytics"
	"github.com/jhoicas/remitos-api/internal/application/usecase"
	"github.com/jhoicas/remitos-api/internal/application/workflow"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/tenant"
	"github.com/jhoicas/remitos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC    *usecase.CompanyUseCase
	ProductUC    *usecase.ProductUseCase
	CategoryUC   *usecase.CategoryUseCase
	ClientUC     *usecase.ClientUseCase
	StatusUC     *workflow.StatusUseCase
	RemitoUC     *workflow.RemitoUseCase
	TransitionUC *workflow.TransitionUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	Policy       tenant.Policy
	AdminRoles   []string // roles que administran empresas; vacío = superadmin
	DashboardTTL time.Duration
	JWTSecret    string
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")
	adminRoles := deps.AdminRoles
	if len(adminRoles) == 0 {
		adminRoles = []string{entity.RoleSuperAdmin}
	}

	api := app.Group("/api")

	// Todo requiere Bearer Token y empresa activa
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireActiveCompany(deps.CompanyUC))

	// Companies
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.Policy, log)
	statusHandler := NewStatusHandler(deps.StatusUC, log)
	companies := protected.Group("/companies")
	companies.Get("/", RequireRole(adminRoles...), companyHandler.List)
	companies.Post("/", RequireRole(adminRoles...), companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Post("/:id/statuses/reseed", RequireRole(adminRoles...), statusHandler.Reseed)

	// Estados de remito
	statuses := protected.Group("/statuses")
	statuses.Get("/", statusHandler.List)
	statuses.Post("/", statusHandler.Create)
	statuses.Put("/:id", statusHandler.Update)
	statuses.Delete("/:id", statusHandler.Delete)

	// Remitos
	remitoHandler := NewRemitoHandler(deps.RemitoUC, deps.TransitionUC, log)
	remitos := protected.Group("/remitos")
	remitos.Post("/", remitoHandler.Create)
	remitos.Get("/:id", remitoHandler.GetByID)
	remitos.Put("/:id/status", remitoHandler.UpdateStatus)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.DashboardTTL, log)
	if deps.DashboardTTL > 0 {
		protected.Get("/dashboard", dashboardCache(deps.DashboardTTL), dashboardHandler.Get)
	} else {
		protected.Get("/dashboard", dashboardHandler.Get)
	}

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.ProductUC, deps.CategoryUC, deps.ClientUC, log)
	protected.Post("/products", catalogHandler.CreateProduct)
	protected.Get("/products", catalogHandler.ListProducts)
	protected.Post("/categories", catalogHandler.CreateCategory)
	protected.Get("/categories", catalogHandler.ListCategories)
	protected.Post("/clients", catalogHandler.CreateClient)
	protected.Get("/clients", catalogHandler.ListClients)
}
