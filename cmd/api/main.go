package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/remitos-api/internal/application/analytics"
	"github.com/jhoicas/remitos-api/internal/application/usecase"
	"github.com/jhoicas/remitos-api/internal/application/workflow"
	"github.com/jhoicas/remitos-api/internal/domain/tenant"
	"github.com/jhoicas/remitos-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/remitos-api/internal/interfaces/http"
	"github.com/jhoicas/remitos-api/pkg/config"
	"github.com/jhoicas/remitos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := store.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacenamiento")
	}
	defer repos.Close()

	template, err := workflow.LoadTemplate(cfg.Workflow.StatusTemplateFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Workflow.StatusTemplateFile).Msg("plantilla de estados")
	}
	policy := tenant.NewRolePolicy(cfg.Workflow.PrivilegedRoles...)

	statusUC := workflow.NewStatusUseCase(repos.Statuses, repos.Remitos, repos.Companies, policy, template, log)
	companyUC := usecase.NewCompanyUseCase(repos.Companies, statusUC, log)
	productUC := usecase.NewProductUseCase(repos.Products, repos.Categories, policy)
	categoryUC := usecase.NewCategoryUseCase(repos.Categories, policy)
	clientUC := usecase.NewClientUseCase(repos.Clients, policy)
	remitoUC := workflow.NewRemitoUseCase(repos.Remitos, repos.Statuses, repos.Clients, repos.Products, policy)
	transitionUC := workflow.NewTransitionUseCase(repos.Remitos, repos.Statuses, policy, log)
	dashboardUC := appanalytics.NewDashboardUseCase(repos.Analytics, repos.Statuses, policy, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.SwaggerFile != "" {
		if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.SwaggerFile,
				Path:     "docs",
				Title:    "Remitos API",
			}))
		} else {
			log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:    companyUC,
		ProductUC:    productUC,
		CategoryUC:   categoryUC,
		ClientUC:     clientUC,
		StatusUC:     statusUC,
		RemitoUC:     remitoUC,
		TransitionUC: transitionUC,
		DashboardUC:  dashboardUC,
		Policy:       policy,
		AdminRoles:   cfg.Workflow.PrivilegedRoles,
		DashboardTTL: cfg.Dashboard.CacheTTL,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
