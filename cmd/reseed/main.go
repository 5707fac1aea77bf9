// reseed crea los estados de remito por defecto que le falten a una empresa (o a todas).
// Repara empresas cuyo sembrado falló al darlas de alta; nunca modifica estados existentes.
//
// Uso: go run ./cmd/reseed [--company <id>] [--template estados.yaml]
// Sin --company recorre todas las empresas.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/jhoicas/remitos-api/internal/application/workflow"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/tenant"
	"github.com/jhoicas/remitos-api/internal/infrastructure/store"
	"github.com/jhoicas/remitos-api/pkg/config"
	"github.com/jhoicas/remitos-api/pkg/logger"
)

const pageSize = 100

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run devuelve el código de salida; los defer se ejecutan antes del os.Exit de main.
func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("reseed", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	companyID := flags.String("company", "", "ID de la empresa; vacío = todas")
	templateFile := flags.String("template", "", "plantilla YAML; vacío = STATUS_TEMPLATE_FILE o la de fábrica")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Cargar configuración: %v\n", err)
		return 1
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Output: stderr}).Component("reseed")

	path := cfg.Workflow.StatusTemplateFile
	if *templateFile != "" {
		path = *templateFile
	}
	template, err := workflow.LoadTemplate(path)
	if err != nil {
		fmt.Fprintf(stderr, "Plantilla: %v\n", err)
		return 1
	}

	ctx := context.Background()
	repos, err := store.Open(ctx, cfg.DB, log)
	if err != nil {
		fmt.Fprintf(stderr, "Almacenamiento: %v\n", err)
		return 1
	}
	defer repos.Close()

	policy := tenant.NewRolePolicy(cfg.Workflow.PrivilegedRoles...)
	registry := workflow.NewStatusUseCase(repos.Statuses, repos.Remitos, repos.Companies, policy, template, log)
	operator := tenant.Caller{UserID: "reseed-" + uuid.NewString(), Role: entity.RoleSuperAdmin}

	targets := []string{*companyID}
	if *companyID == "" {
		targets, err = allCompanies(ctx, repos)
		if err != nil {
			fmt.Fprintf(stderr, "Listar empresas: %v\n", err)
			return 1
		}
	}

	failed := 0
	for _, id := range targets {
		created, err := registry.ReseedDefaults(ctx, operator, id)
		if err != nil {
			failed++
			log.Error().Err(err).Str("company_id", id).Msg("re-sembrado fallido")
			continue
		}
		fmt.Fprintf(stdout, "%s: %d estados creados\n", id, len(created))
	}
	if failed > 0 {
		fmt.Fprintf(stderr, "%d de %d empresas con errores\n", failed, len(targets))
		return 1
	}
	return 0
}

func allCompanies(ctx context.Context, repos *store.Repositories) ([]string, error) {
	var ids []string
	for offset := 0; ; offset += pageSize {
		page, err := repos.Companies.List(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, c := range page {
			ids = append(ids, c.ID)
		}
		if len(page) < pageSize {
			return ids, nil
		}
	}
}
