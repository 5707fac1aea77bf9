package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/infrastructure/sqlite"
)

// setupStore deja una base SQLite en disco con una empresa sin estados y apunta la config a ella.
func setupStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "remitos.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("LOG_LEVEL", "error")

	db, err := sqlite.Open(path)
	require.NoError(t, err)
	now := time.Now()
	company := &entity.Company{ID: uuid.NewString(), Name: "Acme", Status: entity.CompanyActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, sqlite.NewCompanyRepository(db).Create(context.Background(), company))
	require.NoError(t, sqlite.Close(db))
	return company.ID
}

func TestRun_ReseedsOneCompany(t *testing.T) {
	companyID := setupStore(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--company", companyID}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), companyID+": 4 estados creados")

	stdout.Reset()
	code = run([]string{"--company", companyID}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), companyID+": 0 estados creados")
}

func TestRun_AllCompanies(t *testing.T) {
	companyID := setupStore(t)

	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), companyID+": 4 estados creados")
}

func TestRun_UnknownCompanyReturnsExitCode(t *testing.T) {
	setupStore(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--company", "no-existe"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "1 de 1 empresas con errores")
}

func TestRun_InvalidFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"--desconocido"}, &stdout, &stderr))
}
