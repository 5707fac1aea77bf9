package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/remitos-api/internal/domain"
)

func TestStoreError_IsErrStore(t *testing.T) {
	cause := errors.New("conexión rechazada")
	err := fmt.Errorf("listar estados: %w", domain.NewStoreError("statuses.List", cause))

	assert.ErrorIs(t, err, domain.ErrStore)
	assert.ErrorIs(t, err, cause, "la causa original debe seguir accesible")
	assert.Contains(t, err.Error(), "statuses.List")
}

func TestNewStoreError_NilDevuelveNil(t *testing.T) {
	assert.NoError(t, domain.NewStoreError("noop", nil))
}
