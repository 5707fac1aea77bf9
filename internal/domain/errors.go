package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrDuplicateName  = errors.New("ya existe un estado con ese nombre en la empresa")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrInUse          = errors.New("el estado está asignado a uno o más remitos")
	ErrInvalidStatus  = errors.New("estado destino inválido para el remito")
	ErrTenantRequired = errors.New("se requiere una empresa para esta operación")
	ErrStore          = errors.New("error de almacenamiento")
)

// StoreError envuelve una falla del almacenamiento con la operación que la produjo.
// errors.Is(err, ErrStore) es verdadero para cualquier StoreError.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStore }

// NewStoreError construye un StoreError; devuelve nil si err es nil.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
