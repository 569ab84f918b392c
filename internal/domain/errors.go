package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrConcurrencyConflict = errors.New("el recurso fue modificado por otro usuario")
	ErrValidation          = errors.New("restricción de integridad violada")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrStore               = errors.New("fallo de persistencia")
)

// StoreError envuelve un fallo de persistencia no clasificado (conexión, constraint ajena, etc.).
// Conserva el error original del driver para que la capa superior lo registre o traduzca.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrStore).
func (e *StoreError) Is(target error) bool { return target == ErrStore }
