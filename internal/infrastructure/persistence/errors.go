package persistence

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/infrastructure/postgres"
)

// classify traduce errores del ORM/driver a la taxonomía de dominio.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case isConstraintViolation(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrValidation, err)
	default:
		return &domain.StoreError{Op: op, Err: err}
	}
}

// isConstraintViolation detecta FK inexistente o clave duplicada, con o sin traducción del dialecto.
func isConstraintViolation(err error) bool {
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrDuplicatedKey):
		return true
	case postgres.IsForeignKeyViolation(err), postgres.IsUniqueViolation(err):
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") || strings.Contains(msg, "UNIQUE constraint failed")
}
