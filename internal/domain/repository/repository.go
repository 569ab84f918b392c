package repository

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/specification"
)

// Repository define el puerto de persistencia genérico para una entidad T con identidad K (DIP).
//
// Errores: domain.ErrNotFound, domain.ErrConcurrencyConflict, domain.ErrValidation y
// *domain.StoreError (domain.ErrStore) para fallos no clasificados. Cada escritura confirma
// de inmediato.
type Repository[T any, K comparable] interface {
	GetByID(ctx context.Context, id K) (*T, error)
	ListAll(ctx context.Context) ([]T, error)

	List(ctx context.Context, spec specification.Specification[T]) ([]T, error)
	First(ctx context.Context, spec specification.Specification[T]) (*T, error)
	Count(ctx context.Context, spec specification.Specification[T]) (int64, error)

	// Add asigna identidad y versión inicial (las asigna el almacén, no el llamador).
	Add(ctx context.Context, entity *T) error
	// Update confirma solo si la versión almacenada sigue siendo la que trae entity.
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, entity *T) error
	// Modify lee, aplica fn y confirma contra la versión leída antes de mutar.
	Modify(ctx context.Context, id K, fn func(*T) error) (*T, error)
}
