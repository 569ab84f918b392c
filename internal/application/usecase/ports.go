package usecase

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Todo lo que fn escriba se confirma junto o no se confirma.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		categories repository.CategoryRepository,
	) error) error
}
