package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/catalog-api/internal/application/usecase"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción (un único punto de confirmación).
type TxRunner struct {
	db   *gorm.DB
	opts []Option
}

// NewTxRunner construye el runner. opts se aplican a los repositorios atados a la tx.
func NewTxRunner(db *gorm.DB, opts ...Option) *TxRunner {
	return &TxRunner{db: db, opts: opts}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los errores de fn se devuelven tal cual.
func (r *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewProductRepository(tx, r.opts...), NewCategoryRepository(tx, r.opts...))
	})
}
