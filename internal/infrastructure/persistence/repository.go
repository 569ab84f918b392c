package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/internal/domain/specification"
)

const versionColumn = "version"

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
)

// Repository implementación genérica del puerto repository.Repository sobre GORM (usable con db o tx).
// PT es el puntero a T, que debe exponer identidad y versión.
type Repository[T any, K comparable, PT interface {
	*T
	entity.Model[K]
}] struct {
	db      *gorm.DB
	name    string
	metrics *Metrics
}

// ProductRepo repositorio de productos.
type ProductRepo = Repository[entity.Product, int64, *entity.Product]

// CategoryRepo repositorio de categorías.
type CategoryRepo = Repository[entity.Category, int64, *entity.Category]

// Option configura un repositorio.
type Option func(*options)

type options struct {
	metrics *Metrics
}

// WithMetrics registra conflictos de concurrencia en las métricas dadas.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// NewRepository construye el repositorio genérico. name identifica la entidad en errores y métricas.
func NewRepository[T any, K comparable, PT interface {
	*T
	entity.Model[K]
}](db *gorm.DB, name string, opts ...Option) *Repository[T, K, PT] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = NewNoopMetrics()
	}
	return &Repository[T, K, PT]{db: db, name: name, metrics: o.metrics}
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar db o tx.
func NewProductRepository(db *gorm.DB, opts ...Option) *ProductRepo {
	return NewRepository[entity.Product, int64](db, "product", opts...)
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar db o tx.
func NewCategoryRepository(db *gorm.DB, opts ...Option) *CategoryRepo {
	return NewRepository[entity.Category, int64](db, "category", opts...)
}

func (r *Repository[T, K, PT]) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(new(T))
}

func byID(id any) clause.Expression {
	return clause.Eq{Column: clause.PrimaryColumn, Value: id}
}

// GetByID obtiene una entidad por identidad. domain.ErrNotFound si no existe.
func (r *Repository[T, K, PT]) GetByID(ctx context.Context, id K) (*T, error) {
	var e T
	if err := r.db.WithContext(ctx).Where(byID(id)).Take(&e).Error; err != nil {
		return nil, classify(fmt.Sprintf("get %s %v", r.name, id), err)
	}
	return &e, nil
}

// ListAll lista todas las entidades, sin orden garantizado.
func (r *Repository[T, K, PT]) ListAll(ctx context.Context) ([]T, error) {
	list := make([]T, 0)
	if err := r.base(ctx).Find(&list).Error; err != nil {
		return nil, classify("list "+r.name, err)
	}
	return list, nil
}

// List lista las entidades que cumplen la especificación.
func (r *Repository[T, K, PT]) List(ctx context.Context, spec specification.Specification[T]) ([]T, error) {
	list := make([]T, 0)
	if err := Evaluate(r.base(ctx), spec).Find(&list).Error; err != nil {
		return nil, classify("list "+r.name, err)
	}
	return list, nil
}

// First devuelve la primera entidad que cumple la especificación. domain.ErrNotFound si no hay.
func (r *Repository[T, K, PT]) First(ctx context.Context, spec specification.Specification[T]) (*T, error) {
	if spec.PagingEnabled() && spec.Take() == 0 {
		return nil, fmt.Errorf("first %s: %w", r.name, domain.ErrNotFound)
	}
	var e T
	if err := Evaluate(r.base(ctx), spec).Take(&e).Error; err != nil {
		return nil, classify("first "+r.name, err)
	}
	return &e, nil
}

// Count cuenta las entidades que List devolvería para la misma especificación.
// Orden e includes no alteran la cardinalidad; la página se aplica sobre el total filtrado.
func (r *Repository[T, K, PT]) Count(ctx context.Context, spec specification.Specification[T]) (int64, error) {
	var total int64
	if err := applyCriteria(r.base(ctx), spec).Count(&total).Error; err != nil {
		return 0, classify("count "+r.name, err)
	}
	return window(total, spec), nil
}

// Add persiste una nueva entidad. Identidad y versión las asigna el almacén; una identidad
// provista por el llamador se rechaza con domain.ErrValidation. Las asociaciones no se persisten.
func (r *Repository[T, K, PT]) Add(ctx context.Context, e *T) error {
	p := PT(e)
	var zero K
	if p.GetID() != zero {
		return fmt.Errorf("insert %s: %w: la identidad la asigna el almacén", r.name, domain.ErrValidation)
	}
	p.SetVersion(1)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error; err != nil {
		p.SetVersion(0)
		return classify("insert "+r.name, err)
	}
	return nil
}

// Update confirma los cambios de e solo si la versión almacenada es la que e trae.
// domain.ErrConcurrencyConflict si otro escritor avanzó la versión; domain.ErrNotFound si ya no existe.
func (r *Repository[T, K, PT]) Update(ctx context.Context, e *T) error {
	// T0 se captura antes de cualquier mutación en memoria.
	expected := PT(e).GetVersion()
	return r.commit(ctx, e, expected)
}

// Modify lee la entidad, captura su versión, aplica fn y confirma contra esa versión.
// Lo que fn haga con el campo de versión no afecta la comparación.
func (r *Repository[T, K, PT]) Modify(ctx context.Context, id K, fn func(*T) error) (*T, error) {
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	expected := PT(e).GetVersion()
	if err := fn(e); err != nil {
		return nil, err
	}
	if err := r.commit(ctx, e, expected); err != nil {
		return nil, err
	}
	return e, nil
}

// commit escribe todas las columnas (incluidos valores cero) con la condición version = expected.
func (r *Repository[T, K, PT]) commit(ctx context.Context, e *T, expected int64) error {
	p := PT(e)
	id := p.GetID()
	op := fmt.Sprintf("update %s %v", r.name, id)
	// sin identidad Model(e) no agrega condición de clave y el UPDATE alcanzaría toda la tabla.
	var zero K
	if id == zero {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	p.SetVersion(expected + 1)
	res := r.db.WithContext(ctx).Model(e).
		Where(clause.Eq{Column: clause.Column{Name: versionColumn}, Value: expected}).
		Select("*").
		Omit(clause.Associations, "created_at").
		Updates(e)
	if res.Error != nil {
		p.SetVersion(expected)
		return classify(op, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	p.SetVersion(expected)
	var n int64
	if err := r.base(ctx).Where(byID(id)).Count(&n).Error; err != nil {
		return classify(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	r.metrics.RecordConflict(ctx, r.name)
	return fmt.Errorf("%s: %w (versión esperada %d)", op, domain.ErrConcurrencyConflict, expected)
}

// Delete elimina la entidad por identidad de forma permanente. domain.ErrNotFound si ya no existe.
func (r *Repository[T, K, PT]) Delete(ctx context.Context, e *T) error {
	id := PT(e).GetID()
	op := fmt.Sprintf("delete %s %v", r.name, id)
	var zero K
	if id == zero {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	res := r.db.WithContext(ctx).Where(byID(id)).Delete(new(T))
	if res.Error != nil {
		return classify(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}
