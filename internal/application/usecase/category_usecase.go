package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/internal/domain/specification"
)

// CategoryUseCase casos de uso para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	tx   TxRunner
}

// NewCategoryUseCase construye el caso de uso. tx se usa para el borrado en cascada.
func NewCategoryUseCase(repo repository.CategoryRepository, tx TxRunner) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, tx: tx}
}

// Create crea una categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	c := &entity.Category{Name: in.Name}
	if err := uc.repo.Add(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// GetByID obtiene una categoría con sus productos.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.repo.First(ctx, specification.CategoryWithProducts(id))
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// List lista todas las categorías ordenadas por nombre, sin productos.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, specification.Build(func(b *specification.Builder[entity.Category]) {
		b.OrderBy("name")
	}))
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for i := range list {
		out = append(out, *toCategoryResponse(&list[i]))
	}
	return out, nil
}

// Update renombra una categoría con control de concurrencia optimista.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.ID != 0 && in.ID != id {
		return nil, fmt.Errorf("%w: el id del cuerpo (%d) no coincide con la ruta (%d)", domain.ErrInvalidInput, in.ID, id)
	}
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = in.Name
	if in.RowVersion != nil {
		c.Version = *in.RowVersion
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Delete elimina la categoría y, en cascada, sus productos. Devuelve cuántos productos se eliminaron.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) (*dto.DeleteCategoryResult, error) {
	var removed int64
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, categories repository.CategoryRepository) error {
		c, err := categories.GetByID(ctx, id)
		if err != nil {
			return err
		}
		removed, err = products.Count(ctx, specification.ProductsInCategory(id))
		if err != nil {
			return err
		}
		return categories.Delete(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeleteCategoryResult{RemovedProducts: removed}, nil
}
