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

// ProductUseCase casos de uso CRUD para productos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. La categoría debe existir (domain.ErrValidation si no).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	fields := productFields{in.Name, in.Price, in.Description, in.Image, in.StockQuantity, in.CategoryID}
	if err := fields.validate(); err != nil {
		return nil, err
	}
	product := &entity.Product{
		Name:          in.Name,
		Price:         in.Price,
		Description:   in.Description,
		Image:         in.Image,
		StockQuantity: in.StockQuantity,
		Featured:      in.Featured,
		CategoryID:    in.CategoryID,
	}
	if err := uc.repo.Add(ctx, product); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, product.ID)
}

// GetByID obtiene un producto con su categoría.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.First(ctx, specification.ProductWithCategory(id))
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos filtrados y paginados. Page.Total cuenta todas las coincidencias.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	search := specification.ProductSearch{
		CategoryID:   in.CategoryID,
		Featured:     in.Featured,
		NameContains: in.Query,
		SortBy:       in.Sort,
		Descending:   in.Desc,
	}
	total, err := uc.repo.Count(ctx, specification.ProductsMatching(search))
	if err != nil {
		return nil, err
	}
	search.Skip, search.Take = in.Offset, in.Limit
	list, err := uc.repo.List(ctx, specification.ProductsMatching(search))
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: toProductResponses(list),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Featured productos destacados, los más recientes primero.
func (uc *ProductUseCase) Featured(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, specification.FeaturedProducts(page.Offset, page.Limit))
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, specification.ProductsMatching(specification.ProductSearch{Featured: ptr(true)}))
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: toProductResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Update reemplaza los datos de un producto. Con in.RowVersion la escritura solo se confirma si
// nadie modificó el producto desde esa versión (domain.ErrConcurrencyConflict en otro caso).
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.ID != 0 && in.ID != id {
		return nil, fmt.Errorf("%w: el id del cuerpo (%d) no coincide con la ruta (%d)", domain.ErrInvalidInput, in.ID, id)
	}
	fields := productFields{in.Name, in.Price, in.Description, in.Image, in.StockQuantity, in.CategoryID}
	if err := fields.validate(); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = in.Name
	product.Price = in.Price
	product.Description = in.Description
	product.Image = in.Image
	product.StockQuantity = in.StockQuantity
	product.Featured = in.Featured
	product.CategoryID = in.CategoryID
	if in.RowVersion != nil {
		product.Version = *in.RowVersion
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, &entity.Product{Base: entity.Base{ID: id}})
}

func ptr[T any](v T) *T { return &v }
