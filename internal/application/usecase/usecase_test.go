package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/usecase"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/infrastructure/persistence"
	"github.com/jhoicas/catalog-api/internal/infrastructure/persistence/persistencetest"
)

type fixture struct {
	db         *gorm.DB
	products   *usecase.ProductUseCase
	categories *usecase.CategoryUseCase
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := persistencetest.New(t)
	return fixture{
		db:         db,
		products:   usecase.NewProductUseCase(persistence.NewProductRepository(db)),
		categories: usecase.NewCategoryUseCase(persistence.NewCategoryRepository(db), persistence.NewTxRunner(db)),
	}
}

func validProduct(categoryID int64, name string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:          name,
		Price:         decimal.RequireFromString("9.99"),
		Description:   "descripción",
		StockQuantity: 5,
		CategoryID:    categoryID,
	}
}

func TestProductCreate_DevuelveNombreDeCategoria(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cat, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Lácteos"})
	require.NoError(t, err)

	out, err := f.products.Create(ctx, validProduct(cat.ID, "Queso"))
	require.NoError(t, err)
	assert.Greater(t, out.ID, int64(0))
	assert.Equal(t, "Lácteos", out.CategoryName)
	assert.Equal(t, int64(1), out.RowVersion)
	assert.True(t, decimal.RequireFromString("9.99").Equal(out.Price))
}

func TestProductCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]func(*dto.CreateProductRequest){
		"nombre vacío":      func(r *dto.CreateProductRequest) { r.Name = "  " },
		"nombre largo":      func(r *dto.CreateProductRequest) { r.Name = string(make([]byte, 101)) },
		"precio negativo":   func(r *dto.CreateProductRequest) { r.Price = decimal.NewFromInt(-1) },
		"stock fuera rango": func(r *dto.CreateProductRequest) { r.StockQuantity = 10000 },
		"sin categoría":     func(r *dto.CreateProductRequest) { r.CategoryID = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validProduct(1, "ok")
			mutate(&in)
			_, err := f.products.Create(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.products.Create(context.Background(), validProduct(404, "Fantasma"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProductList_FiltraYPagina(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "A"})
	require.NoError(t, err)
	b, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "B"})
	require.NoError(t, err)
	for _, n := range []string{"a1", "a2", "a3"} {
		_, err := f.products.Create(ctx, validProduct(a.ID, n))
		require.NoError(t, err)
	}
	_, err = f.products.Create(ctx, validProduct(b.ID, "b1"))
	require.NoError(t, err)

	out, err := f.products.List(ctx, dto.ProductListRequest{
		PageRequest: dto.PageRequest{Limit: 2, Offset: 1},
		CategoryID:  &a.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Page.Total)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "a2", out.Items[0].Name)
	assert.Equal(t, "a3", out.Items[1].Name)
	assert.Equal(t, "A", out.Items[0].CategoryName)
}

func TestProductFeatured(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cat, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "C"})
	require.NoError(t, err)
	in := validProduct(cat.ID, "destacado")
	in.Featured = true
	_, err = f.products.Create(ctx, in)
	require.NoError(t, err)
	_, err = f.products.Create(ctx, validProduct(cat.ID, "normal"))
	require.NoError(t, err)

	out, err := f.products.Featured(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "destacado", out.Items[0].Name)
	assert.Equal(t, int64(1), out.Page.Total)
	assert.Equal(t, 20, out.Page.Limit)
}

func TestProductUpdate_RowVersionObsoletaEsConflicto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cat, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "C"})
	require.NoError(t, err)
	created, err := f.products.Create(ctx, validProduct(cat.ID, "v1"))
	require.NoError(t, err)

	read := created.RowVersion
	upd := dto.UpdateProductRequest{
		Name: "v2", Price: created.Price, StockQuantity: 1, CategoryID: cat.ID, RowVersion: &read,
	}
	out, err := f.products.Update(ctx, created.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.RowVersion)
	assert.Equal(t, "v2", out.Name)

	// otro cliente con la versión que leyó antes
	upd.Name = "v2-bis"
	_, err = f.products.Update(ctx, created.ID, upd)
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)

	got, err := f.products.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Name)
}

func TestProductUpdate_IDNoCoincide(t *testing.T) {
	f := newFixture(t)
	_, err := f.products.Update(context.Background(), 1, dto.UpdateProductRequest{ID: 2, Name: "x", CategoryID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_Inexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.products.Update(context.Background(), 50, dto.UpdateProductRequest{Name: "x", CategoryID: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cat, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "C"})
	require.NoError(t, err)
	p, err := f.products.Create(ctx, validProduct(cat.ID, "efímero"))
	require.NoError(t, err)

	require.NoError(t, f.products.Delete(ctx, p.ID))
	assert.ErrorIs(t, f.products.Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestCategoryDelete_ReportaProductosEliminados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cat, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Temporada"})
	require.NoError(t, err)
	for _, n := range []string{"uno", "dos"} {
		_, err := f.products.Create(ctx, validProduct(cat.ID, n))
		require.NoError(t, err)
	}

	res, err := f.categories.Delete(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.RemovedProducts)

	list, err := f.products.List(ctx, dto.ProductListRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	_, err = f.categories.Delete(ctx, cat.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryGetByID_IncluyeProductos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cat, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Frutas"})
	require.NoError(t, err)
	_, err = f.products.Create(ctx, validProduct(cat.ID, "Mango"))
	require.NoError(t, err)

	got, err := f.categories.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	require.Len(t, got.Products, 1)
	assert.Equal(t, "Mango", got.Products[0].Name)
	assert.Equal(t, "Frutas", got.Products[0].CategoryName)
}

func TestCategoryUpdateYList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Zeta"})
	require.NoError(t, err)
	_, err = f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Beta"})
	require.NoError(t, err)

	out, err := f.categories.Update(ctx, b.ID, dto.UpdateCategoryRequest{Name: "Alfa"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.RowVersion)

	list, err := f.categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alfa", list[0].Name)
	assert.Equal(t, "Beta", list[1].Name)

	_, err = f.categories.Create(ctx, dto.CreateCategoryRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
