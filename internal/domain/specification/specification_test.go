package specification_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/specification"
)

func TestBuild_DeclaraTodasLasClausulas(t *testing.T) {
	spec := specification.Build(func(b *specification.Builder[entity.Product]) {
		b.Where(specification.Where("price > ?", 10)).
			Include(specification.ProductCategory).
			IncludePath("Category.Products").
			OrderBy("name").
			ApplyPaging(2, 5)
	})

	c, ok := spec.Criteria()
	require.True(t, ok)
	assert.Equal(t, "price > ?", c.Query())
	assert.Equal(t, []any{10}, c.Args())
	require.Len(t, spec.Includes(), 1)
	assert.Equal(t, "Category", spec.Includes()[0].Path())
	assert.Equal(t, []string{"Category.Products"}, spec.IncludePaths())
	assert.Equal(t, "name", spec.OrderBy())
	assert.Empty(t, spec.OrderByDescending())
	assert.True(t, spec.PagingEnabled())
	assert.Equal(t, 2, spec.Skip())
	assert.Equal(t, 5, spec.Take())
}

func TestAll_SinCriterioNiPaginacion(t *testing.T) {
	spec := specification.All[entity.Category]()
	_, ok := spec.Criteria()
	assert.False(t, ok)
	assert.False(t, spec.PagingEnabled())
	assert.Empty(t, spec.Includes())
}

func TestBuild_AccesoresDevuelvenCopias(t *testing.T) {
	spec := specification.Build(func(b *specification.Builder[entity.Product]) {
		b.Where(specification.Where("id = ?", 1)).IncludePath("Category")
	})

	paths := spec.IncludePaths()
	paths[0] = "Otra"
	c, _ := spec.Criteria()
	args := c.Args()
	args[0] = 99

	assert.Equal(t, []string{"Category"}, spec.IncludePaths())
	c2, _ := spec.Criteria()
	assert.Equal(t, []any{1}, c2.Args())
}

func TestBuild_BuilderSelladoTrasConstruccion(t *testing.T) {
	var leaked *specification.Builder[entity.Product]
	_ = specification.Build(func(b *specification.Builder[entity.Product]) {
		leaked = b
	})

	assert.Panics(t, func() { leaked.OrderBy("name") })
}

func TestBuild_AmbosOrdenesQuedanDefinidos(t *testing.T) {
	spec := specification.Build(func(b *specification.Builder[entity.Product]) {
		b.OrderBy("name").OrderByDescending("price")
	})
	assert.Equal(t, "name", spec.OrderBy())
	assert.Equal(t, "price", spec.OrderByDescending())
}

func TestBuild_WhereSucesivosSeCombinan(t *testing.T) {
	spec := specification.Build(func(b *specification.Builder[entity.Product]) {
		b.Where(specification.Where("a = ?", 1)).Where(specification.Where("b = ?", 2))
	})
	c, ok := spec.Criteria()
	require.True(t, ok)
	assert.Equal(t, "(a = ?) AND (b = ?)", c.Query())
	assert.Equal(t, []any{1, 2}, c.Args())
}

func TestApplyPaging_NegativosANormalizados(t *testing.T) {
	spec := specification.Build(func(b *specification.Builder[entity.Product]) {
		b.ApplyPaging(-3, -1)
	})
	assert.True(t, spec.PagingEnabled())
	assert.Equal(t, 0, spec.Skip())
	assert.Equal(t, 0, spec.Take())
}

func TestCriteria_AndConVacioEsNeutro(t *testing.T) {
	c := specification.Where("x = ?", 1)
	assert.Equal(t, c, specification.Criteria{}.And(c))
	assert.Equal(t, c, c.And(specification.Criteria{}))
}

func TestProductsMatching(t *testing.T) {
	catID := int64(7)
	featured := true
	spec := specification.ProductsMatching(specification.ProductSearch{
		CategoryID:   &catID,
		Featured:     &featured,
		NameContains: "50%_off",
		SortBy:       "price",
		Descending:   true,
		Skip:         10,
		Take:         5,
	})

	c, ok := spec.Criteria()
	require.True(t, ok)
	assert.Equal(t, []any{int64(7), true, `%50\%\_off%`}, c.Args())
	assert.Equal(t, "price", spec.OrderByDescending())
	assert.Empty(t, spec.OrderBy())
	assert.True(t, spec.PagingEnabled())
	assert.Equal(t, 10, spec.Skip())
	assert.Equal(t, 5, spec.Take())
}

func TestProductsMatching_SortDesconocidoOrdenaPorNombre(t *testing.T) {
	spec := specification.ProductsMatching(specification.ProductSearch{SortBy: "1; DROP TABLE products"})
	assert.Equal(t, "name", spec.OrderBy())
	assert.False(t, spec.PagingEnabled())
	_, ok := spec.Criteria()
	assert.False(t, ok)
}
