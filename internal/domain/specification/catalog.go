package specification

import (
	"strings"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// Navegaciones del catálogo.
var (
	ProductCategory  = Navigation[entity.Product]("Category")
	CategoryProducts = Navigation[entity.Category]("Products")
)

// Columnas ordenables de productos (whitelist para parámetros externos).
var productSortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"stock":      "stock_quantity",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// ProductsWithCategories todos los productos con su categoría, ordenados por nombre.
func ProductsWithCategories() Specification[entity.Product] {
	return Build(func(b *Builder[entity.Product]) {
		b.Include(ProductCategory).OrderBy("name")
	})
}

// ProductWithCategory un producto por ID con su categoría.
func ProductWithCategory(id int64) Specification[entity.Product] {
	return Build(func(b *Builder[entity.Product]) {
		b.Where(Where("id = ?", id)).Include(ProductCategory)
	})
}

// ProductsWithCategoriesPage página de productos con su categoría.
func ProductsWithCategoriesPage(skip, take int) Specification[entity.Product] {
	return Build(func(b *Builder[entity.Product]) {
		b.Include(ProductCategory).ApplyPaging(skip, take)
	})
}

// FeaturedProducts productos destacados, los más recientes primero.
func FeaturedProducts(skip, take int) Specification[entity.Product] {
	return Build(func(b *Builder[entity.Product]) {
		b.Where(Where("featured = ?", true)).
			Include(ProductCategory).
			OrderByDescending("created_at").
			ApplyPaging(skip, take)
	})
}

// ProductsInCategory productos de una categoría (sin paginar; útil para Count).
func ProductsInCategory(categoryID int64) Specification[entity.Product] {
	return Build(func(b *Builder[entity.Product]) {
		b.Where(Where("category_id = ?", categoryID))
	})
}

// ProductSearch filtros opcionales del listado de productos.
type ProductSearch struct {
	CategoryID   *int64
	Featured     *bool
	NameContains string
	SortBy       string // name, price, stock, created_at, updated_at
	Descending   bool
	Skip         int
	Take         int
}

// ProductsMatching traduce una búsqueda a especificación. SortBy desconocido ordena por nombre.
func ProductsMatching(q ProductSearch) Specification[entity.Product] {
	return Build(func(b *Builder[entity.Product]) {
		if q.CategoryID != nil {
			b.Where(Where("category_id = ?", *q.CategoryID))
		}
		if q.Featured != nil {
			b.Where(Where("featured = ?", *q.Featured))
		}
		if name := strings.TrimSpace(q.NameContains); name != "" {
			b.Where(Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(name))+"%"))
		}
		col, ok := productSortColumns[q.SortBy]
		if !ok {
			col = "name"
		}
		if q.Descending {
			b.OrderByDescending(col)
		} else {
			b.OrderBy(col)
		}
		b.Include(ProductCategory)
		if q.Take > 0 {
			b.ApplyPaging(q.Skip, q.Take)
		}
	})
}

// CategoriesWithProducts categorías con sus productos, ordenadas por nombre.
func CategoriesWithProducts() Specification[entity.Category] {
	return Build(func(b *Builder[entity.Category]) {
		b.Include(CategoryProducts).OrderBy("name")
	})
}

// CategoryWithProducts una categoría por ID con sus productos.
func CategoryWithProducts(id int64) Specification[entity.Category] {
	return Build(func(b *Builder[entity.Category]) {
		b.Where(Where("id = ?", id)).Include(CategoryProducts)
	})
}

// CategoryByName categoría por nombre exacto.
func CategoryByName(name string) Specification[entity.Category] {
	return Build(func(b *Builder[entity.Category]) {
		b.Where(Where("name = ?", name))
	})
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
