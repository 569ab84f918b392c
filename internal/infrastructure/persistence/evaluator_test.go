package persistence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/specification"
)

func dryRun(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Discard, DryRun: true})
	require.NoError(t, err)
	return db
}

func TestEvaluate_OrdenDeClausulas(t *testing.T) {
	db := dryRun(t)
	spec := specification.Build(func(b *specification.Builder[entity.Product]) {
		b.ApplyPaging(20, 10).
			OrderByDescending("price").
			Where(specification.Where("featured = ?", true))
	})

	var list []entity.Product
	stmt := Evaluate(db.Model(&entity.Product{}), spec).Find(&list).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "WHERE featured = ?")
	assert.Contains(t, sql, "ORDER BY `price` DESC")
	assert.Contains(t, sql, "LIMIT 10 OFFSET 20")
	assert.Less(t, strings.Index(sql, "WHERE"), strings.Index(sql, "ORDER BY"))
	assert.Less(t, strings.Index(sql, "ORDER BY"), strings.Index(sql, "LIMIT"))
	assert.Equal(t, []interface{}{true}, stmt.Vars)
}

func TestEvaluate_SinClausulas(t *testing.T) {
	db := dryRun(t)
	var list []entity.Product
	sql := Evaluate(db.Model(&entity.Product{}), specification.All[entity.Product]()).Find(&list).Statement.SQL.String()
	assert.Equal(t, "SELECT * FROM `products`", sql)
}

func TestWindow(t *testing.T) {
	page := func(skip, take int) specification.Specification[entity.Product] {
		return specification.Build(func(b *specification.Builder[entity.Product]) { b.ApplyPaging(skip, take) })
	}
	assert.Equal(t, int64(7), window(7, specification.All[entity.Product]()))
	assert.Equal(t, int64(3), window(10, page(2, 3)))
	assert.Equal(t, int64(2), window(10, page(8, 5)))
	assert.Equal(t, int64(0), window(10, page(10, 5)))
	assert.Equal(t, int64(0), window(10, page(0, 0)))
}
