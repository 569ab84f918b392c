// Package persistencetest ofrece una base SQLite en memoria, migrada y aislada por test.
package persistencetest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/infrastructure/persistence"
)

// New abre una base en memoria compartida (una conexión) con claves foráneas activas.
// Se cierra al terminar el test.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, persistence.Migrate(context.Background(), db))
	return db
}

// SeedCategory inserta una categoría y la devuelve con identidad y versión asignadas.
func SeedCategory(t testing.TB, db *gorm.DB, name string) *entity.Category {
	t.Helper()
	c := &entity.Category{Name: name}
	require.NoError(t, persistence.NewCategoryRepository(db).Add(context.Background(), c))
	return c
}

// SeedProduct inserta un producto en la categoría dada.
func SeedProduct(t testing.TB, db *gorm.DB, categoryID int64, name string, price string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: 10,
		CategoryID:    categoryID,
	}
	require.NoError(t, persistence.NewProductRepository(db).Add(context.Background(), p))
	return p
}
