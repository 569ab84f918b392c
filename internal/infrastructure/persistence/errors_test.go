package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/jhoicas/catalog-api/internal/domain"
)

func TestClassify(t *testing.T) {
	assert.NoError(t, classify("op", nil))
	assert.ErrorIs(t, classify("get product 1", gorm.ErrRecordNotFound), domain.ErrNotFound)
	assert.ErrorIs(t, classify("insert product", gorm.ErrForeignKeyViolated), domain.ErrValidation)
	assert.ErrorIs(t, classify("insert product", &pgconn.PgError{Code: "23503"}), domain.ErrValidation)
	assert.ErrorIs(t, classify("insert category", &pgconn.PgError{Code: "23505"}), domain.ErrValidation)

	err := classify("list product", context.DeadlineExceeded)
	assert.ErrorIs(t, err, domain.ErrStore)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	var se *domain.StoreError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, "list product", se.Op)
}
