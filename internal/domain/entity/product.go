package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Pertenece siempre a una Category (FK obligatoria).
// CreatedAt, UpdatedAt y Version los gestiona la capa de persistencia.
type Product struct {
	Base
	Name          string          `gorm:"size:100;not null;index:idx_product_name"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description   string          `gorm:"size:500"`
	Image         string          `gorm:"size:250"`
	StockQuantity int             `gorm:"not null"`
	Featured      bool            `gorm:"not null;index:idx_product_featured"`
	CategoryID    int64           `gorm:"not null;index:idx_product_category_id"`
	Category      *Category       `gorm:"foreignKey:CategoryID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
