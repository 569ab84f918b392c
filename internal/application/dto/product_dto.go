package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,max=100"`
	Price         decimal.Decimal `json:"price" validate:"min=0"`
	Description   string          `json:"description" validate:"max=500"`
	Image         string          `json:"image" validate:"max=250"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0,max=9999"`
	Featured      bool            `json:"featured"`
	CategoryID    int64           `json:"category_id" validate:"required"`
}

// UpdateProductRequest reemplazo completo de un producto.
// RowVersion es la versión que el cliente leyó; si se omite se usa la vigente al cargar.
type UpdateProductRequest struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name" validate:"required,max=100"`
	Price         decimal.Decimal `json:"price" validate:"min=0"`
	Description   string          `json:"description" validate:"max=500"`
	Image         string          `json:"image" validate:"max=250"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0,max=9999"`
	Featured      bool            `json:"featured"`
	CategoryID    int64           `json:"category_id" validate:"required"`
	RowVersion    *int64          `json:"row_version,omitempty"`
}

// ProductResponse salida de un producto. CategoryName solo viene cuando se cargó la categoría.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Description   string          `json:"description"`
	Image         string          `json:"image"`
	StockQuantity int             `json:"stock_quantity"`
	Featured      bool            `json:"featured"`
	CategoryID    int64           `json:"category_id"`
	CategoryName  string          `json:"category_name,omitempty"`
	RowVersion    int64           `json:"row_version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListRequest filtros del listado de productos.
type ProductListRequest struct {
	PageRequest
	CategoryID *int64
	Featured   *bool
	Query      string
	Sort       string
	Desc       bool
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
