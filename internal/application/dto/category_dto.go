package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// UpdateCategoryRequest entrada para renombrar una categoría.
type UpdateCategoryRequest struct {
	ID         int64  `json:"id"`
	Name       string `json:"name" validate:"required,max=100"`
	RowVersion *int64 `json:"row_version,omitempty"`
}

// CategoryResponse salida de una categoría. Products solo se llena en el detalle.
type CategoryResponse struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	RowVersion int64             `json:"row_version"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Products   []ProductResponse `json:"products,omitempty"`
}

// DeleteCategoryResult resultado del borrado en cascada.
type DeleteCategoryResult struct {
	RemovedProducts int64 `json:"removed_products"`
}
