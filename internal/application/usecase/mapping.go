package usecase

import (
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Description:   p.Description,
		Image:         p.Image,
		StockQuantity: p.StockQuantity,
		Featured:      p.Featured,
		CategoryID:    p.CategoryID,
		RowVersion:    p.Version,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Category != nil {
		out.CategoryName = p.Category.Name
	}
	return out
}

func toProductResponses(list []entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for i := range list {
		items = append(items, *toProductResponse(&list[i]))
	}
	return items
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	out := &dto.CategoryResponse{
		ID:         c.ID,
		Name:       c.Name,
		RowVersion: c.Version,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if len(c.Products) > 0 {
		out.Products = toProductResponses(c.Products)
		for i := range out.Products {
			out.Products[i].CategoryName = c.Name
		}
	}
	return out
}
