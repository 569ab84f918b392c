package repository

import "github.com/jhoicas/catalog-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Repository[entity.Product, int64]
}
