package repository

import "github.com/jhoicas/catalog-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Repository[entity.Category, int64]
}
