package entity

import "time"

// Category agrupa productos. Eliminar una categoría elimina en cascada sus productos.
type Category struct {
	Base
	Name      string    `gorm:"size:100;not null;index:idx_category_name"`
	Products  []Product `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
