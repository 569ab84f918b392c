package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/domain"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 500
	maxImageLen       = 250
	maxStock          = 9999
)

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", domain.ErrInvalidInput, field, reason)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name", "es obligatorio")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return invalid("name", fmt.Sprintf("supera %d caracteres", maxNameLen))
	}
	return nil
}

type productFields struct {
	name          string
	price         decimal.Decimal
	description   string
	image         string
	stockQuantity int
	categoryID    int64
}

func (f productFields) validate() error {
	if err := validateName(f.name); err != nil {
		return err
	}
	if f.price.IsNegative() {
		return invalid("price", "no puede ser negativo")
	}
	if utf8.RuneCountInString(f.description) > maxDescriptionLen {
		return invalid("description", fmt.Sprintf("supera %d caracteres", maxDescriptionLen))
	}
	if utf8.RuneCountInString(f.image) > maxImageLen {
		return invalid("image", fmt.Sprintf("supera %d caracteres", maxImageLen))
	}
	if f.stockQuantity < 0 || f.stockQuantity > maxStock {
		return invalid("stock_quantity", fmt.Sprintf("debe estar entre 0 y %d", maxStock))
	}
	if f.categoryID <= 0 {
		return invalid("category_id", "es obligatorio")
	}
	return nil
}
