package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/internal/domain/specification"
)

// Columnas del CSV de importación. category, name y price son obligatorias.
var importColumns = []string{"category", "name", "price", "description", "image", "stock_quantity", "featured"}

// ImportResult resumen de una importación.
type ImportResult struct {
	Categories int
	Products   int
}

// ImportUseCase carga un catálogo desde CSV en una sola transacción: si una fila falla no se
// confirma nada.
type ImportUseCase struct {
	tx TxRunner
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(tx TxRunner) *ImportUseCase {
	return &ImportUseCase{tx: tx}
}

// Import lee el CSV (con cabecera) y crea las categorías que falten y todos los productos.
func (uc *ImportUseCase) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: cabecera CSV: %v", domain.ErrInvalidInput, err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return ImportResult{}, err
	}

	var res ImportResult
	err = uc.tx.Run(ctx, func(products repository.ProductRepository, categories repository.CategoryRepository) error {
		known := make(map[string]int64)
		line := 1
		for {
			record, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			line++
			if err != nil {
				return fmt.Errorf("%w: línea %d: %v", domain.ErrInvalidInput, line, err)
			}
			row := csvRow{record: record, idx: idx}

			catName := strings.TrimSpace(row.get("category"))
			catID, ok := known[catName]
			if !ok {
				catID, ok, err = findOrCreateCategory(ctx, categories, catName)
				if err != nil {
					return fmt.Errorf("línea %d: %w", line, err)
				}
				if ok {
					res.Categories++
				}
				known[catName] = catID
			}

			p, err := row.product(catID)
			if err != nil {
				return fmt.Errorf("línea %d: %w", line, err)
			}
			if err := products.Add(ctx, p); err != nil {
				return fmt.Errorf("línea %d: %w", line, err)
			}
			res.Products++
		}
	})
	if err != nil {
		return ImportResult{}, err
	}
	return res, nil
}

// findOrCreateCategory devuelve created=true si tuvo que crearla.
func findOrCreateCategory(ctx context.Context, repo repository.CategoryRepository, name string) (id int64, created bool, err error) {
	if err := validateName(name); err != nil {
		return 0, false, err
	}
	c, err := repo.First(ctx, specification.CategoryByName(name))
	switch {
	case err == nil:
		return c.ID, false, nil
	case !errors.Is(err, domain.ErrNotFound):
		return 0, false, err
	}
	c = &entity.Category{Name: name}
	if err := repo.Add(ctx, c); err != nil {
		return 0, false, err
	}
	return c.ID, true, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range importColumns[:3] {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%w: falta la columna %q", domain.ErrInvalidInput, required)
		}
	}
	return idx, nil
}

type csvRow struct {
	record []string
	idx    map[string]int
}

func (r csvRow) get(col string) string {
	i, ok := r.idx[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r csvRow) product(categoryID int64) (*entity.Product, error) {
	price, err := decimal.NewFromString(r.get("price"))
	if err != nil {
		return nil, invalid("price", "no es un número")
	}
	stock := 0
	if s := r.get("stock_quantity"); s != "" {
		if stock, err = strconv.Atoi(s); err != nil {
			return nil, invalid("stock_quantity", "no es un entero")
		}
	}
	featured := false
	if s := r.get("featured"); s != "" {
		if featured, err = strconv.ParseBool(s); err != nil {
			return nil, invalid("featured", "no es booleano")
		}
	}
	p := &entity.Product{
		Name:          r.get("name"),
		Price:         price,
		Description:   r.get("description"),
		Image:         r.get("image"),
		StockQuantity: stock,
		Featured:      featured,
		CategoryID:    categoryID,
	}
	fields := productFields{p.Name, p.Price, p.Description, p.Image, p.StockQuantity, p.CategoryID}
	if err := fields.validate(); err != nil {
		return nil, err
	}
	return p, nil
}
