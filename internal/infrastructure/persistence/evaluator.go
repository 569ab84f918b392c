package persistence

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/catalog-api/internal/domain/specification"
)

// Evaluate aplica una especificación sobre la consulta base en orden fijo:
// criterio -> orden -> paginación -> includes. No ejecuta la consulta ni reporta errores propios;
// un criterio inválido falla al ejecutarse en el almacén.
//
// El resultado es una sesión nueva: encadenar sobre ella no altera la consulta base.
func Evaluate[T any](query *gorm.DB, spec specification.Specification[T]) *gorm.DB {
	q := applyCriteria(query, spec)
	q = applyOrder(q, spec)
	q = applyPaging(q, spec)
	q = applyIncludes(q, spec)
	return q.Session(&gorm.Session{})
}

func applyCriteria[T any](q *gorm.DB, spec specification.Specification[T]) *gorm.DB {
	if c, ok := spec.Criteria(); ok {
		return q.Where(c.Query(), c.Args()...)
	}
	return q
}

// Si ambos órdenes están definidos gana el ascendente.
func applyOrder[T any](q *gorm.DB, spec specification.Specification[T]) *gorm.DB {
	switch {
	case spec.OrderBy() != "":
		return q.Order(clause.OrderByColumn{Column: clause.Column{Name: spec.OrderBy()}})
	case spec.OrderByDescending() != "":
		return q.Order(clause.OrderByColumn{Column: clause.Column{Name: spec.OrderByDescending()}, Desc: true})
	}
	return q
}

func applyPaging[T any](q *gorm.DB, spec specification.Specification[T]) *gorm.DB {
	if !spec.PagingEnabled() {
		return q
	}
	return q.Offset(spec.Skip()).Limit(spec.Take())
}

// Includes tipados primero, luego rutas en texto; cada ruta se aplica una sola vez.
func applyIncludes[T any](q *gorm.DB, spec specification.Specification[T]) *gorm.DB {
	seen := make(map[string]struct{})
	preload := func(path string) {
		if path == "" {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		q = q.Preload(path)
	}
	for _, inc := range spec.Includes() {
		preload(inc.Path())
	}
	for _, path := range spec.IncludePaths() {
		preload(path)
	}
	return q
}

// window calcula cuántos elementos de un total filtrado caen en la página de la especificación.
func window[T any](total int64, spec specification.Specification[T]) int64 {
	if !spec.PagingEnabled() {
		return total
	}
	n := total - int64(spec.Skip())
	if n < 0 {
		n = 0
	}
	return min(n, int64(spec.Take()))
}
