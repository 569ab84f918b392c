// Package specification describe consultas de forma declarativa: criterio de filtrado, cargas
// anticipadas (includes), orden y paginación. Una Specification es inmutable una vez construida;
// solo el callback pasado a Build puede declarar sus cláusulas.
package specification

// Include es una ruta de navegación tipada para la entidad T (carga anticipada).
type Include[T any] struct {
	path string
}

// Navigation declara una navegación de T. Se usa en variables de paquete junto a la entidad.
func Navigation[T any](path string) Include[T] {
	return Include[T]{path: path}
}

// Path devuelve el nombre de la asociación.
func (i Include[T]) Path() string { return i.path }

// Specification describe una consulta sobre T. El valor cero coincide con todo, sin orden ni paginación.
type Specification[T any] struct {
	criteria          Criteria
	includes          []Include[T]
	includePaths      []string
	orderBy           string
	orderByDescending string
	skip              int
	take              int
	pagingEnabled     bool
}

// All devuelve una especificación vacía.
func All[T any]() Specification[T] {
	return Specification[T]{}
}

// Criteria devuelve el criterio de filtrado y si existe.
func (s Specification[T]) Criteria() (Criteria, bool) {
	return s.criteria, !s.criteria.IsZero()
}

// Includes devuelve las navegaciones tipadas en orden de declaración.
func (s Specification[T]) Includes() []Include[T] {
	return append([]Include[T](nil), s.includes...)
}

// IncludePaths devuelve las rutas en texto (navegaciones anidadas, ej. "Products.Category").
func (s Specification[T]) IncludePaths() []string {
	return append([]string(nil), s.includePaths...)
}

// OrderBy devuelve la columna de orden ascendente (vacío si no hay).
func (s Specification[T]) OrderBy() string { return s.orderBy }

// OrderByDescending devuelve la columna de orden descendente (vacío si no hay).
func (s Specification[T]) OrderByDescending() string { return s.orderByDescending }

func (s Specification[T]) Skip() int { return s.skip }

func (s Specification[T]) Take() int { return s.take }

// PagingEnabled indica si Skip/Take aplican. Sin ApplyPaging la paginación es inerte.
func (s Specification[T]) PagingEnabled() bool { return s.pagingEnabled }
