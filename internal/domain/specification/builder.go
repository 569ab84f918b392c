package specification

// Builder expone los mutadores de una Specification. Solo es válido dentro del callback de Build;
// usarlo después es un error de programación y provoca panic.
type Builder[T any] struct {
	spec *Specification[T]
}

// Build construye una Specification inmutable declarando sus cláusulas en fn.
func Build[T any](fn func(b *Builder[T])) Specification[T] {
	var spec Specification[T]
	b := &Builder[T]{spec: &spec}
	if fn != nil {
		fn(b)
	}
	b.spec = nil
	return spec
}

func (b *Builder[T]) target() *Specification[T] {
	if b.spec == nil {
		panic("specification: builder usado fuera de Build")
	}
	return b.spec
}

// Where fija el criterio. Llamadas sucesivas se combinan con AND.
func (b *Builder[T]) Where(c Criteria) *Builder[T] {
	s := b.target()
	s.criteria = s.criteria.And(c)
	return b
}

// Include agrega una navegación tipada.
func (b *Builder[T]) Include(i Include[T]) *Builder[T] {
	s := b.target()
	s.includes = append(s.includes, i)
	return b
}

// IncludePath agrega una navegación por ruta en texto.
func (b *Builder[T]) IncludePath(path string) *Builder[T] {
	s := b.target()
	s.includePaths = append(s.includePaths, path)
	return b
}

// OrderBy fija el orden ascendente. No limpia OrderByDescending: si ambos quedan definidos
// gana el ascendente al evaluar.
func (b *Builder[T]) OrderBy(column string) *Builder[T] {
	b.target().orderBy = column
	return b
}

// OrderByDescending fija el orden descendente.
func (b *Builder[T]) OrderByDescending(column string) *Builder[T] {
	b.target().orderByDescending = column
	return b
}

// ApplyPaging habilita la paginación. Valores negativos se tratan como 0.
func (b *Builder[T]) ApplyPaging(skip, take int) *Builder[T] {
	s := b.target()
	s.skip = max(skip, 0)
	s.take = max(take, 0)
	s.pagingEnabled = true
	return b
}
