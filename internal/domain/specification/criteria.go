package specification

import "strings"

// Criteria es un predicado opaco: un fragmento de condición parametrizado que evalúa el motor
// de persistencia. Se construye siempre desde código, nunca desde texto del usuario; los valores
// externos viajan como argumentos ligados (placeholders "?").
type Criteria struct {
	query string
	args  []any
}

// Where construye un criterio a partir de una condición con placeholders.
func Where(query string, args ...any) Criteria {
	return Criteria{query: strings.TrimSpace(query), args: append([]any(nil), args...)}
}

// Query devuelve la condición.
func (c Criteria) Query() string { return c.query }

// Args devuelve una copia de los argumentos ligados.
func (c Criteria) Args() []any { return append([]any(nil), c.args...) }

// IsZero indica si el criterio está vacío (coincide con todo).
func (c Criteria) IsZero() bool { return c.query == "" }

// And combina dos criterios. Un criterio vacío es neutro.
func (c Criteria) And(other Criteria) Criteria {
	switch {
	case c.IsZero():
		return other
	case other.IsZero():
		return c
	}
	args := make([]any, 0, len(c.args)+len(other.args))
	args = append(args, c.args...)
	args = append(args, other.args...)
	return Criteria{query: "(" + c.query + ") AND (" + other.query + ")", args: args}
}
