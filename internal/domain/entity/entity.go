package entity

// Identifiable expone la identidad primaria de una entidad.
type Identifiable[K comparable] interface {
	GetID() K
}

// Versioned expone el token de versión usado para concurrencia optimista.
// El token lo asigna y avanza exclusivamente la capa de persistencia.
type Versioned interface {
	GetVersion() int64
	SetVersion(v int64)
}

// Model es el contrato mínimo que necesita el repositorio genérico.
type Model[K comparable] interface {
	Identifiable[K]
	Versioned
}

// Base agrupa identidad y versión. Se embebe en las entidades del catálogo.
type Base struct {
	ID      int64 `gorm:"primaryKey;autoIncrement"`
	Version int64 `gorm:"not null"`
}

func (b *Base) GetID() int64       { return b.ID }
func (b *Base) GetVersion() int64  { return b.Version }
func (b *Base) SetVersion(v int64) { b.Version = v }
