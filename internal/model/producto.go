package model

import (
	"time"

	"github.com/google/uuid"
)

// Producto belongs to exactly one Tienda. Most rows are created by the
// catalog extraction worker; the rest come from manual entry.
// Precio is a free-form display string ("$12", "Consultar") — the catalogs
// this comes from carry arbitrary price text and no arithmetic is ever
// performed on it.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TiendaID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Nombre      string    `gorm:"not null"`
	Descripcion *string
	Precio      string
	// Imagen is either an absolute URL or a filename under {uploadDir}/{slug}/
	Imagen    string
	CreatedAt time.Time
	UpdatedAt time.Time

	Tienda *Tienda `gorm:"foreignKey:TiendaID"`
}
