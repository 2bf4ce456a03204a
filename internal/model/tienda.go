package model

import (
	"time"

	"github.com/google/uuid"
)

// Tienda is a merchant storefront created from a logo + PDF catalog upload.
// The slug is derived from the name at creation time and never changes:
// it is the public address of the storefront (/tienda/{slug}).
type Tienda struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Slug        string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Responsable *string
	Email       *string
	Telefono    *string
	Instagram   *string
	Color       *string
	// Logo and Catalogo are stored filenames under {uploadDir}/{slug}/
	Logo      string
	Catalogo  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
