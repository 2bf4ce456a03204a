package model

import (
	"time"

	"github.com/google/uuid"
)

// Lead is an append-only shopper-interest event: "someone tapped WhatsApp on
// this product". Rows are never updated or read back individually — only
// counted per tienda for the dashboard.
type Lead struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID `gorm:"type:uuid;index;not null"`
	TiendaID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Estado     string    `gorm:"not null;default:'pendiente'"`
	Fecha      time.Time `gorm:"autoCreateTime"`
}
