package repository

import (
	"context"

	"github.com/Guntherdrb/paratodos-gemini/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeadRepository defines the data access contract for leads.
// Leads are append-only: there is no update or delete path.
type LeadRepository interface {
	Create(ctx context.Context, l *model.Lead) error
	CountByTiendaID(ctx context.Context, tiendaID uuid.UUID) (int64, error)
}

type leadRepo struct{ db *gorm.DB }

func NewLeadRepository(db *gorm.DB) LeadRepository { return &leadRepo{db: db} }

func (r *leadRepo) Create(ctx context.Context, l *model.Lead) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *leadRepo) CountByTiendaID(ctx context.Context, tiendaID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Lead{}).Where("tienda_id = ?", tiendaID).Count(&count).Error
	return count, err
}
