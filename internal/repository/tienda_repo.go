package repository

import (
	"context"

	"github.com/Guntherdrb/paratodos-gemini/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TiendaRepository defines the data access contract for tiendas.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type TiendaRepository interface {
	Create(ctx context.Context, t *model.Tienda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tienda, error)
	FindBySlug(ctx context.Context, slug string) (*model.Tienda, error)
	List(ctx context.Context) ([]model.Tienda, error)
	Update(ctx context.Context, t *model.Tienda) error
}

type tiendaRepo struct{ db *gorm.DB }

func NewTiendaRepository(db *gorm.DB) TiendaRepository { return &tiendaRepo{db: db} }

func (r *tiendaRepo) Create(ctx context.Context, t *model.Tienda) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tiendaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Tienda, error) {
	var t model.Tienda
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *tiendaRepo) FindBySlug(ctx context.Context, slug string) (*model.Tienda, error) {
	var t model.Tienda
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&t).Error
	return &t, err
}

func (r *tiendaRepo) List(ctx context.Context) ([]model.Tienda, error) {
	var tiendas []model.Tienda
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tiendas).Error
	return tiendas, err
}

func (r *tiendaRepo) Update(ctx context.Context, t *model.Tienda) error {
	return r.db.WithContext(ctx).Save(t).Error
}
