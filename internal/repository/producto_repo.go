package repository

import (
	"context"

	"github.com/Guntherdrb/paratodos-gemini/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for productos.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	// CreateBatch inserts all extracted catalog products in one statement.
	CreateBatch(ctx context.Context, productos []model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByTiendaID(ctx context.Context, tiendaID uuid.UUID) ([]model.Producto, error)
	CountByTiendaID(ctx context.Context, tiendaID uuid.UUID) (int64, error)
	Update(ctx context.Context, p *model.Producto) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) CreateBatch(ctx context.Context, productos []model.Producto) error {
	if len(productos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&productos).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Tienda").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) FindByTiendaID(ctx context.Context, tiendaID uuid.UUID) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).Where("tienda_id = ?", tiendaID).Order("nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) CountByTiendaID(ctx context.Context, tiendaID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).Where("tienda_id = ?", tiendaID).Count(&count).Error
	return count, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}
