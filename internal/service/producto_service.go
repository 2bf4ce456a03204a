package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/Guntherdrb/paratodos-gemini/internal/dto"
	"github.com/Guntherdrb/paratodos-gemini/internal/infra"
	"github.com/Guntherdrb/paratodos-gemini/internal/model"
	"github.com/Guntherdrb/paratodos-gemini/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProductoNoEncontrado = errors.New("producto no encontrado")

// ProductoService defines business operations for productos.
type ProductoService interface {
	ListarPorSlug(ctx context.Context, slug string) ([]dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (dto.ProductoDetalle, error)
	Crear(ctx context.Context, form dto.CrearProductoForm, imagen *multipart.FileHeader) (dto.ProductoResponse, error)
}

type productoService struct {
	repo       repository.ProductoRepository
	tiendaRepo repository.TiendaRepository
	storage    *infra.Storage
}

func NewProductoService(repo repository.ProductoRepository, tiendaRepo repository.TiendaRepository, storage *infra.Storage) ProductoService {
	return &productoService{repo: repo, tiendaRepo: tiendaRepo, storage: storage}
}

// imagenURL resolves the stored image reference: extracted products carry an
// absolute placeholder URL, manual uploads a filename under the tienda folder.
func imagenURL(slug, imagen string) string {
	if imagen == "" {
		return ""
	}
	if strings.HasPrefix(imagen, "http") {
		return imagen
	}
	return uploadURL(slug, imagen)
}

func (s *productoService) ListarPorSlug(ctx context.Context, slug string) ([]dto.ProductoResponse, error) {
	tienda, err := s.tiendaRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTiendaNoEncontrada
		}
		return nil, err
	}

	productos, err := s.repo.FindByTiendaID(ctx, tienda.ID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		result = append(result, dto.ProductoResponse{
			ID:          p.ID.String(),
			Nombre:      p.Nombre,
			Descripcion: p.Descripcion,
			Precio:      p.Precio,
			Imagen:      imagenURL(slug, p.Imagen),
			TiendaID:    p.TiendaID.String(),
			// The card context builds the WhatsApp link from this field
			// without fetching the tienda.
			Telefono: tienda.Telefono,
		})
	}
	return result, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (dto.ProductoDetalle, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProductoDetalle{}, ErrProductoNoEncontrado
		}
		return dto.ProductoDetalle{}, err
	}

	detalle := dto.ProductoDetalle{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
	}
	if p.Tienda != nil {
		detalle.Imagen = imagenURL(p.Tienda.Slug, p.Imagen)
		detalle.Tienda = dto.TiendaEmbebida{
			ID:        p.Tienda.ID.String(),
			Nombre:    p.Tienda.Nombre,
			Slug:      p.Tienda.Slug,
			Instagram: p.Tienda.Instagram,
			Telefono:  p.Tienda.Telefono,
		}
	}
	return detalle, nil
}

func (s *productoService) Crear(ctx context.Context, form dto.CrearProductoForm, imagen *multipart.FileHeader) (dto.ProductoResponse, error) {
	tienda, err := s.tiendaRepo.FindBySlug(ctx, form.Slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProductoResponse{}, ErrTiendaNoEncontrada
		}
		return dto.ProductoResponse{}, err
	}

	var imagenName string
	if imagen != nil {
		imagenName, err = s.storage.Save(form.Slug, imagen)
		if err != nil {
			return dto.ProductoResponse{}, err
		}
	}

	p := &model.Producto{
		TiendaID:    tienda.ID,
		Nombre:      form.Nombre,
		Descripcion: form.Descripcion,
		Precio:      form.Precio,
		Imagen:      imagenName,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return dto.ProductoResponse{}, err
	}

	return dto.ProductoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Imagen:      imagenURL(form.Slug, p.Imagen),
		TiendaID:    p.TiendaID.String(),
		Telefono:    tienda.Telefono,
	}, nil
}
