package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/Guntherdrb/paratodos-gemini/internal/dto"
	"github.com/Guntherdrb/paratodos-gemini/internal/infra"
	"github.com/Guntherdrb/paratodos-gemini/internal/model"
	"github.com/Guntherdrb/paratodos-gemini/internal/repository"
	"github.com/Guntherdrb/paratodos-gemini/internal/worker"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrTiendaNoEncontrada = errors.New("tienda no encontrada")
	ErrNombreDuplicado    = errors.New("ya existe una tienda con ese nombre")
)

// TiendaService defines business operations for tiendas.
type TiendaService interface {
	Crear(ctx context.Context, form dto.CrearTiendaForm, logo, catalogo *multipart.FileHeader) (dto.TiendaCreadaResponse, error)
	ObtenerPorSlug(ctx context.Context, slug string) (dto.TiendaResponse, error)
	Listar(ctx context.Context) ([]dto.TiendaResumen, error)
}

type tiendaService struct {
	repo       repository.TiendaRepository
	storage    *infra.Storage
	dispatcher *worker.Dispatcher
}

func NewTiendaService(repo repository.TiendaRepository, storage *infra.Storage, dispatcher *worker.Dispatcher) TiendaService {
	return &tiendaService{repo: repo, storage: storage, dispatcher: dispatcher}
}

// Slugify derives the public storefront address from the tienda name.
// Once assigned the slug never changes.
func Slugify(nombre string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(nombre)), " ", "-")
}

func mapTienda(t model.Tienda) dto.TiendaResponse {
	return dto.TiendaResponse{
		ID:          t.ID.String(),
		Nombre:      t.Nombre,
		Slug:        t.Slug,
		Descripcion: t.Descripcion,
		Telefono:    t.Telefono,
		Instagram:   t.Instagram,
		Color:       t.Color,
		LogoURL:     uploadURL(t.Slug, t.Logo),
		CatalogoURL: uploadURL(t.Slug, t.Catalogo),
	}
}

// uploadURL builds the server-relative asset path clients resolve against the
// API host. Empty filenames yield an empty URL, never "/uploads/slug/".
func uploadURL(slug, filename string) string {
	if filename == "" {
		return ""
	}
	return fmt.Sprintf("/uploads/%s/%s", slug, filename)
}

func (s *tiendaService) Crear(ctx context.Context, form dto.CrearTiendaForm, logo, catalogo *multipart.FileHeader) (dto.TiendaCreadaResponse, error) {
	slug := Slugify(form.Nombre)

	existing, err := s.repo.FindBySlug(ctx, slug)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.TiendaCreadaResponse{}, err
	}
	if err == nil && existing != nil {
		return dto.TiendaCreadaResponse{}, ErrNombreDuplicado
	}

	logoName, err := s.storage.Save(slug, logo)
	if err != nil {
		return dto.TiendaCreadaResponse{}, fmt.Errorf("guardar logo: %w", err)
	}
	catalogoName, err := s.storage.Save(slug, catalogo)
	if err != nil {
		return dto.TiendaCreadaResponse{}, fmt.Errorf("guardar catalogo: %w", err)
	}

	t := &model.Tienda{
		Nombre:      strings.TrimSpace(form.Nombre),
		Slug:        slug,
		Descripcion: form.Descripcion,
		Responsable: form.Responsable,
		Email:       form.Email,
		Telefono:    form.Telefono,
		Instagram:   form.Instagram,
		Color:       form.Color,
		Logo:        logoName,
		Catalogo:    catalogoName,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return dto.TiendaCreadaResponse{}, err
	}

	// Catalog extraction runs async: the tienda is usable immediately and the
	// productos show up once the sidecar finishes. An enqueue failure only
	// loses the extraction, never the tienda.
	job := worker.CatalogoJobPayload{
		TiendaID: t.ID.String(),
		Slug:     slug,
		PDFPath:  s.storage.Path(slug, catalogoName),
	}
	if err := s.dispatcher.EnqueueCatalogo(ctx, job); err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("tienda_service: failed to enqueue catalog extraction")
	}

	return dto.TiendaCreadaResponse{Success: true, ID: t.ID.String(), TiendaSlug: slug}, nil
}

func (s *tiendaService) ObtenerPorSlug(ctx context.Context, slug string) (dto.TiendaResponse, error) {
	t, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TiendaResponse{}, ErrTiendaNoEncontrada
		}
		return dto.TiendaResponse{}, err
	}
	return mapTienda(*t), nil
}

func (s *tiendaService) Listar(ctx context.Context) ([]dto.TiendaResumen, error) {
	tiendas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.TiendaResumen, 0, len(tiendas))
	for _, t := range tiendas {
		result = append(result, dto.TiendaResumen{
			ID:     t.ID.String(),
			Nombre: t.Nombre,
			Slug:   t.Slug,
			Logo:   uploadURL(t.Slug, t.Logo),
		})
	}
	return result, nil
}
