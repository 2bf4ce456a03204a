package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Guntherdrb/paratodos-gemini/internal/dto"
	"github.com/Guntherdrb/paratodos-gemini/internal/model"
	"github.com/Guntherdrb/paratodos-gemini/internal/repository"
	"github.com/Guntherdrb/paratodos-gemini/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrLeadAjeno = errors.New("el producto no pertenece a la tienda especificada")

// leadCountTTL bounds dashboard staleness after a new lead arrives.
const leadCountTTL = 30 * time.Second

// LeadService defines business operations for leads.
type LeadService interface {
	Registrar(ctx context.Context, req dto.CrearLeadRequest) (dto.LeadCreadoResponse, error)
	ContarPorSlug(ctx context.Context, slug string) (int64, error)
}

type leadService struct {
	repo         repository.LeadRepository
	productoRepo repository.ProductoRepository
	tiendaRepo   repository.TiendaRepository
	rdb          *redis.Client
	dispatcher   *worker.Dispatcher
}

func NewLeadService(
	repo repository.LeadRepository,
	productoRepo repository.ProductoRepository,
	tiendaRepo repository.TiendaRepository,
	rdb *redis.Client,
	dispatcher *worker.Dispatcher,
) LeadService {
	return &leadService{
		repo:         repo,
		productoRepo: productoRepo,
		tiendaRepo:   tiendaRepo,
		rdb:          rdb,
		dispatcher:   dispatcher,
	}
}

func leadCountKey(slug string) string { return "leads:count:" + slug }

func (s *leadService) Registrar(ctx context.Context, req dto.CrearLeadRequest) (dto.LeadCreadoResponse, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return dto.LeadCreadoResponse{}, ErrProductoNoEncontrado
	}
	tiendaID, err := uuid.Parse(req.TiendaID)
	if err != nil {
		return dto.LeadCreadoResponse{}, ErrTiendaNoEncontrada
	}

	producto, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LeadCreadoResponse{}, ErrProductoNoEncontrado
		}
		return dto.LeadCreadoResponse{}, err
	}
	tienda, err := s.tiendaRepo.FindByID(ctx, tiendaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LeadCreadoResponse{}, ErrTiendaNoEncontrada
		}
		return dto.LeadCreadoResponse{}, err
	}
	if producto.TiendaID != tienda.ID {
		return dto.LeadCreadoResponse{}, ErrLeadAjeno
	}

	l := &model.Lead{ProductoID: productoID, TiendaID: tiendaID, Estado: "pendiente"}
	if err := s.repo.Create(ctx, l); err != nil {
		return dto.LeadCreadoResponse{}, err
	}

	// The cached count is stale now; drop it so the dashboard picks up the
	// new lead on its next fetch.
	if err := s.rdb.Del(ctx, leadCountKey(tienda.Slug)).Err(); err != nil {
		log.Warn().Err(err).Str("slug", tienda.Slug).Msg("lead_service: failed to invalidate count cache")
	}

	// Merchant notification is best-effort: the lead is already durable.
	if tienda.Email != nil && *tienda.Email != "" {
		job := worker.EmailJobPayload{
			ToEmail: *tienda.Email,
			Subject: fmt.Sprintf("Nuevo interesado en %s", producto.Nombre),
			Body: fmt.Sprintf(
				"Un comprador mostró interés en el producto %q de tu tienda %s.",
				producto.Nombre, tienda.Nombre),
		}
		if err := s.dispatcher.EnqueueEmail(ctx, job); err != nil {
			log.Error().Err(err).Str("slug", tienda.Slug).Msg("lead_service: failed to enqueue email")
		}
	}

	return dto.LeadCreadoResponse{Success: true, LeadID: l.ID.String()}, nil
}

func (s *leadService) ContarPorSlug(ctx context.Context, slug string) (int64, error) {
	tienda, err := s.tiendaRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrTiendaNoEncontrada
		}
		return 0, err
	}

	if cached, err := s.rdb.Get(ctx, leadCountKey(slug)).Result(); err == nil {
		if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return count, nil
		}
	}

	count, err := s.repo.CountByTiendaID(ctx, tienda.ID)
	if err != nil {
		return 0, err
	}
	if err := s.rdb.Set(ctx, leadCountKey(slug), count, leadCountTTL).Err(); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("lead_service: failed to cache count")
	}
	return count, nil
}
