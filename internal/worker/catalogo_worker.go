package worker

// catalogo_worker.go
// Processes catalog-extraction jobs from QueueCatalogo.
// Uploads the tienda's PDF to the Extractor Sidecar and inserts the resulting
// productos. Extraction itself (PDF parsing, model prompting) lives entirely
// in the sidecar.

import (
	"context"
	"encoding/json"

	"github.com/Guntherdrb/paratodos-gemini/internal/infra"
	"github.com/Guntherdrb/paratodos-gemini/internal/model"
	"github.com/Guntherdrb/paratodos-gemini/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CatalogoJobPayload is the job envelope sent to QueueCatalogo.
type CatalogoJobPayload struct {
	TiendaID string `json:"tienda_id"`
	Slug     string `json:"slug"`
	PDFPath  string `json:"pdf_path"`
}

// CatalogoWorker turns an uploaded PDF catalog into producto rows.
// A sidecar failure leaves the tienda product-less; the job is parked in the
// DLQ so the upload can be inspected and re-driven manually.
type CatalogoWorker struct {
	extractor      *infra.ExtractorClient
	cb             *infra.CircuitBreaker
	productoRepo   repository.ProductoRepository
	placeholderImg string
}

func NewCatalogoWorker(
	extractor *infra.ExtractorClient,
	cb *infra.CircuitBreaker,
	productoRepo repository.ProductoRepository,
	placeholderImg string,
) *CatalogoWorker {
	return &CatalogoWorker{
		extractor:      extractor,
		cb:             cb,
		productoRepo:   productoRepo,
		placeholderImg: placeholderImg,
	}
}

// Process handles a single catalogo job:
//  1. Parse CatalogoJobPayload from the job envelope
//  2. Call the Extractor Sidecar through the circuit breaker
//  3. Insert one Producto per extracted entry, with the placeholder image
func (w *CatalogoWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload CatalogoJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("catalogo_worker: invalid payload")
		return
	}

	tiendaID, err := uuid.Parse(payload.TiendaID)
	if err != nil {
		log.Error().Str("tienda_id", payload.TiendaID).Msg("catalogo_worker: invalid tienda_id")
		return
	}

	var resp *infra.ExtractorResponse
	err = w.cb.Execute(func() error {
		var execErr error
		resp, execErr = w.extractor.Extraer(ctx, payload.PDFPath)
		return execErr
	})
	if err != nil {
		log.Error().Err(err).Str("slug", payload.Slug).Msg("catalogo_worker: extraction failed")
		SendToDLQ(ctx, rdb, QueueCatalogo, "catalogo", raw, err.Error(), 1)
		return
	}

	productos := make([]model.Producto, 0, len(resp.Productos))
	for _, p := range resp.Productos {
		if p.Nombre == "" {
			continue
		}
		desc := p.Descripcion
		productos = append(productos, model.Producto{
			TiendaID:    tiendaID,
			Nombre:      p.Nombre,
			Descripcion: &desc,
			Precio:      p.Precio,
			Imagen:      w.placeholderImg,
		})
	}
	if err := w.productoRepo.CreateBatch(ctx, productos); err != nil {
		log.Error().Err(err).Str("slug", payload.Slug).Msg("catalogo_worker: failed to insert productos")
		SendToDLQ(ctx, rdb, QueueCatalogo, "catalogo", raw, err.Error(), 1)
		return
	}

	log.Info().
		Str("slug", payload.Slug).
		Int("productos", len(productos)).
		Msg("catalogo_worker: catalog extracted")
}
