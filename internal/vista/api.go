package vista

import (
	"context"

	"github.com/Guntherdrb/paratodos-gemini/internal/dto"
)

// API is the slice of the storefront client the views consume.
// *client.Client satisfies it; tests plug in stubs with scripted outcomes.
type API interface {
	ListarTiendas(ctx context.Context) ([]dto.TiendaResumen, error)
	ObtenerTienda(ctx context.Context, slug string) (dto.TiendaResponse, error)
	ListarProductos(ctx context.Context, slug string) ([]dto.ProductoResponse, error)
	ObtenerProducto(ctx context.Context, id string) (dto.ProductoDetalle, error)
	ContarLeads(ctx context.Context, slug string) (int64, error)
}
