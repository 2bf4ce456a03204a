package vista

import (
	"context"
	"sync"

	"github.com/Guntherdrb/paratodos-gemini/internal/contacto"
	"github.com/Guntherdrb/paratodos-gemini/internal/dto"

	"github.com/rs/zerolog/log"
)

// ProductosTienda drives the merchant's product-management listing.
// Unlike the public storefront, here the listing itself is the required
// resource: without it there is nothing to manage.
type ProductosTienda struct {
	api  API
	slug string

	mu      sync.Mutex
	version int
	estado  Estado[[]dto.ProductoResponse]
}

func NewProductosTienda(api API, slug string) *ProductosTienda {
	return &ProductosTienda{api: api, slug: slug, estado: Cargando[[]dto.ProductoResponse]()}
}

func (v *ProductosTienda) Cargar(ctx context.Context) {
	v.mu.Lock()
	v.version++
	version := v.version
	v.estado = Cargando[[]dto.ProductoResponse]()
	v.mu.Unlock()

	productos, err := v.api.ListarProductos(ctx, v.slug)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.version != version {
		return
	}
	if err != nil {
		v.estado = Fallido[[]dto.ProductoResponse](err.Error())
		return
	}
	v.estado = Listo(productos)
}

func (v *ProductosTienda) Estado() Estado[[]dto.ProductoResponse] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.estado
}

// Comprar dispatches a lead from a card in the management grid.
func (v *ProductosTienda) Comprar(ctx context.Context, d *contacto.Dispatcher, productoID string) contacto.Resultado {
	estado := v.Estado()
	for _, p := range estado.Datos {
		if p.ID == productoID {
			return d.Comprar(ctx, productoDeTarjeta(p), contacto.OrigenTarjeta)
		}
	}
	log.Warn().Str("producto_id", productoID).Str("slug", v.slug).Msg("productos_tienda: producto desconocido")
	return d.Comprar(ctx, contacto.ProductoContacto{}, contacto.OrigenTarjeta)
}
