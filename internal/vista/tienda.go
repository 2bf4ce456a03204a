package vista

import (
	"context"
	"sync"

	"github.com/Guntherdrb/paratodos-gemini/internal/contacto"
	"github.com/Guntherdrb/paratodos-gemini/internal/dto"

	"github.com/rs/zerolog/log"
)

// DatosTienda is the assembled render data of a storefront page.
type DatosTienda struct {
	Tienda    dto.TiendaResponse
	Productos []dto.ProductoResponse
}

// VistaTienda drives the public storefront page for one slug.
//
// The tienda lookup and the product listing are issued concurrently but sit
// in different failure domains: the tienda is required — its failure fails
// the whole page — while the product listing is optional and degrades to an
// empty grid.
type VistaTienda struct {
	api  API
	slug string

	mu      sync.Mutex
	version int
	estado  Estado[DatosTienda]
}

func NewVistaTienda(api API, slug string) *VistaTienda {
	return &VistaTienda{api: api, slug: slug, estado: Cargando[DatosTienda]()}
}

// Cargar fetches both resources and recomputes the render state.
// Calling it again restarts the page; a result from a superseded load is
// discarded instead of clobbering the newer state.
func (v *VistaTienda) Cargar(ctx context.Context) {
	v.mu.Lock()
	v.version++
	version := v.version
	v.estado = Cargando[DatosTienda]()
	v.mu.Unlock()

	var (
		wg           sync.WaitGroup
		tienda       dto.TiendaResponse
		tiendaErr    error
		productos    []dto.ProductoResponse
		productosErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		tienda, tiendaErr = v.api.ObtenerTienda(ctx, v.slug)
	}()
	go func() {
		defer wg.Done()
		productos, productosErr = v.api.ListarProductos(ctx, v.slug)
	}()
	wg.Wait()

	var estado Estado[DatosTienda]
	switch {
	case tiendaErr != nil:
		estado = Fallido[DatosTienda](tiendaErr.Error())
	default:
		if productosErr != nil {
			// Optional resource: the storefront still renders, just empty.
			log.Warn().Err(productosErr).Str("slug", v.slug).Msg("vista_tienda: productos no disponibles")
			productos = nil
		}
		estado = Listo(DatosTienda{Tienda: tienda, Productos: productos})
	}

	v.mu.Lock()
	if v.version == version {
		v.estado = estado
	}
	v.mu.Unlock()
}

func (v *VistaTienda) Estado() Estado[DatosTienda] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.estado
}

// Comprar dispatches a lead for one product card of the grid. Cards carry
// the tienda's phone inline, so no extra fetch is needed.
func (v *VistaTienda) Comprar(ctx context.Context, d *contacto.Dispatcher, productoID string) contacto.Resultado {
	estado := v.Estado()
	for _, p := range estado.Datos.Productos {
		if p.ID == productoID {
			return d.Comprar(ctx, productoDeTarjeta(p), contacto.OrigenTarjeta)
		}
	}
	// Unknown id: still open the compose view so the shopper reaches someone.
	log.Warn().Str("producto_id", productoID).Str("slug", v.slug).Msg("vista_tienda: producto desconocido")
	return d.Comprar(ctx, contacto.ProductoContacto{}, contacto.OrigenTarjeta)
}

// productoDeTarjeta maps a listing row to the dispatch input.
func productoDeTarjeta(p dto.ProductoResponse) contacto.ProductoContacto {
	pc := contacto.ProductoContacto{
		ID:       p.ID,
		TiendaID: p.TiendaID,
		Nombre:   p.Nombre,
		Precio:   p.Precio,
	}
	if p.Telefono != nil {
		pc.Telefono = *p.Telefono
	}
	return pc
}
