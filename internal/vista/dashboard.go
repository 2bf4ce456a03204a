package vista

import (
	"context"
	"sync"

	"github.com/Guntherdrb/paratodos-gemini/internal/dto"

	"github.com/rs/zerolog/log"
)

// Dashboard drives the merchant dashboard for one slug.
//
// Its three resources — tienda info, lead count, product count — are fully
// independent: each fetch updates only its own slice of state on completion,
// in whatever order the responses arrive, and one failure never blocks or
// clears another's already-resolved value.
type Dashboard struct {
	api  API
	slug string

	mu        sync.Mutex
	version   int
	tienda    Estado[dto.TiendaResponse]
	leads     Estado[int64]
	productos Estado[int64]
}

func NewDashboard(api API, slug string) *Dashboard {
	return &Dashboard{
		api:       api,
		slug:      slug,
		tienda:    Cargando[dto.TiendaResponse](),
		leads:     Cargando[int64](),
		productos: Cargando[int64](),
	}
}

// Cargar issues the three fetches concurrently and returns once all have
// settled. Each slice of state is visible as soon as its own fetch resolves,
// so a caller polling from another goroutine sees partial progress.
func (d *Dashboard) Cargar(ctx context.Context) {
	d.mu.Lock()
	d.version++
	version := d.version
	d.tienda = Cargando[dto.TiendaResponse]()
	d.leads = Cargando[int64]()
	d.productos = Cargando[int64]()
	d.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		tienda, err := d.api.ObtenerTienda(ctx, d.slug)
		d.aplicar(version, func() {
			if err != nil {
				d.tienda = Fallido[dto.TiendaResponse](err.Error())
				return
			}
			d.tienda = Listo(tienda)
		})
	}()

	go func() {
		defer wg.Done()
		count, err := d.api.ContarLeads(ctx, d.slug)
		d.aplicar(version, func() {
			if err != nil {
				log.Warn().Err(err).Str("slug", d.slug).Msg("dashboard: error al cargar leads")
				d.leads = Fallido[int64](err.Error())
				return
			}
			d.leads = Listo(count)
		})
	}()

	go func() {
		defer wg.Done()
		productos, err := d.api.ListarProductos(ctx, d.slug)
		d.aplicar(version, func() {
			if err != nil {
				log.Warn().Err(err).Str("slug", d.slug).Msg("dashboard: error al cargar productos")
				d.productos = Fallido[int64](err.Error())
				return
			}
			d.productos = Listo(int64(len(productos)))
		})
	}()

	wg.Wait()
}

// aplicar runs an update under the lock unless the load was superseded.
func (d *Dashboard) aplicar(version int, update func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.version != version {
		return
	}
	update()
}

func (d *Dashboard) Tienda() Estado[dto.TiendaResponse] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tienda
}

func (d *Dashboard) Leads() Estado[int64] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.leads
}

func (d *Dashboard) Productos() Estado[int64] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.productos
}
