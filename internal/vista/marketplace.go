package vista

import (
	"context"
	"sync"

	"github.com/Guntherdrb/paratodos-gemini/internal/dto"
)

// Marketplace drives the landing page: the list of all tiendas.
// The listing is the page's only (required) resource.
type Marketplace struct {
	api API

	mu      sync.Mutex
	version int
	estado  Estado[[]dto.TiendaResumen]
}

func NewMarketplace(api API) *Marketplace {
	return &Marketplace{api: api, estado: Cargando[[]dto.TiendaResumen]()}
}

func (m *Marketplace) Cargar(ctx context.Context) {
	m.mu.Lock()
	m.version++
	version := m.version
	m.estado = Cargando[[]dto.TiendaResumen]()
	m.mu.Unlock()

	tiendas, err := m.api.ListarTiendas(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.version != version {
		return
	}
	if err != nil {
		m.estado = Fallido[[]dto.TiendaResumen](err.Error())
		return
	}
	m.estado = Listo(tiendas)
}

func (m *Marketplace) Estado() Estado[[]dto.TiendaResumen] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.estado
}
