package vista

import (
	"context"
	"sync"

	"github.com/Guntherdrb/paratodos-gemini/internal/contacto"
	"github.com/Guntherdrb/paratodos-gemini/internal/dto"
)

// VistaProducto drives the product-detail page for one product id.
// The detail is a required resource; there is nothing to degrade to.
type VistaProducto struct {
	api API
	id  string

	mu      sync.Mutex
	version int
	estado  Estado[dto.ProductoDetalle]
}

func NewVistaProducto(api API, id string) *VistaProducto {
	return &VistaProducto{api: api, id: id, estado: Cargando[dto.ProductoDetalle]()}
}

func (v *VistaProducto) Cargar(ctx context.Context) {
	v.mu.Lock()
	v.version++
	version := v.version
	v.estado = Cargando[dto.ProductoDetalle]()
	v.mu.Unlock()

	producto, err := v.api.ObtenerProducto(ctx, v.id)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.version != version {
		return
	}
	if err != nil {
		v.estado = Fallido[dto.ProductoDetalle](err.Error())
		return
	}
	v.estado = Listo(producto)
}

func (v *VistaProducto) Estado() Estado[dto.ProductoDetalle] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.estado
}

// Comprar dispatches a lead from the detail page. This origin demands the
// explicit "no disponible" notice when the tienda has no phone — it never
// emits a numberless link.
func (v *VistaProducto) Comprar(ctx context.Context, d *contacto.Dispatcher) contacto.Resultado {
	estado := v.Estado()
	p := estado.Datos
	pc := contacto.ProductoContacto{
		ID:           p.ID,
		TiendaID:     p.Tienda.ID,
		Nombre:       p.Nombre,
		Precio:       p.Precio,
		TiendaNombre: p.Tienda.Nombre,
	}
	if p.Tienda.Telefono != nil {
		pc.Telefono = *p.Tienda.Telefono
	}
	return d.Comprar(ctx, pc, contacto.OrigenDetalle)
}
