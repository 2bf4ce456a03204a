package contacto

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Origen identifies the call site of a dispatch. The fallback when a tienda
// has no phone number diverges on purpose: product cards silently open the
// numberless compose view, while the product-detail page tells the shopper
// the channel is unavailable and opens nothing.
type Origen int

const (
	OrigenTarjeta Origen = iota // product card in a listing grid
	OrigenDetalle               // full product-detail page
)

// AvisoSinWhatsApp is the explicit notice shown from the detail origin.
const AvisoSinWhatsApp = "El número de WhatsApp de esta tienda no está disponible."

// RegistradorLeads is the persistence half of a dispatch. *client.Client
// satisfies it; tests use recorders.
type RegistradorLeads interface {
	CrearLead(ctx context.Context, productoID, tiendaID string) error
}

// Abridor opens a URL in a new browsing context. The open is fire-and-forget:
// no completion signal comes back to the dispatcher.
type Abridor interface {
	Abrir(url string) error
}

// AbridorFunc adapts a plain function to the Abridor interface.
type AbridorFunc func(url string) error

func (f AbridorFunc) Abrir(url string) error { return f(url) }

// ProductoContacto is the slice of product data a dispatch needs. It is
// assembled by the view controllers from either a listing row (which carries
// the tienda's phone inline) or a product detail (which embeds the tienda).
type ProductoContacto struct {
	ID           string
	TiendaID     string
	Nombre       string
	Precio       string
	Telefono     string
	TiendaNombre string
}

// Resultado reports what a dispatch did. It never carries an error: every
// failure inside the flow is logged and absorbed.
type Resultado struct {
	LeadRegistrado bool
	URL            string // the link handed to the Abridor, empty when none
	Aviso          string // non-empty only for the detail-origin no-phone case
}

// Dispatcher runs the lead-capture and contact-dispatch flow.
// It holds no per-dispatch state; one instance serves any number of products.
type Dispatcher struct {
	leads   RegistradorLeads
	abridor Abridor
}

func NewDispatcher(leads RegistradorLeads, abridor Abridor) *Dispatcher {
	return &Dispatcher{leads: leads, abridor: abridor}
}

// Comprar executes the full flow for one product:
//
//  1. With both IDs present, persist the lead. The write is best-effort:
//     either outcome is logged and neither aborts the flow. A missing ID
//     skips persistence entirely — a malformed product record must never
//     keep a shopper from reaching the merchant.
//  2. Contact dispatch always runs after the write settles. Link
//     construction and link opening fail independently; neither failure
//     reaches the caller.
func (d *Dispatcher) Comprar(ctx context.Context, p ProductoContacto, origen Origen) Resultado {
	var registrado bool
	if p.ID == "" || p.TiendaID == "" {
		log.Warn().
			Str("producto_id", p.ID).
			Str("tienda_id", p.TiendaID).
			Msg("contacto: faltan datos para registrar el lead")
	} else if err := d.leads.CrearLead(ctx, p.ID, p.TiendaID); err != nil {
		log.Error().Err(err).Str("producto_id", p.ID).Msg("contacto: error al registrar lead")
	} else {
		registrado = true
		log.Info().Str("producto_id", p.ID).Str("tienda_id", p.TiendaID).Msg("contacto: lead registrado")
	}

	if SoloDigitos(p.Telefono) == "" && origen == OrigenDetalle {
		return Resultado{LeadRegistrado: registrado, Aviso: AvisoSinWhatsApp}
	}

	mensaje := MensajeInteres(p.Nombre, p.Precio, p.TiendaNombre)
	enlace, err := EnlaceWhatsApp(p.Telefono, mensaje)
	if err != nil {
		log.Error().Err(err).Str("producto_id", p.ID).Msg("contacto: error al construir enlace")
		return Resultado{LeadRegistrado: registrado}
	}

	if err := d.abridor.Abrir(enlace); err != nil {
		log.Error().Err(err).Str("url", enlace).Msg("contacto: error al abrir enlace")
	}
	return Resultado{LeadRegistrado: registrado, URL: enlace}
}
