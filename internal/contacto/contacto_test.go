package contacto

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubLeads records CrearLead calls and can be primed to fail.
type stubLeads struct {
	llamadas []string
	err      error
}

func (s *stubLeads) CrearLead(_ context.Context, productoID, tiendaID string) error {
	s.llamadas = append(s.llamadas, productoID+"/"+tiendaID)
	return s.err
}

// stubAbridor captures the links it was asked to open.
type stubAbridor struct {
	urls []string
	err  error
}

func (s *stubAbridor) Abrir(url string) error {
	s.urls = append(s.urls, url)
	return s.err
}

func producto() ProductoContacto {
	return ProductoContacto{
		ID:           "p1",
		TiendaID:     "t1",
		Nombre:       "Torta de chocolate",
		Precio:       "$ 12.500",
		Telefono:     "+58 (412) 555-0199",
		TiendaNombre: "Dulces Ana",
	}
}

// ── SoloDigitos / MensajeInteres / EnlaceWhatsApp ────────────────────────────

func TestSoloDigitos(t *testing.T) {
	assert.Equal(t, "15551234567", SoloDigitos("+1 (555) 123-4567"))
	assert.Equal(t, "", SoloDigitos("sin numero"))
	assert.Equal(t, "", SoloDigitos(""))
}

func TestMensajeInteres_PrecioVacio(t *testing.T) {
	m := MensajeInteres("Gorro tejido", "   ", "")
	assert.Contains(t, m, "Precio no disponible")
	assert.NotContains(t, m, "()")
}

func TestMensajeInteres_ConTienda(t *testing.T) {
	m := MensajeInteres("Gorro tejido", "$ 10", "Crochet Julia")
	assert.Contains(t, m, `"Gorro tejido"`)
	assert.Contains(t, m, "($ 10)")
	assert.Contains(t, m, "(Crochet Julia)")
}

func TestEnlaceWhatsApp_ConNumero(t *testing.T) {
	enlace, err := EnlaceWhatsApp("+58 412-555-0199", "hola mundo")
	require.NoError(t, err)

	u, err := url.Parse(enlace)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/584125550199", u.Path)
	assert.Equal(t, "hola mundo", u.Query().Get("text"))
}

func TestEnlaceWhatsApp_SinNumero(t *testing.T) {
	enlace, err := EnlaceWhatsApp("n/a", "hola")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enlace, "https://wa.me/?text="), enlace)
}

// ── Dispatcher ───────────────────────────────────────────────────────────────

func TestComprar_TarjetaSinTelefono_AbreEnlaceSinNumero(t *testing.T) {
	leads := &stubLeads{}
	abridor := &stubAbridor{}
	d := NewDispatcher(leads, abridor)

	p := producto()
	p.Telefono = ""
	r := d.Comprar(context.Background(), p, OrigenTarjeta)

	assert.True(t, r.LeadRegistrado)
	assert.Empty(t, r.Aviso)
	require.Len(t, abridor.urls, 1)
	assert.True(t, strings.HasPrefix(abridor.urls[0], "https://wa.me/?text="), abridor.urls[0])
}

func TestComprar_DetalleSinTelefono_MuestraAviso(t *testing.T) {
	leads := &stubLeads{}
	abridor := &stubAbridor{}
	d := NewDispatcher(leads, abridor)

	p := producto()
	p.Telefono = "---"
	r := d.Comprar(context.Background(), p, OrigenDetalle)

	assert.True(t, r.LeadRegistrado)
	assert.Equal(t, AvisoSinWhatsApp, r.Aviso)
	assert.Empty(t, r.URL)
	assert.Empty(t, abridor.urls, "no opening without a number from the detail")
}

func TestComprar_SinIDs_OmitePersistenciaPeroDespacha(t *testing.T) {
	leads := &stubLeads{}
	abridor := &stubAbridor{}
	d := NewDispatcher(leads, abridor)

	r := d.Comprar(context.Background(), ProductoContacto{Nombre: "Suelto", Telefono: "555"}, OrigenTarjeta)

	assert.False(t, r.LeadRegistrado)
	assert.Empty(t, leads.llamadas)
	require.Len(t, abridor.urls, 1)
	assert.Contains(t, abridor.urls[0], "wa.me/555")
}

func TestComprar_FallaPersistencia_IgualAbre(t *testing.T) {
	leads := &stubLeads{err: errors.New("db caida")}
	abridor := &stubAbridor{}
	d := NewDispatcher(leads, abridor)

	r := d.Comprar(context.Background(), producto(), OrigenTarjeta)

	assert.False(t, r.LeadRegistrado)
	require.Len(t, leads.llamadas, 1)
	require.Len(t, abridor.urls, 1)
	assert.Contains(t, abridor.urls[0], "584125550199")
}

func TestComprar_FallaAbridor_NoPropagaError(t *testing.T) {
	leads := &stubLeads{}
	abridor := &stubAbridor{err: errors.New("popup bloqueado")}
	d := NewDispatcher(leads, abridor)

	r := d.Comprar(context.Background(), producto(), OrigenTarjeta)

	assert.True(t, r.LeadRegistrado)
	assert.NotEmpty(t, r.URL)
}

func TestComprar_MensajeLlevaProductoYPrecio(t *testing.T) {
	abridor := &stubAbridor{}
	d := NewDispatcher(&stubLeads{}, abridor)

	d.Comprar(context.Background(), producto(), OrigenDetalle)

	require.Len(t, abridor.urls, 1)
	u, err := url.Parse(abridor.urls[0])
	require.NoError(t, err)
	texto := u.Query().Get("text")
	assert.Contains(t, texto, `"Torta de chocolate"`)
	assert.Contains(t, texto, "($ 12.500)")
	assert.Contains(t, texto, "(Dulces Ana)")
}
