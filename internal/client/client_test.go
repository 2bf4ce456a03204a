package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func servidor(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

// ── Error taxonomy ───────────────────────────────────────────────────────────

func TestListarTiendas_ServidorInalcanzable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(srv.URL)

	_, err := c.ListarTiendas(context.Background())

	var errRed *ErrorRed
	require.ErrorAs(t, err, &errRed)
}

func TestObtenerTienda_404ConMensajeDelServidor(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":"Tienda no encontrada"}`))
	})

	_, err := c.ObtenerTienda(context.Background(), "no-existe")

	var errHTTP *ErrorHTTP
	require.ErrorAs(t, err, &errHTTP)
	assert.Equal(t, http.StatusNotFound, errHTTP.Status)
	assert.Equal(t, "Tienda no encontrada", err.Error())
}

func TestObtenerTienda_500SinCuerpo_UsaMensajePlantilla(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ObtenerTienda(context.Background(), "acme")

	var errHTTP *ErrorHTTP
	require.ErrorAs(t, err, &errHTTP)
	assert.Equal(t, "error del servidor: 500", err.Error())
}

func TestListarTiendas_CuerpoIlegible(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>proxy caido</html>"))
	})

	_, err := c.ListarTiendas(context.Background())

	var errApp *ErrorAplicacion
	require.ErrorAs(t, err, &errApp)
}

func TestListarTiendas_SuccessFalseEn200(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	})

	_, err := c.ListarTiendas(context.Background())

	var errApp *ErrorAplicacion
	require.ErrorAs(t, err, &errApp)
}

func TestListarTiendas_SinArregloDeTiendas(t *testing.T) {
	// success=true but the expected array is missing entirely.
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})

	_, err := c.ListarTiendas(context.Background())

	var errApp *ErrorAplicacion
	require.ErrorAs(t, err, &errApp)
}

// ── Happy paths ──────────────────────────────────────────────────────────────

func TestListarTiendas_OK(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tiendas/lista", r.URL.Path)
		w.Write([]byte(`{"success":true,"tiendas":[{"id":"1","nombre":"Acme","slug":"acme","logo":"/uploads/acme/logo.png"}]}`))
	})

	tiendas, err := c.ListarTiendas(context.Background())

	require.NoError(t, err)
	require.Len(t, tiendas, 1)
	assert.Equal(t, "acme", tiendas[0].Slug)
}

func TestListarProductos_FilasConTelefono(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/productos/acme", r.URL.Path)
		w.Write([]byte(`{"success":true,"productos":[{"id":"p1","nombre":"Torta","precio":"$10","imagen":"","tienda_id":"t1","telefono":"5551234"}]}`))
	})

	productos, err := c.ListarProductos(context.Background(), "acme")

	require.NoError(t, err)
	require.Len(t, productos, 1)
	assert.Equal(t, "t1", productos[0].TiendaID)
	require.NotNil(t, productos[0].Telefono)
	assert.Equal(t, "5551234", *productos[0].Telefono)
}

func TestCrearLead_RechazoConMensaje(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"producto ajeno a la tienda"}`))
	})

	err := c.CrearLead(context.Background(), "p1", "t1")

	var errApp *ErrorAplicacion
	require.ErrorAs(t, err, &errApp)
	assert.Contains(t, err.Error(), "producto ajeno")
}

func TestResolverURL(t *testing.T) {
	c := New("http://api.local")
	assert.Equal(t, "http://api.local/uploads/acme/logo.png", c.ResolverURL("/uploads/acme/logo.png"))
	assert.Equal(t, "https://cdn.example.com/x.png", c.ResolverURL("https://cdn.example.com/x.png"))
	assert.Equal(t, "", c.ResolverURL(""))
}

// ── FormularioTienda ─────────────────────────────────────────────────────────

func archivoPrueba(nombre string) Archivo {
	return Archivo{Nombre: nombre, Contenido: []byte("contenido")}
}

func TestCrearTienda_NombreCorto_NoEnviaNada(t *testing.T) {
	var peticiones int
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		peticiones++
	})

	form := &FormularioTienda{
		Nombre:   "ab",
		Logo:     archivoPrueba("logo.png"),
		Catalogo: archivoPrueba("catalogo.pdf"),
	}
	_, err := c.CrearTienda(context.Background(), form)

	var errVal *ErrorValidacion
	require.ErrorAs(t, err, &errVal)
	assert.Equal(t, "nombre", errVal.Campo)
	assert.Equal(t, 0, peticiones, "an invalid form must not reach the network")
}

func TestCrearTienda_SinArchivos_PrimerErrorGana(t *testing.T) {
	form := &FormularioTienda{Nombre: "Dulces Ana"}

	err := form.Validar()

	var errVal *ErrorValidacion
	require.ErrorAs(t, err, &errVal)
	assert.Equal(t, "archivos", errVal.Campo)
	assert.Contains(t, errVal.Mensaje, "logo")
}

func TestCrearTienda_SinCatalogo(t *testing.T) {
	form := &FormularioTienda{Nombre: "Dulces Ana", Logo: archivoPrueba("logo.png")}

	err := form.Validar()

	var errVal *ErrorValidacion
	require.ErrorAs(t, err, &errVal)
	assert.Equal(t, "archivos", errVal.Campo)
	assert.Contains(t, errVal.Mensaje, "catalogo")
}

func TestCrearTienda_OK_DevuelveSlug(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tiendas", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Dulces Ana", r.FormValue("nombre"))
		_, _, err := r.FormFile("logo")
		require.NoError(t, err)
		_, _, err = r.FormFile("catalogo")
		require.NoError(t, err)

		w.Write([]byte(`{"success":true,"id":"abc-123","tienda_slug":"dulces-ana"}`))
	})

	form := &FormularioTienda{
		Nombre:   "Dulces Ana",
		Logo:     archivoPrueba("logo.png"),
		Catalogo: archivoPrueba("catalogo.pdf"),
	}
	destino, err := c.CrearTienda(context.Background(), form)

	require.NoError(t, err)
	assert.Equal(t, "dulces-ana", destino)
}

func TestCrearTienda_SinSlug_CaeAlID(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"id":"abc-123"}`))
	})

	form := &FormularioTienda{
		Nombre:   "Dulces Ana",
		Logo:     archivoPrueba("logo.png"),
		Catalogo: archivoPrueba("catalogo.pdf"),
	}
	destino, err := c.CrearTienda(context.Background(), form)

	require.NoError(t, err)
	assert.Equal(t, "abc-123", destino)
}

func TestCrearTienda_ErrorDelServidor(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"Ya existe una tienda con ese nombre."}`))
	})

	form := &FormularioTienda{
		Nombre:   "Dulces Ana",
		Logo:     archivoPrueba("logo.png"),
		Catalogo: archivoPrueba("catalogo.pdf"),
	}
	_, err := c.CrearTienda(context.Background(), form)

	var errHTTP *ErrorHTTP
	require.ErrorAs(t, err, &errHTTP)
	assert.Equal(t, "Ya existe una tienda con ese nombre.", err.Error())
}
