//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests for ParaTodos using real Postgres + Redis via
// testcontainers. Run with: go test -tags integration ./tests/e2e/... -v
//
// These tests:
//   T-E2E-1: Tienda creation cycle (multipart upload → storefront → marketplace listing)
//   T-E2E-2: Duplicate tienda name rejected
//   T-E2E-3: Lead cycle (crear producto → lead → counter) with co-ownership check
//   T-E2E-4: Product listing rows carry tienda_id + telefono; detail embeds the tienda
//   T-E2E-5: Uploaded logo served back under /uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Guntherdrb/paratodos-gemini/internal/config"
	"github.com/Guntherdrb/paratodos-gemini/internal/infra"
	"github.com/Guntherdrb/paratodos-gemini/internal/router"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

// catalogoPDF renders a small but real PDF so the upload pipeline sees an
// actual document, not a fake byte blob.
func catalogoPDF(t *testing.T) []byte {
	t.Helper()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Catalogo de prueba")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(40, 10, "Torta de chocolate - $10")

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

// crearTiendaBody builds the multipart body of POST /api/tiendas.
func crearTiendaBody(t *testing.T, nombre, telefono string, catalogo []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("nombre", nombre))
	require.NoError(t, w.WriteField("descripcion", "Tienda de prueba e2e"))
	if telefono != "" {
		require.NoError(t, w.WriteField("telefono", telefono))
	}

	logo, err := w.CreateFormFile("logo", "logo.png")
	require.NoError(t, err)
	_, err = logo.Write([]byte("\x89PNG\r\n\x1a\nfake"))
	require.NoError(t, err)

	cat, err := w.CreateFormFile("catalogo", "catalogo.pdf")
	require.NoError(t, err)
	_, err = cat.Write(catalogo)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("paratodos_test"),
		tcPostgres.WithUsername("paratodos"),
		tcPostgres.WithPassword("paratodos"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:              5000,
		Env:               "test",
		WorkerPoolSize:    1,
		DatabaseURL:       pgURL,
		RedisURL:          rdURL,
		UploadDir:         t.TempDir(),
		PublicBaseURL:     "http://localhost:5000",
		ExtractorURL:      "http://localhost:9999", // sidecar absent: extraction jobs land in the DLQ
		PlaceholderImgURL: "https://via.placeholder.com/200",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	storage, err := infra.NewStorage(cfg.UploadDir)
	require.NoError(t, err)

	extractorCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	r := router.New(cfg, db, rdb, storage, extractorCB)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv}
}

// crearTienda drives the full creation endpoint and returns the slug.
func crearTienda(t *testing.T, env *testEnv, nombre, telefono string) string {
	t.Helper()
	body, ct := crearTiendaBody(t, nombre, telefono, catalogoPDF(t))
	resp := do(t, env.server, "POST", "/api/tiendas", body, ct)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Success    bool   `json:"success"`
		ID         string `json:"id"`
		TiendaSlug string `json:"tienda_slug"`
	}
	decodeJSON(t, resp, &created)
	require.True(t, created.Success)
	require.NotEmpty(t, created.TiendaSlug)
	return created.TiendaSlug
}

// crearProducto adds a product to a tienda via the management endpoint.
func crearProducto(t *testing.T, env *testEnv, slug, nombre, precio string) string {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("nombre", nombre))
	require.NoError(t, w.WriteField("precio", precio))
	require.NoError(t, w.WriteField("slug", slug))
	require.NoError(t, w.Close())

	resp := do(t, env.server, "POST", "/api/crear-producto", &buf, w.FormDataContentType())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Success  bool `json:"success"`
		Producto struct {
			ID       string `json:"id"`
			TiendaID string `json:"tienda_id"`
		} `json:"producto"`
	}
	decodeJSON(t, resp, &created)
	require.True(t, created.Success)
	return created.Producto.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_TiendaCreationCycle(t *testing.T) {
	env := setupTestEnv(t)

	slug := crearTienda(t, env, "Dulces Ana E2E", "+58 412 555 0199")
	assert.Equal(t, "dulces-ana-e2e", slug)

	// Storefront resolves by slug.
	resp := do(t, env.server, "GET", "/api/tienda/"+slug, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var storefront struct {
		Success bool `json:"success"`
		Tienda  struct {
			Nombre  string `json:"nombre"`
			LogoURL string `json:"logo_url"`
		} `json:"tienda"`
	}
	decodeJSON(t, resp, &storefront)
	assert.True(t, storefront.Success)
	assert.Equal(t, "Dulces Ana E2E", storefront.Tienda.Nombre)
	assert.Contains(t, storefront.Tienda.LogoURL, "/uploads/"+slug+"/")

	// Marketplace listing includes the new tienda.
	resp = do(t, env.server, "GET", "/api/tiendas/lista", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lista struct {
		Success bool `json:"success"`
		Tiendas []struct {
			Slug string `json:"slug"`
		} `json:"tiendas"`
	}
	decodeJSON(t, resp, &lista)
	require.True(t, lista.Success)
	slugs := make([]string, 0, len(lista.Tiendas))
	for _, tt := range lista.Tiendas {
		slugs = append(slugs, tt.Slug)
	}
	assert.Contains(t, slugs, slug)

	// Unknown slug is a clean 404 with the error envelope.
	resp = do(t, env.server, "GET", "/api/tienda/no-existe", nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var apiErr struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	decodeJSON(t, resp, &apiErr)
	assert.False(t, apiErr.Success)
	assert.NotEmpty(t, apiErr.Error)
}

func TestE2E_DuplicateTiendaName(t *testing.T) {
	env := setupTestEnv(t)

	crearTienda(t, env, "Crochet Julia", "")

	// Same name modulo case/whitespace maps to the same slug.
	body, ct := crearTiendaBody(t, "  crochet JULIA ", "", catalogoPDF(t))
	resp := do(t, env.server, "POST", "/api/tiendas", body, ct)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var apiErr struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	decodeJSON(t, resp, &apiErr)
	assert.False(t, apiErr.Success)
	assert.Contains(t, apiErr.Error, "Ya existe")
}

func TestE2E_LeadCycle(t *testing.T) {
	env := setupTestEnv(t)

	slug := crearTienda(t, env, "Dulces Ana Leads", "+58 412 555 0199")
	otraSlug := crearTienda(t, env, "Otra Tienda", "")

	productoID := crearProducto(t, env, slug, "Torta de chocolate", "$ 10")

	// Fetch ids for the lead payload from the public listing.
	resp := do(t, env.server, "GET", "/api/productos/"+slug, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listado struct {
		Success   bool `json:"success"`
		Productos []struct {
			ID       string `json:"id"`
			TiendaID string `json:"tienda_id"`
		} `json:"productos"`
	}
	decodeJSON(t, resp, &listado)
	require.True(t, listado.Success)
	require.Len(t, listado.Productos, 1)
	require.Equal(t, productoID, listado.Productos[0].ID)
	tiendaID := listado.Productos[0].TiendaID

	// Counter starts at zero.
	resp = do(t, env.server, "GET", "/api/leads/"+slug, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var contador struct {
		Success bool  `json:"success"`
		Count   int64 `json:"count"`
	}
	decodeJSON(t, resp, &contador)
	assert.Equal(t, int64(0), contador.Count)

	// Register a lead.
	resp = do(t, env.server, "POST", "/api/leads",
		jsonBody(t, map[string]string{"producto_id": productoID, "tienda_id": tiendaID}),
		"application/json")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// The cached counter was invalidated by the write.
	resp = do(t, env.server, "GET", "/api/leads/"+slug, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &contador)
	assert.Equal(t, int64(1), contador.Count)

	// A lead pairing the product with a foreign tienda is rejected and does
	// not count.
	resp = do(t, env.server, "GET", "/api/tienda/"+otraSlug, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var otra struct {
		Tienda struct {
			ID string `json:"id"`
		} `json:"tienda"`
	}
	decodeJSON(t, resp, &otra)

	resp = do(t, env.server, "POST", "/api/leads",
		jsonBody(t, map[string]string{"producto_id": productoID, "tienda_id": otra.Tienda.ID}),
		"application/json")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "GET", "/api/leads/"+slug, nil, "")
	decodeJSON(t, resp, &contador)
	assert.Equal(t, int64(1), contador.Count)
}

func TestE2E_ProductShapes(t *testing.T) {
	env := setupTestEnv(t)

	slug := crearTienda(t, env, "Dulces Ana Shapes", "+58 412 555 0199")
	productoID := crearProducto(t, env, slug, "Brownie", "")

	// Listing rows carry the tienda's phone so cards can build the WhatsApp
	// link without another fetch.
	resp := do(t, env.server, "GET", "/api/productos/"+slug, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listado struct {
		Productos []struct {
			TiendaID string  `json:"tienda_id"`
			Telefono *string `json:"telefono"`
		} `json:"productos"`
	}
	decodeJSON(t, resp, &listado)
	require.Len(t, listado.Productos, 1)
	assert.NotEmpty(t, listado.Productos[0].TiendaID)
	require.NotNil(t, listado.Productos[0].Telefono)
	assert.Equal(t, "+58 412 555 0199", *listado.Productos[0].Telefono)

	// The detail embeds the tienda.
	resp = do(t, env.server, "GET", fmt.Sprintf("/api/producto/%s", productoID), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detalle struct {
		Success  bool `json:"success"`
		Producto struct {
			Nombre string `json:"nombre"`
			Tienda struct {
				Slug     string  `json:"slug"`
				Telefono *string `json:"telefono"`
			} `json:"tienda"`
		} `json:"producto"`
	}
	decodeJSON(t, resp, &detalle)
	assert.True(t, detalle.Success)
	assert.Equal(t, "Brownie", detalle.Producto.Nombre)
	assert.Equal(t, slug, detalle.Producto.Tienda.Slug)
	require.NotNil(t, detalle.Producto.Tienda.Telefono)
}

func TestE2E_UploadsServed(t *testing.T) {
	env := setupTestEnv(t)

	slug := crearTienda(t, env, "Dulces Ana Uploads", "")

	resp := do(t, env.server, "GET", "/api/tienda/"+slug, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var storefront struct {
		Tienda struct {
			LogoURL string `json:"logo_url"`
		} `json:"tienda"`
	}
	decodeJSON(t, resp, &storefront)
	require.NotEmpty(t, storefront.Tienda.LogoURL)

	resp = do(t, env.server, "GET", storefront.Tienda.LogoURL, nil, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	contenido, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(contenido, []byte("\x89PNG")))
}
