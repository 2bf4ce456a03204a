// Package client is the storefront's HTTP client for the ParaTodos API.
// Every call is a single attempt with no retry and no built-in timeout:
// cancellation policy belongs to the caller's context.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Guntherdrb/paratodos-gemini/internal/dto"

	"github.com/rs/zerolog/log"
)

// Client wraps one http.Client + API base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// NewWithHTTPClient allows injecting a custom transport (tests, proxies).
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, httpClient: hc}
}

// ResolverURL resolves a server-relative asset path (logo_url, imagen)
// against the API host. Absolute URLs pass through untouched.
func (c *Client) ResolverURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http") {
		return path
	}
	return c.baseURL + path
}

// fetch performs one request and decodes the JSON envelope into out.
// Failure taxonomy: transport → ErrorRed, non-2xx → ErrorHTTP (carrying the
// server's message when decodable), undecodable 2xx body → ErrorAplicacion.
// The per-operation wrappers add the success-flag and shape checks.
func (c *Client) fetch(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &ErrorAplicacion{Motivo: "peticion invalida: " + err.Error()}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ErrorRed{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &ErrorHTTP{Status: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			httpErr.Mensaje = envelope.Error
		}
		return httpErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ErrorAplicacion{Motivo: "respuesta ilegible: " + err.Error()}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.fetch(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return &ErrorAplicacion{Motivo: "cuerpo invalido: " + err.Error()}
	}
	return c.fetch(ctx, http.MethodPost, path, bytes.NewReader(data), "application/json", out)
}

// ── Typed operations ─────────────────────────────────────────────────────────

// ListarTiendas fetches the marketplace listing.
func (c *Client) ListarTiendas(ctx context.Context) ([]dto.TiendaResumen, error) {
	var env dto.ListaTiendasResponse
	if err := c.get(ctx, "/api/tiendas/lista", &env); err != nil {
		return nil, err
	}
	if !env.Success || env.Tiendas == nil {
		return nil, &ErrorAplicacion{Motivo: "no se pudieron cargar las tiendas"}
	}
	return env.Tiendas, nil
}

// ObtenerTienda fetches one storefront by slug.
func (c *Client) ObtenerTienda(ctx context.Context, slug string) (dto.TiendaResponse, error) {
	var env dto.ObtenerTiendaResponse
	if err := c.get(ctx, "/api/tienda/"+slug, &env); err != nil {
		return dto.TiendaResponse{}, err
	}
	if !env.Success {
		return dto.TiendaResponse{}, &ErrorAplicacion{Motivo: "error al cargar datos de la tienda"}
	}
	return env.Tienda, nil
}

// ListarProductos fetches the product listing of a tienda.
func (c *Client) ListarProductos(ctx context.Context, slug string) ([]dto.ProductoResponse, error) {
	var env dto.ListaProductosResponse
	if err := c.get(ctx, "/api/productos/"+slug, &env); err != nil {
		return nil, err
	}
	if !env.Success || env.Productos == nil {
		return nil, &ErrorAplicacion{Motivo: "productos no disponibles"}
	}
	return env.Productos, nil
}

// ObtenerProducto fetches one product with its tienda embedded.
func (c *Client) ObtenerProducto(ctx context.Context, id string) (dto.ProductoDetalle, error) {
	var env dto.ObtenerProductoResponse
	if err := c.get(ctx, "/api/producto/"+id, &env); err != nil {
		return dto.ProductoDetalle{}, err
	}
	if !env.Success {
		return dto.ProductoDetalle{}, &ErrorAplicacion{Motivo: "producto no encontrado"}
	}
	return env.Producto, nil
}

// ContarLeads fetches the dashboard lead counter of a tienda.
func (c *Client) ContarLeads(ctx context.Context, slug string) (int64, error) {
	var env dto.ContadorLeadsResponse
	if err := c.get(ctx, "/api/leads/"+slug, &env); err != nil {
		return 0, err
	}
	if !env.Success {
		return 0, &ErrorAplicacion{Motivo: "error al cargar leads"}
	}
	return env.Count, nil
}

// CrearLead records a shopper-interest event. Callers treat this as
// best-effort: the result is logged and never surfaced.
func (c *Client) CrearLead(ctx context.Context, productoID, tiendaID string) error {
	req := dto.CrearLeadRequest{ProductoID: productoID, TiendaID: tiendaID}
	var env struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.postJSON(ctx, "/api/leads", req, &env); err != nil {
		return err
	}
	if !env.Success {
		return &ErrorAplicacion{Motivo: fmt.Sprintf("lead rechazado: %s", env.Error)}
	}
	log.Debug().Str("producto_id", productoID).Str("tienda_id", tiendaID).Msg("lead registrado")
	return nil
}
