package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearTiendaForm is bound from the multipart fields of POST /api/tiendas.
// The logo and catalogo files are read separately from the multipart form.
type CrearTiendaForm struct {
	Nombre      string  `form:"nombre"      validate:"required,min=3,max=100"`
	Descripcion *string `form:"descripcion" validate:"omitempty,max=500"`
	Responsable *string `form:"responsable"`
	Email       *string `form:"email"       validate:"omitempty,email"`
	Telefono    *string `form:"telefono"`
	Instagram   *string `form:"instagram"`
	Color       *string `form:"color"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// TiendaResumen is the marketplace card shape (GET /api/tiendas/lista).
type TiendaResumen struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Slug   string `json:"slug"`
	Logo   string `json:"logo"`
}

// TiendaResponse is the full public storefront shape (GET /api/tienda/{slug}).
// LogoURL and CatalogoURL are server-relative paths; clients resolve them
// against the API host.
type TiendaResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Slug        string  `json:"slug"`
	Descripcion *string `json:"descripcion"`
	Telefono    *string `json:"telefono"`
	Instagram   *string `json:"instagram"`
	Color       *string `json:"color"`
	LogoURL     string  `json:"logo_url"`
	CatalogoURL string  `json:"catalogo_url"`
}

// ─── Envelopes ───────────────────────────────────────────────────────────────

type ListaTiendasResponse struct {
	Success bool            `json:"success"`
	Tiendas []TiendaResumen `json:"tiendas"`
}

type ObtenerTiendaResponse struct {
	Success bool           `json:"success"`
	Tienda  TiendaResponse `json:"tienda"`
}

// TiendaCreadaResponse is returned by POST /api/tiendas. Clients redirect to
// TiendaSlug, falling back to ID when the slug is absent.
type TiendaCreadaResponse struct {
	Success    bool   `json:"success"`
	ID         string `json:"id"`
	TiendaSlug string `json:"tienda_slug"`
}
