package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearProductoForm is bound from the multipart fields of POST /api/crear-producto.
type CrearProductoForm struct {
	Nombre      string  `form:"nombre"      validate:"required,min=1,max=120"`
	Descripcion *string `form:"descripcion"`
	Precio      string  `form:"precio"`
	Slug        string  `form:"slug"        validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ProductoResponse is the per-tienda listing shape (GET /api/productos/{slug}).
// TiendaID and Telefono ride along on every row so that product cards can
// dispatch a lead and build the WhatsApp link without a second fetch.
type ProductoResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Precio      string  `json:"precio"`
	Imagen      string  `json:"imagen"`
	TiendaID    string  `json:"tienda_id"`
	Telefono    *string `json:"telefono"`
}

// TiendaEmbebida is the tienda summary embedded in a product detail.
type TiendaEmbebida struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Slug      string  `json:"slug"`
	Instagram *string `json:"instagram"`
	Telefono  *string `json:"telefono"`
}

// ProductoDetalle is the single-product shape (GET /api/producto/{id}).
type ProductoDetalle struct {
	ID          string         `json:"id"`
	Nombre      string         `json:"nombre"`
	Descripcion *string        `json:"descripcion"`
	Precio      string         `json:"precio"`
	Imagen      string         `json:"imagen"`
	Tienda      TiendaEmbebida `json:"tienda"`
}

// ─── Envelopes ───────────────────────────────────────────────────────────────

type ListaProductosResponse struct {
	Success   bool               `json:"success"`
	Productos []ProductoResponse `json:"productos"`
}

type ObtenerProductoResponse struct {
	Success  bool            `json:"success"`
	Producto ProductoDetalle `json:"producto"`
}
