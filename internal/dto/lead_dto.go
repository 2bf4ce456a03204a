package dto

// CrearLeadRequest is the body of POST /api/leads. Both IDs are required;
// the server additionally checks that the product belongs to the tienda.
type CrearLeadRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	TiendaID   string `json:"tienda_id"   validate:"required,uuid"`
}

type LeadCreadoResponse struct {
	Success bool   `json:"success"`
	LeadID  string `json:"lead_id"`
}

// ContadorLeadsResponse is the dashboard count shape (GET /api/leads/{slug}).
type ContadorLeadsResponse struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
}
