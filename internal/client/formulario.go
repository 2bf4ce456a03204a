package client

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Guntherdrb/paratodos-gemini/internal/dto"
)

// Archivo is a file selected for upload.
type Archivo struct {
	Nombre    string
	Contenido []byte
}

// FormularioTienda carries the store-creation inputs. Validar gates the
// submission: no request leaves the client while the form is invalid.
type FormularioTienda struct {
	Nombre      string
	Descripcion string
	Logo        Archivo
	Catalogo    Archivo
}

// Validar checks the form and returns at most one error — the first offending
// field category. Each new validation replaces any prior message; messages
// are never accumulated.
func (f *FormularioTienda) Validar() error {
	if len(strings.TrimSpace(f.Nombre)) < 3 {
		return &ErrorValidacion{
			Campo:   "nombre",
			Mensaje: "El nombre de la tienda debe tener al menos 3 caracteres.",
		}
	}
	if f.Logo.Nombre == "" || len(f.Logo.Contenido) == 0 {
		return &ErrorValidacion{
			Campo:   "archivos",
			Mensaje: "Debes seleccionar un logo para la tienda.",
		}
	}
	if f.Catalogo.Nombre == "" || len(f.Catalogo.Contenido) == 0 {
		return &ErrorValidacion{
			Campo:   "archivos",
			Mensaje: "Debes seleccionar un catalogo en PDF.",
		}
	}
	return nil
}

// CrearTienda validates locally, submits the multipart form and returns the
// redirect target: the server's slug, or its id when no slug came back.
func (c *Client) CrearTienda(ctx context.Context, f *FormularioTienda) (string, error) {
	if err := f.Validar(); err != nil {
		return "", err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("nombre", f.Nombre); err != nil {
		return "", &ErrorAplicacion{Motivo: "no se pudo armar el formulario: " + err.Error()}
	}
	if f.Descripcion != "" {
		if err := mw.WriteField("descripcion", f.Descripcion); err != nil {
			return "", &ErrorAplicacion{Motivo: "no se pudo armar el formulario: " + err.Error()}
		}
	}
	for _, file := range []struct {
		campo string
		a     Archivo
	}{
		{"logo", f.Logo},
		{"catalogo", f.Catalogo},
	} {
		part, err := mw.CreateFormFile(file.campo, file.a.Nombre)
		if err != nil {
			return "", &ErrorAplicacion{Motivo: "no se pudo armar el formulario: " + err.Error()}
		}
		if _, err := part.Write(file.a.Contenido); err != nil {
			return "", &ErrorAplicacion{Motivo: "no se pudo armar el formulario: " + err.Error()}
		}
	}
	if err := mw.Close(); err != nil {
		return "", &ErrorAplicacion{Motivo: "no se pudo armar el formulario: " + err.Error()}
	}

	var resp dto.TiendaCreadaResponse
	if err := c.fetch(ctx, http.MethodPost, "/api/tiendas", &body, mw.FormDataContentType(), &resp); err != nil {
		return "", err
	}

	if resp.TiendaSlug != "" {
		return resp.TiendaSlug, nil
	}
	return resp.ID, nil
}
