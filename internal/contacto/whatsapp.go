// Package contacto turns a shopper's "me interesa" tap into a durable lead
// and an outbound WhatsApp deep link, tolerating partial failure so that
// neither side ever blocks the other.
package contacto

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var noDigitos = regexp.MustCompile(`\D`)

// SoloDigitos strips every non-digit character from a phone number.
// "+1 (555) 123-4567" → "15551234567".
func SoloDigitos(telefono string) string {
	return noDigitos.ReplaceAllString(telefono, "")
}

// MensajeInteres builds the pre-filled WhatsApp message for a product.
// An empty price gets an explicit placeholder, never an empty parenthesis.
func MensajeInteres(producto, precio, tienda string) string {
	if strings.TrimSpace(precio) == "" {
		precio = "Precio no disponible"
	}
	if tienda != "" {
		return fmt.Sprintf("Hola! Estoy interesado en el producto %q (%s) que vi en tu tienda (%s).", producto, precio, tienda)
	}
	return fmt.Sprintf("Hola! Estoy interesado en el producto %q (%s) que vi en tu tienda.", producto, precio)
}

// EnlaceWhatsApp builds the wa.me deep link. With no digits the path segment
// is omitted and the link opens the generic compose view carrying only the
// message text.
func EnlaceWhatsApp(telefono, mensaje string) (string, error) {
	digitos := SoloDigitos(telefono)

	u, err := url.Parse("https://wa.me/")
	if err != nil {
		return "", fmt.Errorf("construir enlace: %w", err)
	}
	if digitos != "" {
		u.Path = "/" + digitos
	}
	q := url.Values{}
	q.Set("text", mensaje)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
