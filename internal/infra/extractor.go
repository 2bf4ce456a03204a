package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ProductoExtraido is one catalog entry returned by the Extractor Sidecar.
// Precio stays a free-form string: catalogs carry arbitrary price text.
type ProductoExtraido struct {
	Nombre      string `json:"name"`
	Descripcion string `json:"description"`
	Precio      string `json:"price"`
}

// ExtractorResponse is returned by the Sidecar after parsing the PDF.
type ExtractorResponse struct {
	Productos []ProductoExtraido `json:"products"`
}

// ExtractorClient delegates PDF-catalog parsing to the Extractor Sidecar.
// Keeping the extraction model calls out of process isolates its failures
// (and its latency) from the core backend.
type ExtractorClient struct {
	sidecarURL string
	httpClient *http.Client
}

func NewExtractorClient(sidecarURL string) *ExtractorClient {
	return &ExtractorClient{
		sidecarURL: sidecarURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Extraer uploads the catalog PDF and returns the product list the sidecar
// extracted from it.
func (c *ExtractorClient) Extraer(ctx context.Context, pdfPath string) (*ExtractorResponse, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("extractor: open pdf: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("catalogo", filepath.Base(pdfPath))
	if err != nil {
		return nil, fmt.Errorf("extractor: build form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("extractor: read pdf: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("extractor: close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sidecarURL+"/extraer", &body)
	if err != nil {
		return nil, fmt.Errorf("extractor: create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extractor: sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extractor: sidecar returned %d", resp.StatusCode)
	}

	var result ExtractorResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("extractor: decode response: %w", err)
	}
	return &result, nil
}
