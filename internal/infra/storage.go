package infra

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Storage manages uploaded files (logos, catalogos, imagenes de producto)
// under {root}/{slug}/. Stored names get a short nanoid prefix so two uploads
// named "catalogo.pdf" never collide.
type Storage struct {
	root string
}

func NewStorage(root string) (*Storage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root: %w", err)
	}
	return &Storage{root: root}, nil
}

// Save writes an uploaded file into the tienda's folder and returns the
// stored filename (not the full path).
func (s *Storage) Save(slug string, fh *multipart.FileHeader) (string, error) {
	dir := filepath.Join(s.root, slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: create dir: %w", err)
	}

	id, err := gonanoid.New(8)
	if err != nil {
		return "", fmt.Errorf("storage: generate id: %w", err)
	}
	name := id + "_" + sanitizeFilename(fh.Filename)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("storage: open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("storage: create file: %w", err)
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return name, nil
}

// Path returns the absolute path of a stored file.
func (s *Storage) Path(slug, filename string) string {
	return filepath.Join(s.root, slug, filename)
}

// Dir returns the tienda's upload folder (for static file serving).
func (s *Storage) Dir(slug string) string {
	return filepath.Join(s.root, slug)
}

// sanitizeFilename keeps only characters that are safe in a filesystem path
// and strips any directory components from the client-supplied name.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "archivo"
	}
	return b.String()
}
