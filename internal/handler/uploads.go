package handler

import (
	"net/http"
	"os"

	"github.com/Guntherdrb/paratodos-gemini/internal/apierror"
	"github.com/Guntherdrb/paratodos-gemini/internal/infra"

	"github.com/gin-gonic/gin"
)

// ServeUpload streams a stored asset (logo, catalogo PDF, imagen de producto).
// Gin route params never contain path separators, so slug/file cannot escape
// the upload root.
func ServeUpload(storage *infra.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := storage.Path(c.Param("slug"), c.Param("file"))
		if _, err := os.Stat(path); err != nil {
			c.JSON(http.StatusNotFound, apierror.New("Archivo no encontrado"))
			return
		}
		c.File(path)
	}
}
