package handler

import (
	"errors"
	"net/http"

	"github.com/Guntherdrb/paratodos-gemini/internal/apierror"
	"github.com/Guntherdrb/paratodos-gemini/internal/dto"
	"github.com/Guntherdrb/paratodos-gemini/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

func (h *ProductosHandler) ListarPorSlug(c *gin.Context) {
	productos, err := h.svc.ListarPorSlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrTiendaNoEncontrada) {
			c.JSON(http.StatusNotFound, apierror.New("Tienda no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar productos"))
		return
	}
	c.JSON(http.StatusOK, dto.ListaProductosResponse{Success: true, Productos: productos})
}

func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	producto, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}
	c.JSON(http.StatusOK, dto.ObtenerProductoResponse{Success: true, Producto: producto})
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var form dto.CrearProductoForm
	if !bindFormAndValidate(c, &form) {
		return
	}

	// Imagen is optional for manual entry
	imagen, err := c.FormFile("imagen")
	if err != nil {
		imagen = nil
	}

	resp, err := h.svc.Crear(c.Request.Context(), form, imagen)
	if err != nil {
		if errors.Is(err, service.ErrTiendaNoEncontrada) {
			c.JSON(http.StatusNotFound, apierror.New("Tienda no encontrada"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "producto": resp})
}
