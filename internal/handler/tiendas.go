package handler

import (
	"errors"
	"net/http"

	"github.com/Guntherdrb/paratodos-gemini/internal/apierror"
	"github.com/Guntherdrb/paratodos-gemini/internal/dto"
	"github.com/Guntherdrb/paratodos-gemini/internal/service"

	"github.com/gin-gonic/gin"
)

type TiendasHandler struct{ svc service.TiendaService }

func NewTiendasHandler(svc service.TiendaService) *TiendasHandler {
	return &TiendasHandler{svc: svc}
}

func (h *TiendasHandler) Listar(c *gin.Context) {
	tiendas, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar tiendas"))
		return
	}
	c.JSON(http.StatusOK, dto.ListaTiendasResponse{Success: true, Tiendas: tiendas})
}

func (h *TiendasHandler) ObtenerPorSlug(c *gin.Context) {
	tienda, err := h.svc.ObtenerPorSlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrTiendaNoEncontrada) {
			c.JSON(http.StatusNotFound, apierror.New("Tienda no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al obtener la tienda"))
		return
	}
	c.JSON(http.StatusOK, dto.ObtenerTiendaResponse{Success: true, Tienda: tienda})
}

func (h *TiendasHandler) Crear(c *gin.Context) {
	var form dto.CrearTiendaForm
	if !bindFormAndValidate(c, &form) {
		return
	}

	logo, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Debes seleccionar un logo para la tienda"))
		return
	}
	catalogo, err := c.FormFile("catalogo")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Debes seleccionar un catalogo en PDF"))
		return
	}

	resp, err := h.svc.Crear(c.Request.Context(), form, logo, catalogo)
	if err != nil {
		if errors.Is(err, service.ErrNombreDuplicado) {
			c.JSON(http.StatusBadRequest, apierror.New("Ya existe una tienda con ese nombre"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al crear la tienda"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
