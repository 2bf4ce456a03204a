package handler

import (
	"errors"
	"net/http"

	"github.com/Guntherdrb/paratodos-gemini/internal/apierror"
	"github.com/Guntherdrb/paratodos-gemini/internal/dto"
	"github.com/Guntherdrb/paratodos-gemini/internal/service"

	"github.com/gin-gonic/gin"
)

type LeadsHandler struct{ svc service.LeadService }

func NewLeadsHandler(svc service.LeadService) *LeadsHandler {
	return &LeadsHandler{svc: svc}
}

func (h *LeadsHandler) Crear(c *gin.Context) {
	var req dto.CrearLeadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductoNoEncontrado):
			c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		case errors.Is(err, service.ErrTiendaNoEncontrada):
			c.JSON(http.StatusNotFound, apierror.New("Tienda no encontrada"))
		case errors.Is(err, service.ErrLeadAjeno):
			c.JSON(http.StatusBadRequest, apierror.New("El producto no pertenece a la tienda especificada"))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Error al registrar el lead"))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *LeadsHandler) ContarPorSlug(c *gin.Context) {
	count, err := h.svc.ContarPorSlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrTiendaNoEncontrada) {
			c.JSON(http.StatusNotFound, apierror.New("Tienda no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al contar leads"))
		return
	}
	c.JSON(http.StatusOK, dto.ContadorLeadsResponse{Success: true, Count: count})
}
