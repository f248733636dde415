package handler

import (
	"net/http"
	"strconv"

	"github.com/alejoalf/Sistema-bar/internal/apierror"
	"github.com/alejoalf/Sistema-bar/internal/dto"
	"github.com/alejoalf/Sistema-bar/internal/service"

	"github.com/gin-gonic/gin"
)

type CobrosHandler struct{ svc service.CobroService }

func NewCobrosHandler(svc service.CobroService) *CobrosHandler { return &CobrosHandler{svc: svc} }

// CobrarMesa godoc
// @Summary      Cobrar mesa
// @Description  Marca cobrados todos los pedidos pendientes de la mesa con el método indicado y la libera, salvo mantener_ocupada.
// @Tags         cobros
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la mesa"
// @Param        body body dto.CobrarRequest true "Método de pago"
// @Success      200 {object} dto.CobroResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/mesas/{id}/cobrar [post]
func (h *CobrosHandler) CobrarMesa(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.CobrarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CobrarMesa(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CobrarTicketBarra godoc
// @Summary      Cobrar cuenta de barra
// @Tags         cobros
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        ticket path int true "Número de ticket"
// @Param        body   body dto.CobrarRequest true "Método de pago"
// @Success      200 {object} dto.CobroResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/barra/{ticket}/cobrar [post]
func (h *CobrosHandler) CobrarTicketBarra(c *gin.Context) {
	ticket, err := strconv.Atoi(c.Param("ticket"))
	if err != nil || ticket < 1 {
		c.JSON(http.StatusBadRequest, apierror.New("Ticket invalido"))
		return
	}
	var req dto.CobrarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CobrarTicketBarra(c.Request.Context(), ticket, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CobrarPedido godoc
// @Summary      Cobrar un pedido individual
// @Description  Cobra un solo pedido dejando abiertos los demás de la misma cuenta. Nunca libera la mesa.
// @Tags         cobros
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del pedido"
// @Param        body body dto.CobrarRequest true "Método de pago"
// @Success      200 {object} dto.CobroResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/pedidos/{id}/cobrar [post]
func (h *CobrosHandler) CobrarPedido(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.CobrarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CobrarPedido(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
