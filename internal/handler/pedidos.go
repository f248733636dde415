package handler

import (
	"net/http"
	"strconv"

	"github.com/alejoalf/Sistema-bar/internal/apierror"
	"github.com/alejoalf/Sistema-bar/internal/dto"
	"github.com/alejoalf/Sistema-bar/internal/service"

	"github.com/gin-gonic/gin"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear pedido
// @Description  Crea un pedido para una mesa o una cuenta de barra. Descuenta stock y ocupa la mesa en una sola transacción.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearPedidoRequest true "Items del pedido"
// @Success      201 {object} dto.PedidoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/pedidos [post]
func (h *PedidosHandler) Crear(c *gin.Context) {
	var req dto.CrearPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CuentaMesa godoc
// @Summary      Cuenta de una mesa
// @Description  Retorna los pedidos pendientes de la mesa con el saldo acumulado.
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la mesa"
// @Success      200 {object} dto.CuentaResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/mesas/{id}/cuenta [get]
func (h *PedidosHandler) CuentaMesa(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	cuenta, err := h.svc.CuentaMesa(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, cuenta)
}

// TabsBarra godoc
// @Summary      Cuentas de barra abiertas
// @Description  Retorna las cuentas de barra agrupadas por ticket, la más antigua primero.
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.TabBarraResponse
// @Router       /v1/barra [get]
func (h *PedidosHandler) TabsBarra(c *gin.Context) {
	tabs, err := h.svc.TabsBarra(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar cuentas de barra"))
		return
	}
	c.JSON(http.StatusOK, tabs)
}

// CuentaTicket godoc
// @Summary      Cuenta de un ticket de barra
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        ticket path int true "Número de ticket"
// @Success      200 {object} dto.CuentaResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/barra/{ticket}/cuenta [get]
func (h *PedidosHandler) CuentaTicket(c *gin.Context) {
	ticket, err := strconv.Atoi(c.Param("ticket"))
	if err != nil || ticket < 1 {
		c.JSON(http.StatusBadRequest, apierror.New("Ticket invalido"))
		return
	}
	cuenta, err := h.svc.CuentaTicket(c.Request.Context(), ticket)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, cuenta)
}

// EliminarItem godoc
// @Summary      Eliminar item de un pedido
// @Description  Restaura stock, elimina la línea y recalcula el total. Si era la última línea el pedido se elimina.
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del detalle"
// @Success      200 {object} dto.EliminarItemResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/pedidos/items/{id} [delete]
func (h *PedidosHandler) EliminarItem(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.EliminarItem(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CancelarMesa godoc
// @Summary      Cancelar pedidos de una mesa
// @Description  Restaura stock de todos los pedidos pendientes, los elimina y libera la mesa.
// @Tags         pedidos
// @Security     BearerAuth
// @Param        id path string true "UUID de la mesa"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/mesas/{id}/cancelar [post]
func (h *PedidosHandler) CancelarMesa(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.CancelarMesa(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// CancelarTicketBarra godoc
// @Summary      Cancelar cuenta de barra
// @Description  Restaura stock de todos los pedidos pendientes del ticket y los elimina.
// @Tags         pedidos
// @Security     BearerAuth
// @Param        ticket path int true "Número de ticket"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/barra/{ticket}/cancelar [post]
func (h *PedidosHandler) CancelarTicketBarra(c *gin.Context) {
	ticket, err := strconv.Atoi(c.Param("ticket"))
	if err != nil || ticket < 1 {
		c.JSON(http.StatusBadRequest, apierror.New("Ticket invalido"))
		return
	}
	if err := h.svc.CancelarTicketBarra(c.Request.Context(), ticket); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
