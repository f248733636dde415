package handler

import (
	"net/http"

	"github.com/alejoalf/Sistema-bar/internal/apierror"
	"github.com/alejoalf/Sistema-bar/internal/service"

	"github.com/gin-gonic/gin"
)

type MesasHandler struct{ svc service.MesaService }

func NewMesasHandler(svc service.MesaService) *MesasHandler { return &MesasHandler{svc: svc} }

// Listar godoc
// @Summary      Listar mesas del salón
// @Description  Retorna todas las mesas con cantidad de pedidos abiertos y saldo derivados.
// @Tags         mesas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.MesaResponse
// @Router       /v1/mesas [get]
func (h *MesasHandler) Listar(c *gin.Context) {
	mesas, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar mesas"))
		return
	}
	c.JSON(http.StatusOK, mesas)
}

// Abrir godoc
// @Summary      Abrir mesa
// @Description  Marca una mesa libre como ocupada cuando se sientan clientes, antes de cargar pedidos.
// @Tags         mesas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la mesa"
// @Success      200 {object} dto.MesaResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/mesas/{id}/abrir [post]
func (h *MesasHandler) Abrir(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	mesa, err := h.svc.Abrir(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, mesa)
}

// Cerrar godoc
// @Summary      Cerrar mesa
// @Description  Libera una mesa ocupada sin pedidos pendientes (apertura por error o cobro con mantener_ocupada).
// @Tags         mesas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la mesa"
// @Success      200 {object} dto.MesaResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/mesas/{id}/cerrar [post]
func (h *MesasHandler) Cerrar(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	mesa, err := h.svc.Cerrar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, mesa)
}
