package handler

import (
	"net/http"

	"github.com/alejoalf/Sistema-bar/internal/apierror"
	"github.com/alejoalf/Sistema-bar/internal/dto"
	"github.com/alejoalf/Sistema-bar/internal/middleware"
	"github.com/alejoalf/Sistema-bar/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// RegistrarExtraccion godoc
// @Summary      Registrar extracción de caja
// @Description  Registra un retiro de efectivo en el libro inmutable de movimientos, con el usuario que lo hizo.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarExtraccionRequest true "Monto y motivo"
// @Success      201 {object} dto.ExtraccionResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/caja/extracciones [post]
func (h *CajaHandler) RegistrarExtraccion(c *gin.Context) {
	var req dto.RegistrarExtraccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	var usuarioID *uuid.UUID
	var usuario *string
	if claims != nil {
		if uid, err := uuid.Parse(claims.UserID); err == nil {
			usuarioID = &uid
		}
		nombre := claims.Nombre
		usuario = &nombre
	}
	resp, err := h.svc.RegistrarExtraccion(c.Request.Context(), usuarioID, usuario, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarExtracciones godoc
// @Summary      Listar extracciones
// @Description  Retorna las extracciones registradas, la más reciente primero.
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ExtraccionResponse
// @Router       /v1/caja/extracciones [get]
func (h *CajaHandler) ListarExtracciones(c *gin.Context) {
	extracciones, err := h.svc.ListarExtracciones(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar extracciones"))
		return
	}
	c.JSON(http.StatusOK, extracciones)
}
