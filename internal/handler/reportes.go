package handler

import (
	"net/http"
	"time"

	"github.com/alejoalf/Sistema-bar/internal/apierror"
	"github.com/alejoalf/Sistema-bar/internal/dto"
	"github.com/alejoalf/Sistema-bar/internal/infra"
	"github.com/alejoalf/Sistema-bar/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct {
	svc         service.ReporteService
	nombreLocal string
	pdfPath     string
}

func NewReportesHandler(svc service.ReporteService, nombreLocal, pdfPath string) *ReportesHandler {
	return &ReportesHandler{svc: svc, nombreLocal: nombreLocal, pdfPath: pdfPath}
}

// Historial godoc
// @Summary      Historial de ventas
// @Description  Retorna todos los pedidos cobrados, el más reciente primero.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.VentaHistorialItem
// @Router       /v1/reportes/historial [get]
func (h *ReportesHandler) Historial(c *gin.Context) {
	historial, err := h.svc.Historial(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el historial"))
		return
	}
	c.JSON(http.StatusOK, historial)
}

// Cierre godoc
// @Summary      Cierres por día
// @Description  Agrupa pedidos cobrados y extracciones por fecha local, con ranking de productos y neto.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CierreResponse
// @Router       /v1/reportes/cierre [get]
func (h *ReportesHandler) Cierre(c *gin.Context) {
	cierre, err := h.svc.Cierre(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el cierre"))
		return
	}
	c.JSON(http.StatusOK, cierre)
}

// CierrePDF godoc
// @Summary      Cierre del día en PDF
// @Description  Genera y descarga el reporte de cierre de la fecha indicada (hoy por defecto).
// @Tags         reportes
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        fecha query string false "Fecha YYYY-MM-DD"
// @Success      200 {file} file
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reportes/cierre/pdf [get]
func (h *ReportesHandler) CierrePDF(c *gin.Context) {
	fecha := c.Query("fecha")
	if fecha == "" {
		fecha = time.Now().Local().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", fecha); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Fecha invalida, formato esperado YYYY-MM-DD"))
		return
	}
	dia, err := h.svc.CierreDelDia(c.Request.Context(), fecha)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el cierre"))
		return
	}
	path, err := infra.GenerateCierrePDF(dia, h.nombreLocal, h.pdfPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el PDF"))
		return
	}
	c.FileAttachment(path, "cierre-"+fecha+".pdf")
}

// EnviarCierre godoc
// @Summary      Enviar cierre por email
// @Description  Encola el envío del reporte de cierre en PDF al email indicado.
// @Tags         reportes
// @Accept       json
// @Security     BearerAuth
// @Param        body body dto.EnviarCierreRequest true "Email destino y fecha"
// @Success      202
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reportes/cierre/enviar [post]
func (h *ReportesHandler) EnviarCierre(c *gin.Context) {
	var req dto.EnviarCierreRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EnviarCierre(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusAccepted)
}
