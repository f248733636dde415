package dto

import "github.com/shopspring/decimal"

// VentaHistorialItem is one cobrado pedido in the sales history, newest first.
type VentaHistorialItem struct {
	ID          string            `json:"id"`
	NumeroMesa  *int              `json:"numero_mesa,omitempty"`
	TicketBarra *int              `json:"ticket_barra,omitempty"`
	Cliente     *string           `json:"cliente,omitempty"`
	Total       decimal.Decimal   `json:"total"`
	MetodoPago  *string           `json:"metodo_pago,omitempty"`
	Detalles    []DetalleResponse `json:"detalles"`
	CreatedAt   string            `json:"created_at"`
}

// RankingProducto ranks one product within a day bucket.
type RankingProducto struct {
	Nombre    string          `json:"nombre"`
	Categoria string          `json:"categoria"`
	Cantidad  int             `json:"cantidad"`
	Recaudado decimal.Decimal `json:"recaudado"`
}

// CierreDia is the aggregate for one calendar day (server-local date portion
// of created_at).
type CierreDia struct {
	Fecha           string            `json:"fecha"` // YYYY-MM-DD
	TotalRecaudado  decimal.Decimal   `json:"total_recaudado"`
	CantidadPedidos int               `json:"cantidad_pedidos"`
	// CuentasCerradas counts distinct mesas plus distinct barra tickets
	CuentasCerradas int               `json:"cuentas_cerradas"`
	Ranking         []RankingProducto `json:"ranking"`
	TotalExtraido   decimal.Decimal   `json:"total_extraido"`
	Neto            decimal.Decimal   `json:"neto"`
}

type CierreResponse struct {
	Dias []CierreDia `json:"dias"`
}

// EnviarCierreRequest queues the daily-close report for email delivery.
type EnviarCierreRequest struct {
	Email string `json:"email" validate:"required,email"`
	Fecha string `json:"fecha" validate:"required,datetime=2006-01-02"`
}
