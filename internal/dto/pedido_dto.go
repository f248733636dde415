package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

// ItemPedidoRequest references one carta product. Quantity is fixed at one
// line per entry: a caller wanting three beers repeats the product three times.
type ItemPedidoRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
}

// CrearPedidoRequest opens a new pedido for a mesa or a barra tab.
// MesaID takes precedence: when both mesa and cliente are supplied the pedido
// is a mesa pedido and Cliente is ignored. Without mesa, Cliente is required;
// TicketBarra attaches the pedido to an existing walk-up tab, otherwise a new
// ticket is allocated.
type CrearPedidoRequest struct {
	MesaID      *string             `json:"mesa_id"      validate:"omitempty,uuid"`
	Cliente     *string             `json:"cliente"      validate:"omitempty,max=120"`
	TicketBarra *int                `json:"ticket_barra" validate:"omitempty,min=1"`
	Items       []ItemPedidoRequest `json:"items"        validate:"required,min=1,dive"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type DetalleResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type PedidoResponse struct {
	ID          string            `json:"id"`
	MesaID      *string           `json:"mesa_id,omitempty"`
	NumeroMesa  *int              `json:"numero_mesa,omitempty"`
	TicketBarra *int              `json:"ticket_barra,omitempty"`
	Cliente     *string           `json:"cliente,omitempty"`
	Estado      string            `json:"estado"`
	Total       decimal.Decimal   `json:"total"`
	MetodoPago  *string           `json:"metodo_pago,omitempty"`
	Detalles    []DetalleResponse `json:"detalles"`
	CreatedAt   string            `json:"created_at"`
}

// CuentaResponse aggregates every open pedido of one tab (mesa or barra
// ticket) into a single payable balance.
type CuentaResponse struct {
	Pedidos []PedidoResponse `json:"pedidos"`
	Saldo   decimal.Decimal  `json:"saldo"`
}

// TabBarraResponse is one walk-up tab in the barra listing, grouped by ticket.
type TabBarraResponse struct {
	TicketBarra int              `json:"ticket_barra"`
	Cliente     string           `json:"cliente"`
	Pedidos     []PedidoResponse `json:"pedidos"`
	Saldo       decimal.Decimal  `json:"saldo"`
}

// EliminarItemResponse describes the pedido after a line removal.
type EliminarItemResponse struct {
	PedidoEliminado bool            `json:"pedido_eliminado"`
	PedidoID        string          `json:"pedido_id"`
	NuevoTotal      decimal.Decimal `json:"nuevo_total"`
}
