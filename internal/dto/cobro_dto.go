package dto

import "github.com/shopspring/decimal"

// CobrarRequest settles a tab (mesa or barra ticket) or a single pedido.
// The metodo set is closed; cobro with no method is rejected, no default is
// assumed.
type CobrarRequest struct {
	MetodoPago string `json:"metodo_pago" validate:"required,oneof=Efectivo Tarjeta Transferencia 'Mercado Pago' 'Cuenta Corriente'"`
	// MantenerOcupada: mesa cobro only — the tab is paid but the physical
	// table stays in use, so it is not released to libre.
	MantenerOcupada bool `json:"mantener_ocupada"`
}

// CobroResponse summarizes a settlement.
type CobroResponse struct {
	PedidosCobrados int             `json:"pedidos_cobrados"`
	TotalCobrado    decimal.Decimal `json:"total_cobrado"`
	MetodoPago      string          `json:"metodo_pago"`
	MesaLiberada    bool            `json:"mesa_liberada"`
}
