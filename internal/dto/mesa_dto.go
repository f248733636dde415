package dto

import "github.com/shopspring/decimal"

// MesaResponse is one mesa in the salon listing. PedidosAbiertos and Saldo are
// derived from the pedido table on every read so clients can reconcile the
// stored estado flag against reality.
type MesaResponse struct {
	ID              string          `json:"id"`
	NumeroMesa      int             `json:"numero_mesa"`
	Sector          string          `json:"sector"`
	Capacidad       int             `json:"capacidad"`
	Estado          string          `json:"estado"`
	PedidosAbiertos int             `json:"pedidos_abiertos"`
	Saldo           decimal.Decimal `json:"saldo"`
}
