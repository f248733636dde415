package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de pedido. Cancelled pedidos are deleted outright, so no "cancelado"
// row ever exists in storage.
const (
	PedidoPendiente = "pendiente"
	PedidoCobrado   = "cobrado"
)

// Pedido is one submitted set of items billed together, attached either to a
// mesa (MesaID set) or to a walk-up barra tab (TicketBarra set, Cliente as
// display label). Exactly one of the two keys identifies the tab.
//
// Total is a denormalized cache of the line subtotals; it is recomputed every
// time a detalle is removed. A pedido emptied of detalles is deleted — an
// order with no lines is not a billable unit.
type Pedido struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MesaID *uuid.UUID `gorm:"type:uuid;index"`
	// TicketBarra identifies a walk-up tab; allocated from a sequence at
	// creation so two customers with the same name never collide.
	TicketBarra *int    `gorm:"index"`
	Cliente     *string `gorm:"type:varchar(120)"`
	Estado      string  `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// MetodoPago is stamped only at cobro time
	MetodoPago *string `gorm:"type:varchar(30)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Mesa     *Mesa           `gorm:"foreignKey:MesaID"`
	Detalles []DetallePedido `gorm:"foreignKey:PedidoID"`
}

func (Pedido) TableName() string { return "pedidos" }

// DetallePedido is one product line inside a pedido. Cantidad is always 1 at
// creation — repeated products become repeated lines — and PrecioUnitario is a
// snapshot immune to later carta price changes.
type DetallePedido struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad       int             `gorm:"not null;default:1"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (DetallePedido) TableName() string { return "detalle_pedidos" }

// Subtotal is cantidad × precio unitario.
func (d *DetallePedido) Subtotal() decimal.Decimal {
	return d.PrecioUnitario.Mul(decimal.NewFromInt(int64(d.Cantidad)))
}
