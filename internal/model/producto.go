package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is one sellable item of the carta.
// StockActual is the shared counter the pedido engine decrements on sale and
// restores on cancellation; adjustments are single UPDATE expressions, never
// read-then-write.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Categoria   string    `gorm:"not null"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockActual int             `gorm:"not null;default:0"`
	// Activo: soft-delete flag. Disponible: shown on the carta or not
	// (a product can stay active for history while hidden from the menu).
	Activo     bool `gorm:"not null;default:true"`
	Disponible bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Producto) TableName() string { return "productos" }
