package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovimientoCaja is an immutable entry in the cash register ledger.
// Tipo: "extraccion". Movements are NEVER modified or deleted.
type MovimientoCaja struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo   string          `gorm:"type:varchar(20);not null;index"`
	Monto  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Motivo string          `gorm:"not null"`
	// Usuario is the display name of the operator who registered the movement
	Usuario   *string `gorm:"type:varchar(120)"`
	UsuarioID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}

func (MovimientoCaja) TableName() string { return "caja_movimientos" }

const MovimientoExtraccion = "extraccion"
