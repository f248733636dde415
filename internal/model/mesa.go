package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados de mesa. "pagando" existed in early mock data but no operation ever
// produced it, so the enum is reduced to the two reachable states.
const (
	MesaLibre   = "libre"
	MesaOcupada = "ocupada"
)

// Mesa is a physical seating unit with a libre/ocupada lifecycle.
// The estado flag is storage independent from the pedido list; the mesa
// listing re-derives open-pedido counts so the two can be reconciled on read.
type Mesa struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroMesa int       `gorm:"uniqueIndex;not null"`
	// Sector: "salon" | "patio-medio" | "patio-fondo"
	Sector    string `gorm:"not null;default:'salon'"`
	Capacidad int    `gorm:"not null;default:4"`
	Estado    string `gorm:"type:varchar(20);not null;default:'libre'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Mesa) TableName() string { return "mesas" }
