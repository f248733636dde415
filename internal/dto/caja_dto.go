package dto

import "github.com/shopspring/decimal"

// RegistrarExtraccionRequest records cash removed from the register,
// independent of sales.
type RegistrarExtraccionRequest struct {
	Monto  decimal.Decimal `json:"monto"  validate:"required,gt=0"`
	Motivo string          `json:"motivo" validate:"required,max=250"`
}

type ExtraccionResponse struct {
	ID        string          `json:"id"`
	Tipo      string          `json:"tipo"`
	Monto     decimal.Decimal `json:"monto"`
	Motivo    string          `json:"motivo"`
	Usuario   *string         `json:"usuario,omitempty"`
	CreatedAt string          `json:"created_at"`
}
