package dto

import "github.com/shopspring/decimal"

// ProductoFilter is bound from the query string of GET /v1/productos.
type ProductoFilter struct {
	Nombre    string `form:"nombre"`
	Categoria string `form:"categoria"`
	// Activo: "false" = inactivos, "all" = todos, default = activos
	Activo string `form:"activo"`
}

type CrearProductoRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,max=120"`
	Categoria   string          `json:"categoria"    validate:"required,max=60"`
	Precio      decimal.Decimal `json:"precio"       validate:"required,gt=0"`
	StockActual int             `json:"stock_actual" validate:"min=0"`
	Disponible  *bool           `json:"disponible"`
}

type ActualizarProductoRequest struct {
	Nombre     *string          `json:"nombre"     validate:"omitempty,max=120"`
	Categoria  *string          `json:"categoria"  validate:"omitempty,max=60"`
	Precio     *decimal.Decimal `json:"precio"     validate:"omitempty,gt=0"`
	Disponible *bool            `json:"disponible"`
}

// AjustarStockRequest applies a manual relative stock adjustment.
type AjustarStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type ProductoResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Categoria   string          `json:"categoria"`
	Precio      decimal.Decimal `json:"precio"`
	StockActual int             `json:"stock_actual"`
	Activo      bool            `json:"activo"`
	Disponible  bool            `json:"disponible"`
}

// CartaItem is the public menu shape: no stock, no flags.
type CartaItem struct {
	ID        string          `json:"id"`
	Nombre    string          `json:"nombre"`
	Categoria string          `json:"categoria"`
	Precio    decimal.Decimal `json:"precio"`
}
