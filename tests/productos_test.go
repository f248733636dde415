package tests

import (
	"context"
	"testing"

	"github.com/alejoalf/Sistema-bar/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func boolPtr(b bool) *bool { return &b }

func TestCrearProducto_ActivoYDisponiblePorDefecto(t *testing.T) {
	e := nuevoEntorno()
	resp, err := e.productos.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:      "Milanesa Napolitana",
		Categoria:   "cocina",
		Precio:      decimal.NewFromInt(9000),
		StockActual: 6,
	})
	require.NoError(t, err)
	assert.True(t, resp.Activo)
	assert.True(t, resp.Disponible)
	assert.Equal(t, 6, resp.StockActual)
}

func TestCarta_SoloActivosYDisponibles(t *testing.T) {
	e := nuevoEntorno()
	visible := e.seedProducto("Cerveza Tirada", 2500, 10)
	agotado := e.seedProducto("Pizza Muzzarella", 7000, 0)
	baja := e.seedProducto("Vermut", 3000, 5)

	_, err := e.productos.Actualizar(context.Background(), agotado.ID, dto.ActualizarProductoRequest{
		Disponible: boolPtr(false),
	})
	require.NoError(t, err)
	require.NoError(t, e.productos.Desactivar(context.Background(), baja.ID))

	carta, err := e.productos.Carta(context.Background())
	require.NoError(t, err)
	require.Len(t, carta, 1)
	assert.Equal(t, visible.ID.String(), carta[0].ID)
	assert.Equal(t, "Cerveza Tirada", carta[0].Nombre)
}

func TestActualizarPrecio_NoReescribeSnapshots(t *testing.T) {
	e := nuevoEntorno()
	mesa := e.seedMesa(3)
	cerveza := e.seedProducto("Cerveza Tirada", 2500, 10)

	mesaID := mesa.ID.String()
	pedido, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		MesaID: &mesaID,
		Items:  itemsDe(cerveza.ID.String()),
	})
	require.NoError(t, err)

	_, err = e.productos.Actualizar(context.Background(), cerveza.ID, dto.ActualizarProductoRequest{
		Precio: decPtr(3200),
	})
	require.NoError(t, err)

	// The open cuenta keeps the price at the moment of the pedido
	cuenta, err := e.pedidos.CuentaMesa(context.Background(), mesa.ID)
	require.NoError(t, err)
	assert.Equal(t, "2500", cuenta.Saldo.String())
	assert.Equal(t, "2500", cuenta.Pedidos[0].Detalles[0].PrecioUnitario.String())
	_ = pedido

	// New pedidos snapshot the new price
	_, err = e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		MesaID: &mesaID,
		Items:  itemsDe(cerveza.ID.String()),
	})
	require.NoError(t, err)
	cuenta, err = e.pedidos.CuentaMesa(context.Background(), mesa.ID)
	require.NoError(t, err)
	assert.Equal(t, "5700", cuenta.Saldo.String())
}

func TestAjustarStock_DeltaRelativo(t *testing.T) {
	e := nuevoEntorno()
	p := e.seedProducto("Fernet con Coca", 4000, 4)

	resp, err := e.productos.AjustarStock(context.Background(), p.ID, dto.AjustarStockRequest{Delta: 12})
	require.NoError(t, err)
	assert.Equal(t, 16, resp.StockActual)

	resp, err = e.productos.AjustarStock(context.Background(), p.ID, dto.AjustarStockRequest{Delta: -6})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.StockActual)
}

func TestObtenerProducto_Inexistente(t *testing.T) {
	e := nuevoEntorno()
	_, err := e.productos.Obtener(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no encontrado")
}
