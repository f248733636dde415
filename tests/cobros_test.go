package tests

import (
	"context"
	"testing"

	"github.com/alejoalf/Sistema-bar/internal/dto"
	"github.com/alejoalf/Sistema-bar/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCobrarMesa_MarcaCobradosYLiberaMesa(t *testing.T) {
	e := nuevoEntorno()
	mesa := e.seedMesa(3)
	cerveza := e.seedProducto("Cerveza Tirada", 2500, 10)
	pizza := e.seedProducto("Pizza Muzzarella", 7000, 10)

	mesaID := mesa.ID.String()
	_, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		MesaID: &mesaID,
		Items:  itemsDe(cerveza.ID.String()),
	})
	require.NoError(t, err)
	_, err = e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		MesaID: &mesaID,
		Items:  itemsDe(pizza.ID.String()),
	})
	require.NoError(t, err)

	resp, err := e.cobros.CobrarMesa(context.Background(), mesa.ID, dto.CobrarRequest{MetodoPago: "Tarjeta"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.PedidosCobrados)
	assert.Equal(t, "9500", resp.TotalCobrado.String())
	assert.Equal(t, "Tarjeta", resp.MetodoPago)
	assert.True(t, resp.MesaLiberada)

	actualizada, _ := e.mesaRepo.FindByID(context.Background(), mesa.ID)
	assert.Equal(t, model.MesaLibre, actualizada.Estado)

	// Stock is NOT restored on cobro
	assert.Equal(t, 9, e.stockDe(cerveza))

	// Tab is now empty; history has both pedidos with the metodo stamped
	cuenta, err := e.pedidos.CuentaMesa(context.Background(), mesa.ID)
	require.NoError(t, err)
	assert.Empty(t, cuenta.Pedidos)

	historial, err := e.reportes.Historial(context.Background())
	require.NoError(t, err)
	require.Len(t, historial, 2)
	for _, h := range historial {
		require.NotNil(t, h.MetodoPago)
		assert.Equal(t, "Tarjeta", *h.MetodoPago)
	}
}

func TestCobrarMesa_MantenerOcupada(t *testing.T) {
	e := nuevoEntorno()
	mesa := e.seedMesa(8)
	cafe := e.seedProducto("Cafe", 1500, 5)

	mesaID := mesa.ID.String()
	_, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		MesaID: &mesaID,
		Items:  itemsDe(cafe.ID.String()),
	})
	require.NoError(t, err)

	resp, err := e.cobros.CobrarMesa(context.Background(), mesa.ID, dto.CobrarRequest{
		MetodoPago:      "Efectivo",
		MantenerOcupada: true,
	})
	require.NoError(t, err)
	assert.False(t, resp.MesaLiberada)

	actualizada, _ := e.mesaRepo.FindByID(context.Background(), mesa.ID)
	assert.Equal(t, model.MesaOcupada, actualizada.Estado)

	// The still-occupied mesa can be released later through cerrar
	_, err = e.mesas.Cerrar(context.Background(), mesa.ID)
	require.NoError(t, err)
	actualizada, _ = e.mesaRepo.FindByID(context.Background(), mesa.ID)
	assert.Equal(t, model.MesaLibre, actualizada.Estado)
}

func TestCobrarMesa_SinPedidosFalla(t *testing.T) {
	e := nuevoEntorno()
	mesa := e.seedMesa(9)

	_, err := e.mesas.Abrir(context.Background(), mesa.ID)
	require.NoError(t, err)

	_, err = e.cobros.CobrarMesa(context.Background(), mesa.ID, dto.CobrarRequest{MetodoPago: "Efectivo"})
	assert.ErrorContains(t, err, "pendientes")
}

func TestCobrarTicketBarra(t *testing.T) {
	e := nuevoEntorno()
	fernet := e.seedProducto("Fernet con Coca", 4000, 10)

	pedido, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		Cliente: strPtr("Carla"),
		Items:   itemsDe(fernet.ID.String(), fernet.ID.String()),
	})
	require.NoError(t, err)

	resp, err := e.cobros.CobrarTicketBarra(context.Background(), *pedido.TicketBarra, dto.CobrarRequest{MetodoPago: "Mercado Pago"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.PedidosCobrados)
	assert.Equal(t, "8000", resp.TotalCobrado.String())

	// Settling the same ticket again fails
	_, err = e.cobros.CobrarTicketBarra(context.Background(), *pedido.TicketBarra, dto.CobrarRequest{MetodoPago: "Efectivo"})
	assert.Error(t, err)
}

func TestCobrarPedido_IndividualDejaLaMesaOcupada(t *testing.T) {
	e := nuevoEntorno()
	mesa := e.seedMesa(10)
	cerveza := e.seedProducto("Cerveza Tirada", 2500, 10)
	pizza := e.seedProducto("Pizza Muzzarella", 7000, 10)

	mesaID := mesa.ID.String()
	primero, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		MesaID: &mesaID,
		Items:  itemsDe(cerveza.ID.String()),
	})
	require.NoError(t, err)
	_, err = e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		MesaID: &mesaID,
		Items:  itemsDe(pizza.ID.String()),
	})
	require.NoError(t, err)

	resp, err := e.cobros.CobrarPedido(context.Background(), uuid.MustParse(primero.ID), dto.CobrarRequest{MetodoPago: "Efectivo"})
	require.NoError(t, err)
	assert.Equal(t, "2500", resp.TotalCobrado.String())
	assert.False(t, resp.MesaLiberada)

	// The sibling stays open and the mesa stays ocupada
	cuenta, err := e.pedidos.CuentaMesa(context.Background(), mesa.ID)
	require.NoError(t, err)
	assert.Len(t, cuenta.Pedidos, 1)
	assert.Equal(t, "7000", cuenta.Saldo.String())

	actualizada, _ := e.mesaRepo.FindByID(context.Background(), mesa.ID)
	assert.Equal(t, model.MesaOcupada, actualizada.Estado)
}

func TestCobrarPedido_YaCobradoFalla(t *testing.T) {
	e := nuevoEntorno()
	cafe := e.seedProducto("Cafe", 1500, 5)

	pedido, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		Cliente: strPtr("Lucas"),
		Items:   itemsDe(cafe.ID.String()),
	})
	require.NoError(t, err)

	id := uuid.MustParse(pedido.ID)
	_, err = e.cobros.CobrarPedido(context.Background(), id, dto.CobrarRequest{MetodoPago: "Efectivo"})
	require.NoError(t, err)

	_, err = e.cobros.CobrarPedido(context.Background(), id, dto.CobrarRequest{MetodoPago: "Efectivo"})
	assert.ErrorContains(t, err, "cobrado")
}
