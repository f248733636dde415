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

func itemsDe(ids ...string) []dto.ItemPedidoRequest {
	items := make([]dto.ItemPedidoRequest, 0, len(ids))
	for _, id := range ids {
		items = append(items, dto.ItemPedidoRequest{ProductoID: id})
	}
	return items
}

func strPtr(s string) *string { return &s }

func TestCrearPedido_Mesa_DescuentaStockYOcupaMesa(t *testing.T) {
	e := nuevoEntorno()
	mesa := e.seedMesa(3)
	cerveza := e.seedProducto("Cerveza Tirada", 2500, 10)

	mesaID := mesa.ID.String()
	resp, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		MesaID: &mesaID,
		Items:  itemsDe(cerveza.ID.String(), cerveza.ID.String()),
	})
	require.NoError(t, err)

	// Two lines of cantidad 1, snapshot price, denormalized total
	assert.Len(t, resp.Detalles, 2)
	assert.Equal(t, 1, resp.Detalles[0].Cantidad)
	assert.Equal(t, "5000", resp.Total.String())
	assert.Equal(t, model.PedidoPendiente, resp.Estado)

	// One unit per line decremented
	assert.Equal(t, 8, e.stockDe(cerveza))

	// Mesa flips to ocupada
	actualizada, _ := e.mesaRepo.FindByID(context.Background(), mesa.ID)
	assert.Equal(t, model.MesaOcupada, actualizada.Estado)
}

func TestCrearPedido_MesaTienePrecedenciaSobreCliente(t *testing.T) {
	e := nuevoEntorno()
	mesa := e.seedMesa(1)
	cafe := e.seedProducto("Cafe", 1500, 5)

	mesaID := mesa.ID.String()
	resp, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		MesaID:  &mesaID,
		Cliente: strPtr("Juan"),
		Items:   itemsDe(cafe.ID.String()),
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.MesaID)
	assert.Nil(t, resp.TicketBarra)
	assert.Nil(t, resp.Cliente)
}

func TestCrearPedido_BarraAsignaTicketNuevo(t *testing.T) {
	e := nuevoEntorno()
	fernet := e.seedProducto("Fernet con Coca", 4000, 5)

	primero, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		Cliente: strPtr("Juan"),
		Items:   itemsDe(fernet.ID.String()),
	})
	require.NoError(t, err)
	require.NotNil(t, primero.TicketBarra)

	// A second walk-up named Juan gets his own ticket, never Juan's tab
	segundo, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		Cliente: strPtr("Juan"),
		Items:   itemsDe(fernet.ID.String()),
	})
	require.NoError(t, err)
	require.NotNil(t, segundo.TicketBarra)
	assert.NotEqual(t, *primero.TicketBarra, *segundo.TicketBarra)
}

func TestCrearPedido_BarraSumaATicketExistente(t *testing.T) {
	e := nuevoEntorno()
	fernet := e.seedProducto("Fernet con Coca", 4000, 5)

	primero, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		Cliente: strPtr("Ana"),
		Items:   itemsDe(fernet.ID.String()),
	})
	require.NoError(t, err)

	segundo, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		Cliente:     strPtr("Ana"),
		TicketBarra: primero.TicketBarra,
		Items:       itemsDe(fernet.ID.String()),
	})
	require.NoError(t, err)
	assert.Equal(t, *primero.TicketBarra, *segundo.TicketBarra)

	cuenta, err := e.pedidos.CuentaTicket(context.Background(), *primero.TicketBarra)
	require.NoError(t, err)
	assert.Len(t, cuenta.Pedidos, 2)
	assert.Equal(t, "8000", cuenta.Saldo.String())
}

func TestCrearPedido_BarraSinClienteFalla(t *testing.T) {
	e := nuevoEntorno()
	agua := e.seedProducto("Agua Mineral", 1200, 5)

	_, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		Items: itemsDe(agua.ID.String()),
	})
	assert.ErrorContains(t, err, "cliente")
}

func TestCrearPedido_TicketInexistenteFalla(t *testing.T) {
	e := nuevoEntorno()
	agua := e.seedProducto("Agua Mineral", 1200, 5)

	ticket := 99
	_, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		Cliente:     strPtr("Luis"),
		TicketBarra: &ticket,
		Items:       itemsDe(agua.ID.String()),
	})
	assert.ErrorContains(t, err, "ticket")
}

func TestCrearPedido_ProductoNoDisponibleFalla(t *testing.T) {
	e := nuevoEntorno()
	mesa := e.seedMesa(2)
	flan := e.seedProducto("Flan Casero", 2800, 5)
	flan.Disponible = false
	require.NoError(t, e.prodRepo.Update(context.Background(), flan))

	mesaID := mesa.ID.String()
	_, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		MesaID: &mesaID,
		Items:  itemsDe(flan.ID.String()),
	})
	assert.ErrorContains(t, err, "disponible")
}

func TestEliminarItem_RecalculaTotalYRestauraStock(t *testing.T) {
	e := nuevoEntorno()
	mesa := e.seedMesa(4)
	cerveza := e.seedProducto("Cerveza Tirada", 2500, 10)
	pizza := e.seedProducto("Pizza Muzzarella", 7000, 10)

	mesaID := mesa.ID.String()
	pedido, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		MesaID: &mesaID,
		Items:  itemsDe(cerveza.ID.String(), pizza.ID.String()),
	})
	require.NoError(t, err)
	require.Equal(t, "9500", pedido.Total.String())

	var detalleCerveza string
	for _, d := range pedido.Detalles {
		if d.ProductoID == cerveza.ID.String() {
			detalleCerveza = d.ID
		}
	}
	require.NotEmpty(t, detalleCerveza)

	resp, err := e.pedidos.EliminarItem(context.Background(), uuid.MustParse(detalleCerveza))
	require.NoError(t, err)
	assert.False(t, resp.PedidoEliminado)
	assert.Equal(t, "7000", resp.NuevoTotal.String())
	assert.Equal(t, 10, e.stockDe(cerveza))
	assert.Equal(t, 9, e.stockDe(pizza))
}

func TestEliminarItem_UltimaLineaEliminaElPedido(t *testing.T) {
	e := nuevoEntorno()
	mesa := e.seedMesa(5)
	cafe := e.seedProducto("Cafe", 1500, 5)

	mesaID := mesa.ID.String()
	pedido, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		MesaID: &mesaID,
		Items:  itemsDe(cafe.ID.String()),
	})
	require.NoError(t, err)

	resp, err := e.pedidos.EliminarItem(context.Background(), uuid.MustParse(pedido.Detalles[0].ID))
	require.NoError(t, err)
	assert.True(t, resp.PedidoEliminado)
	assert.Equal(t, 5, e.stockDe(cafe))

	// The deleted pedido no longer counts toward the cuenta
	cuenta, err := e.pedidos.CuentaMesa(context.Background(), mesa.ID)
	require.NoError(t, err)
	assert.Empty(t, cuenta.Pedidos)
	assert.True(t, cuenta.Saldo.IsZero())

	// Emptying the tab by line removal never frees the mesa: the operator
	// still has to cobrar or cancelar explicitly.
	actualizada, err := e.mesaRepo.FindByID(context.Background(), mesa.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MesaOcupada, actualizada.Estado)
}

func TestEliminarItem_PedidoCobradoFalla(t *testing.T) {
	e := nuevoEntorno()
	mesa := e.seedMesa(6)
	cafe := e.seedProducto("Cafe", 1500, 5)

	mesaID := mesa.ID.String()
	pedido, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		MesaID: &mesaID,
		Items:  itemsDe(cafe.ID.String()),
	})
	require.NoError(t, err)

	_, err = e.cobros.CobrarMesa(context.Background(), mesa.ID, dto.CobrarRequest{MetodoPago: "Efectivo"})
	require.NoError(t, err)

	_, err = e.pedidos.EliminarItem(context.Background(), uuid.MustParse(pedido.Detalles[0].ID))
	assert.ErrorContains(t, err, "cobrado")
}

func TestCancelarMesa_RestauraStockYLiberaMesa(t *testing.T) {
	e := nuevoEntorno()
	mesa := e.seedMesa(7)
	cerveza := e.seedProducto("Cerveza Tirada", 2500, 10)

	mesaID := mesa.ID.String()
	_, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		MesaID: &mesaID,
		Items:  itemsDe(cerveza.ID.String(), cerveza.ID.String(), cerveza.ID.String()),
	})
	require.NoError(t, err)
	require.Equal(t, 7, e.stockDe(cerveza))

	require.NoError(t, e.pedidos.CancelarMesa(context.Background(), mesa.ID))

	assert.Equal(t, 10, e.stockDe(cerveza))
	actualizada, _ := e.mesaRepo.FindByID(context.Background(), mesa.ID)
	assert.Equal(t, model.MesaLibre, actualizada.Estado)

	cuenta, err := e.pedidos.CuentaMesa(context.Background(), mesa.ID)
	require.NoError(t, err)
	assert.Empty(t, cuenta.Pedidos)
}

func TestCancelarTicketBarra_RestauraStock(t *testing.T) {
	e := nuevoEntorno()
	fernet := e.seedProducto("Fernet con Coca", 4000, 6)

	pedido, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		Cliente: strPtr("Pedro"),
		Items:   itemsDe(fernet.ID.String(), fernet.ID.String()),
	})
	require.NoError(t, err)
	require.Equal(t, 4, e.stockDe(fernet))

	require.NoError(t, e.pedidos.CancelarTicketBarra(context.Background(), *pedido.TicketBarra))
	assert.Equal(t, 6, e.stockDe(fernet))

	tabs, err := e.pedidos.TabsBarra(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tabs)
}

func TestTabsBarra_AgrupaPorTicket(t *testing.T) {
	e := nuevoEntorno()
	fernet := e.seedProducto("Fernet con Coca", 4000, 20)

	juan, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		Cliente: strPtr("Juan"),
		Items:   itemsDe(fernet.ID.String()),
	})
	require.NoError(t, err)
	_, err = e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		Cliente:     strPtr("Juan"),
		TicketBarra: juan.TicketBarra,
		Items:       itemsDe(fernet.ID.String()),
	})
	require.NoError(t, err)
	_, err = e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		Cliente: strPtr("Maria"),
		Items:   itemsDe(fernet.ID.String()),
	})
	require.NoError(t, err)

	tabs, err := e.pedidos.TabsBarra(context.Background())
	require.NoError(t, err)
	require.Len(t, tabs, 2)
	assert.Equal(t, "Juan", tabs[0].Cliente)
	assert.Len(t, tabs[0].Pedidos, 2)
	assert.Equal(t, "8000", tabs[0].Saldo.String())
	assert.Equal(t, "Maria", tabs[1].Cliente)
	assert.Equal(t, "4000", tabs[1].Saldo.String())
}
