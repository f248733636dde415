package tests

import (
	"context"
	"testing"
	"time"

	"github.com/alejoalf/Sistema-bar/internal/dto"
	"github.com/alejoalf/Sistema-bar/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hoy() string { return time.Now().Local().Format("2006-01-02") }

func TestHistorial_SoloCobradosMasRecientePrimero(t *testing.T) {
	e := nuevoEntorno()
	mesa := e.seedMesa(1)
	cerveza := e.seedProducto("Cerveza Tirada", 2500, 20)

	mesaID := mesa.ID.String()
	_, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		MesaID: &mesaID,
		Items:  itemsDe(cerveza.ID.String()),
	})
	require.NoError(t, err)
	_, err = e.cobros.CobrarMesa(context.Background(), mesa.ID, dto.CobrarRequest{MetodoPago: "Efectivo"})
	require.NoError(t, err)

	// An open pedido must not appear in the history
	abierto, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		Cliente: strPtr("Marta"),
		Items:   itemsDe(cerveza.ID.String()),
	})
	require.NoError(t, err)

	historial, err := e.reportes.Historial(context.Background())
	require.NoError(t, err)
	require.Len(t, historial, 1)
	assert.NotEqual(t, abierto.ID, historial[0].ID)
	require.NotNil(t, historial[0].NumeroMesa)
	assert.Equal(t, 1, *historial[0].NumeroMesa)
}

func TestCierre_AgregaPorDia(t *testing.T) {
	e := nuevoEntorno()
	mesa := e.seedMesa(2)
	cerveza := e.seedProducto("Cerveza Tirada", 2500, 20)
	pizza := e.seedProducto("Pizza Muzzarella", 7000, 20)

	mesaID := mesa.ID.String()
	_, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		MesaID: &mesaID,
		Items:  itemsDe(cerveza.ID.String(), cerveza.ID.String(), pizza.ID.String()),
	})
	require.NoError(t, err)
	_, err = e.cobros.CobrarMesa(context.Background(), mesa.ID, dto.CobrarRequest{MetodoPago: "Efectivo"})
	require.NoError(t, err)

	// A barra tab settled the same day
	barra, err := e.pedidos.Crear(context.Background(), dto.CrearPedidoRequest{
		Cliente: strPtr("Sofia"),
		Items:   itemsDe(cerveza.ID.String()),
	})
	require.NoError(t, err)
	_, err = e.cobros.CobrarTicketBarra(context.Background(), *barra.TicketBarra, dto.CobrarRequest{MetodoPago: "Tarjeta"})
	require.NoError(t, err)

	// One extraction
	_, err = e.caja.RegistrarExtraccion(context.Background(), nil, nil, dto.RegistrarExtraccionRequest{
		Monto:  decimal.NewFromInt(3000),
		Motivo: "proveedor",
	})
	require.NoError(t, err)

	cierre, err := e.reportes.Cierre(context.Background())
	require.NoError(t, err)
	require.Len(t, cierre.Dias, 1)

	dia := cierre.Dias[0]
	assert.Equal(t, hoy(), dia.Fecha)
	// 2500×2 + 7000 + 2500 = 14500
	assert.Equal(t, "14500", dia.TotalRecaudado.String())
	assert.Equal(t, 2, dia.CantidadPedidos)
	// One mesa + one barra ticket
	assert.Equal(t, 2, dia.CuentasCerradas)
	assert.Equal(t, "3000", dia.TotalExtraido.String())
	assert.Equal(t, "11500", dia.Neto.String())

	// Ranking: cerveza 3 units, pizza 1
	require.Len(t, dia.Ranking, 2)
	assert.Equal(t, "Cerveza Tirada", dia.Ranking[0].Nombre)
	assert.Equal(t, 3, dia.Ranking[0].Cantidad)
	assert.Equal(t, "7500", dia.Ranking[0].Recaudado.String())
	assert.Equal(t, "Pizza Muzzarella", dia.Ranking[1].Nombre)
}

func TestCierre_VariosDias(t *testing.T) {
	e := nuevoEntorno()
	mesa := e.seedMesa(4)
	cerveza := e.seedProducto("Cerveza Tirada", 2500, 20)

	ahora := time.Now().Local()
	ayer := ahora.AddDate(0, 0, -1)

	seedCobrado := func(creado time.Time, mesaID *uuid.UUID, ticket *int, lineas int) {
		total := decimal.Zero
		detalles := make([]model.DetallePedido, 0, lineas)
		for i := 0; i < lineas; i++ {
			d := model.DetallePedido{ProductoID: cerveza.ID, Cantidad: 1, PrecioUnitario: cerveza.Precio}
			total = total.Add(d.Subtotal())
			detalles = append(detalles, d)
		}
		metodo := "Efectivo"
		require.NoError(t, e.pedRepo.CreateTx(nil, &model.Pedido{
			MesaID:      mesaID,
			TicketBarra: ticket,
			Estado:      model.PedidoCobrado,
			MetodoPago:  &metodo,
			Total:       total,
			CreatedAt:   creado,
			Detalles:    detalles,
		}))
	}

	ticket := 7
	seedCobrado(ayer, &mesa.ID, nil, 2)  // ayer: 5000 en mesa
	seedCobrado(ahora, nil, &ticket, 1)  // hoy: 2500 en barra

	require.NoError(t, e.cajaRepo.CreateMovimiento(context.Background(), &model.MovimientoCaja{
		Tipo:      model.MovimientoExtraccion,
		Monto:     decimal.NewFromInt(1000),
		Motivo:    "proveedor",
		CreatedAt: ayer,
	}))

	cierre, err := e.reportes.Cierre(context.Background())
	require.NoError(t, err)
	require.Len(t, cierre.Dias, 2)

	// Newest day first
	assert.Equal(t, ahora.Format("2006-01-02"), cierre.Dias[0].Fecha)
	assert.Equal(t, ayer.Format("2006-01-02"), cierre.Dias[1].Fecha)

	assert.Equal(t, "2500", cierre.Dias[0].TotalRecaudado.String())
	assert.Equal(t, 1, cierre.Dias[0].CantidadPedidos)
	assert.True(t, cierre.Dias[0].TotalExtraido.IsZero())

	assert.Equal(t, "5000", cierre.Dias[1].TotalRecaudado.String())
	assert.Equal(t, "1000", cierre.Dias[1].TotalExtraido.String())
	assert.Equal(t, "4000", cierre.Dias[1].Neto.String())

	// Bucketed revenue sums to the unbucketed historial total
	historial, err := e.reportes.Historial(context.Background())
	require.NoError(t, err)
	totalHistorial := decimal.Zero
	for _, v := range historial {
		totalHistorial = totalHistorial.Add(v.Total)
	}
	totalBuckets := decimal.Zero
	for _, dia := range cierre.Dias {
		totalBuckets = totalBuckets.Add(dia.TotalRecaudado)
	}
	assert.True(t, totalBuckets.Equal(totalHistorial))

	// Reading is idempotent: a second call returns identical aggregates
	otra, err := e.reportes.Cierre(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cierre, otra)

	// CierreDelDia picks the right bucket among several
	dia, err := e.reportes.CierreDelDia(context.Background(), ayer.Format("2006-01-02"))
	require.NoError(t, err)
	assert.Equal(t, "5000", dia.TotalRecaudado.String())
	assert.Equal(t, "4000", dia.Neto.String())
}

func TestCierre_ExtraccionSinVentas(t *testing.T) {
	e := nuevoEntorno()
	_, err := e.caja.RegistrarExtraccion(context.Background(), nil, nil, dto.RegistrarExtraccionRequest{
		Monto:  decimal.NewFromInt(500),
		Motivo: "cambio",
	})
	require.NoError(t, err)

	cierre, err := e.reportes.Cierre(context.Background())
	require.NoError(t, err)
	require.Len(t, cierre.Dias, 1)
	assert.True(t, cierre.Dias[0].TotalRecaudado.IsZero())
	assert.Equal(t, "500", cierre.Dias[0].TotalExtraido.String())
	assert.Equal(t, "-500", cierre.Dias[0].Neto.String())
}

func TestCierreDelDia_SinActividadDevuelveCero(t *testing.T) {
	e := nuevoEntorno()
	dia, err := e.reportes.CierreDelDia(context.Background(), "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", dia.Fecha)
	assert.True(t, dia.TotalRecaudado.IsZero())
	assert.Zero(t, dia.CantidadPedidos)
	assert.Empty(t, dia.Ranking)
}
