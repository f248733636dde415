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

func TestRegistrarExtraccion(t *testing.T) {
	e := nuevoEntorno()
	uid := uuid.New()
	nombre := "Cajero Turno Noche"

	resp, err := e.caja.RegistrarExtraccion(context.Background(), &uid, &nombre, dto.RegistrarExtraccionRequest{
		Monto:  decimal.NewFromInt(15000),
		Motivo: "pago proveedor de hielo",
	})
	require.NoError(t, err)
	assert.Equal(t, "extraccion", resp.Tipo)
	assert.Equal(t, "15000", resp.Monto.String())
	assert.Equal(t, "pago proveedor de hielo", resp.Motivo)
	require.NotNil(t, resp.Usuario)
	assert.Equal(t, nombre, *resp.Usuario)
}

func TestListarExtracciones_MasRecientePrimero(t *testing.T) {
	e := nuevoEntorno()

	for _, motivo := range []string{"cambio", "propinas", "proveedor"} {
		_, err := e.caja.RegistrarExtraccion(context.Background(), nil, nil, dto.RegistrarExtraccionRequest{
			Monto:  decimal.NewFromInt(1000),
			Motivo: motivo,
		})
		require.NoError(t, err)
	}

	extracciones, err := e.caja.ListarExtracciones(context.Background())
	require.NoError(t, err)
	require.Len(t, extracciones, 3)
	assert.Equal(t, "proveedor", extracciones[0].Motivo)
	assert.Equal(t, "cambio", extracciones[2].Motivo)
}
