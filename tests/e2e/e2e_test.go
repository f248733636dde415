//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/alejoalf/Sistema-bar/internal/config"
	"github.com/alejoalf/Sistema-bar/internal/infra"
	"github.com/alejoalf/Sistema-bar/internal/model"
	"github.com/alejoalf/Sistema-bar/internal/repository"
	"github.com/alejoalf/Sistema-bar/internal/router"
	"github.com/alejoalf/Sistema-bar/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Setup ────────────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("sistemabar_test"),
		tcPostgres.WithUsername("sistemabar"),
		tcPostgres.WithPassword("sistemabar"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "clave-de-prueba",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		NombreLocal:        "Bar de Prueba",
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin user
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-e2e-123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Usuario{
		Username:     "admin",
		Nombre:       "Admin E2E",
		PasswordHash: string(hash),
		Rol:          "administrador",
		Activo:       true,
	}).Error)

	repos := router.Repos{
		Mesas:     repository.NewMesaRepository(db),
		Productos: repository.NewProductoRepository(db),
		Pedidos:   repository.NewPedidoRepository(db),
		Caja:      repository.NewCajaRepository(db),
		Usuarios:  repository.NewUsuarioRepository(db),
	}
	r := router.New(cfg, db, rdb, repos, worker.NewDispatcher(rdb))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "admin-e2e-123"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, db: db, token: loginBody.AccessToken}
}

func (e *testEnv) seedMesa(t *testing.T, numero int) model.Mesa {
	t.Helper()
	mesa := model.Mesa{NumeroMesa: numero, Sector: "salon", Capacidad: 4, Estado: model.MesaLibre}
	require.NoError(t, e.db.Create(&mesa).Error)
	return mesa
}

func (e *testEnv) crearProducto(t *testing.T, nombre string, precio float64, stock int) string {
	t.Helper()
	resp := do(t, e.server, "POST", "/v1/productos",
		jsonBody(t, map[string]any{
			"nombre":       nombre,
			"categoria":    "bebidas",
			"precio":       precio,
			"stock_actual": stock,
		}), e.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &prod)
	return prod.ID
}

func (e *testEnv) stockDe(t *testing.T, productoID string) int {
	t.Helper()
	resp := do(t, e.server, "GET", "/v1/productos/"+productoID, nil, e.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prod struct {
		StockActual int `json:"stock_actual"`
	}
	decodeJSON(t, resp, &prod)
	return prod.StockActual
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Full mesa cycle: pedido → eliminar item → cobrar → historial.
func TestE2E_CicloMesa(t *testing.T) {
	env := setupTestEnv(t)
	mesa := env.seedMesa(t, 1)

	cerveza := env.crearProducto(t, "Cerveza Tirada", 2500, 10)
	pizza := env.crearProducto(t, "Pizza Muzzarella", 7000, 5)

	// Pedido with two lines of cerveza and one pizza
	pedidoResp := do(t, env.server, "POST", "/v1/pedidos",
		jsonBody(t, map[string]any{
			"mesa_id": mesa.ID.String(),
			"items": []map[string]any{
				{"producto_id": cerveza},
				{"producto_id": cerveza},
				{"producto_id": pizza},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, pedidoResp.StatusCode)
	var pedido struct {
		ID       string `json:"id"`
		Estado   string `json:"estado"`
		Total    string `json:"total"`
		Detalles []struct {
			ID         string `json:"id"`
			ProductoID string `json:"producto_id"`
		} `json:"detalles"`
	}
	decodeJSON(t, pedidoResp, &pedido)
	assert.Equal(t, "pendiente", pedido.Estado)
	assert.Equal(t, "12000", pedido.Total)
	require.Len(t, pedido.Detalles, 3)
	assert.Equal(t, 8, env.stockDe(t, cerveza))

	// Mesa now shows ocupada with the open saldo
	mesasResp := do(t, env.server, "GET", "/v1/mesas", nil, env.token)
	require.Equal(t, http.StatusOK, mesasResp.StatusCode)
	var mesas []struct {
		ID              string `json:"id"`
		Estado          string `json:"estado"`
		PedidosAbiertos int    `json:"pedidos_abiertos"`
		Saldo           string `json:"saldo"`
	}
	decodeJSON(t, mesasResp, &mesas)
	require.Len(t, mesas, 1)
	assert.Equal(t, "ocupada", mesas[0].Estado)
	assert.Equal(t, 1, mesas[0].PedidosAbiertos)
	assert.Equal(t, "12000", mesas[0].Saldo)

	// Remove one cerveza line: total drops, stock comes back
	var lineaCerveza string
	for _, d := range pedido.Detalles {
		if d.ProductoID == cerveza {
			lineaCerveza = d.ID
			break
		}
	}
	require.NotEmpty(t, lineaCerveza)
	delResp := do(t, env.server, "DELETE", "/v1/pedidos/items/"+lineaCerveza, nil, env.token)
	require.Equal(t, http.StatusOK, delResp.StatusCode)
	var eliminado struct {
		PedidoEliminado bool   `json:"pedido_eliminado"`
		NuevoTotal      string `json:"nuevo_total"`
	}
	decodeJSON(t, delResp, &eliminado)
	assert.False(t, eliminado.PedidoEliminado)
	assert.Equal(t, "9500", eliminado.NuevoTotal)
	assert.Equal(t, 9, env.stockDe(t, cerveza))

	// Cobrar the mesa
	cobroResp := do(t, env.server, "POST", "/v1/mesas/"+mesa.ID.String()+"/cobrar",
		jsonBody(t, map[string]any{"metodo_pago": "Tarjeta"}), env.token)
	require.Equal(t, http.StatusOK, cobroResp.StatusCode)
	var cobro struct {
		PedidosCobrados int    `json:"pedidos_cobrados"`
		TotalCobrado    string `json:"total_cobrado"`
		MesaLiberada    bool   `json:"mesa_liberada"`
	}
	decodeJSON(t, cobroResp, &cobro)
	assert.Equal(t, 1, cobro.PedidosCobrados)
	assert.Equal(t, "9500", cobro.TotalCobrado)
	assert.True(t, cobro.MesaLiberada)

	// Settled stock is not restored
	assert.Equal(t, 9, env.stockDe(t, cerveza))
	assert.Equal(t, 4, env.stockDe(t, pizza))

	// Historial has the cobrado pedido
	histResp := do(t, env.server, "GET", "/v1/reportes/historial", nil, env.token)
	require.Equal(t, http.StatusOK, histResp.StatusCode)
	var hist []struct {
		ID         string `json:"id"`
		MetodoPago string `json:"metodo_pago"`
	}
	decodeJSON(t, histResp, &hist)
	require.Len(t, hist, 1)
	assert.Equal(t, pedido.ID, hist[0].ID)
	assert.Equal(t, "Tarjeta", hist[0].MetodoPago)
}

// Barra tabs: ticket allocation, listing, settle, double settle rejected.
func TestE2E_TicketBarra(t *testing.T) {
	env := setupTestEnv(t)
	fernet := env.crearProducto(t, "Fernet con Coca", 4000, 10)

	crear := func(cliente string) int {
		resp := do(t, env.server, "POST", "/v1/pedidos",
			jsonBody(t, map[string]any{
				"cliente": cliente,
				"items":   []map[string]any{{"producto_id": fernet}},
			}), env.token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var p struct {
			TicketBarra int `json:"ticket_barra"`
		}
		decodeJSON(t, resp, &p)
		return p.TicketBarra
	}

	t1 := crear("Juan")
	t2 := crear("Juan") // same name, distinct tab
	assert.NotEqual(t, t1, t2)

	tabsResp := do(t, env.server, "GET", "/v1/barra", nil, env.token)
	require.Equal(t, http.StatusOK, tabsResp.StatusCode)
	var tabs []struct {
		TicketBarra int    `json:"ticket_barra"`
		Cliente     string `json:"cliente"`
		Saldo       string `json:"saldo"`
	}
	decodeJSON(t, tabsResp, &tabs)
	require.Len(t, tabs, 2)

	cobroResp := do(t, env.server, "POST", "/v1/barra/"+strconv.Itoa(t1)+"/cobrar",
		jsonBody(t, map[string]any{"metodo_pago": "Mercado Pago"}), env.token)
	require.Equal(t, http.StatusOK, cobroResp.StatusCode)

	// Settling the same ticket again fails
	again := do(t, env.server, "POST", "/v1/barra/"+strconv.Itoa(t1)+"/cobrar",
		jsonBody(t, map[string]any{"metodo_pago": "Efectivo"}), env.token)
	defer again.Body.Close()
	assert.Equal(t, http.StatusBadRequest, again.StatusCode)
}

// The public carta needs no token and hides stock.
func TestE2E_CartaPublica(t *testing.T) {
	env := setupTestEnv(t)
	env.crearProducto(t, "Papas Fritas", 3500, 8)

	resp := do(t, env.server, "GET", "/v1/carta", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var carta []map[string]any
	decodeJSON(t, resp, &carta)
	require.Len(t, carta, 1)
	assert.Equal(t, "Papas Fritas", carta[0]["nombre"])
	_, tieneStock := carta[0]["stock_actual"]
	assert.False(t, tieneStock)
}
