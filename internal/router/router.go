package router

import (
	"time"

	"github.com/alejoalf/Sistema-bar/internal/config"
	"github.com/alejoalf/Sistema-bar/internal/handler"
	"github.com/alejoalf/Sistema-bar/internal/middleware"
	"github.com/alejoalf/Sistema-bar/internal/repository"
	"github.com/alejoalf/Sistema-bar/internal/service"
	"github.com/alejoalf/Sistema-bar/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Repos bundles the repository set the router wires into services. Built in
// main from either the Postgres or the in-memory backend.
type Repos struct {
	Mesas     repository.MesaRepository
	Productos repository.ProductoRepository
	Pedidos   repository.PedidoRepository
	Caja      repository.CajaRepository
	Usuarios  repository.UsuarioRepository
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, repos Repos, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(repos.Usuarios, cfg)
	productoSvc := service.NewProductoService(repos.Productos, rdb)
	mesaSvc := service.NewMesaService(repos.Mesas, repos.Pedidos)
	pedidoSvc := service.NewPedidoService(repos.Pedidos, repos.Productos, repos.Mesas, dispatcher)
	cobroSvc := service.NewCobroService(repos.Pedidos, repos.Mesas)
	cajaSvc := service.NewCajaService(repos.Caja)
	reporteSvc := service.NewReporteService(repos.Pedidos, repos.Caja, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	mesasH := handler.NewMesasHandler(mesaSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	cobrosH := handler.NewCobrosHandler(cobroSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc, cfg.NombreLocal, cfg.PDFStoragePath)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Public menu — no auth required, cached
	r.GET("/v1/carta", productosH.Carta)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole("mozo", "cajero", "administrador")
	cobranza := middleware.RequireRole("cajero", "administrador")
	admin := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		// Salón
		v1.GET("/mesas", todos, mesasH.Listar)
		v1.POST("/mesas/:id/abrir", todos, mesasH.Abrir)
		v1.POST("/mesas/:id/cerrar", cobranza, mesasH.Cerrar)
		v1.GET("/mesas/:id/cuenta", todos, pedidosH.CuentaMesa)
		v1.POST("/mesas/:id/cobrar", cobranza, cobrosH.CobrarMesa)
		v1.POST("/mesas/:id/cancelar", cobranza, pedidosH.CancelarMesa)

		// Pedidos
		v1.POST("/pedidos", todos, pedidosH.Crear)
		v1.DELETE("/pedidos/items/:id", todos, pedidosH.EliminarItem)
		v1.POST("/pedidos/:id/cobrar", cobranza, cobrosH.CobrarPedido)

		// Barra
		v1.GET("/barra", todos, pedidosH.TabsBarra)
		v1.GET("/barra/:ticket/cuenta", todos, pedidosH.CuentaTicket)
		v1.POST("/barra/:ticket/cobrar", cobranza, cobrosH.CobrarTicketBarra)
		v1.POST("/barra/:ticket/cancelar", cobranza, pedidosH.CancelarTicketBarra)

		// Caja
		caja := v1.Group("/caja", cobranza)
		{
			caja.POST("/extracciones", cajaH.RegistrarExtraccion)
			caja.GET("/extracciones", cajaH.ListarExtracciones)
		}

		// Reportes
		reportes := v1.Group("/reportes", cobranza)
		{
			reportes.GET("/historial", reportesH.Historial)
			reportes.GET("/cierre", reportesH.Cierre)
			reportes.GET("/cierre/pdf", reportesH.CierrePDF)
			reportes.POST("/cierre/enviar", reportesH.EnviarCierre)
		}

		// Productos — lectura para todos los roles, escritura solo administrador
		v1.GET("/productos", todos, productosH.Listar)
		v1.GET("/productos/:id", todos, productosH.Obtener)
		v1.PATCH("/productos/:id/stock", cobranza, productosH.AjustarStock)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
		}

		// Usuarios
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
