package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alejoalf/Sistema-bar/internal/config"
	"github.com/alejoalf/Sistema-bar/internal/infra"
	"github.com/alejoalf/Sistema-bar/internal/repository"
	"github.com/alejoalf/Sistema-bar/internal/repository/memoria"
	"github.com/alejoalf/Sistema-bar/internal/router"
	"github.com/alejoalf/Sistema-bar/internal/service"
	"github.com/alejoalf/Sistema-bar/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Backend selection: Postgres when DATABASE_URL is set, otherwise the
	// seeded in-memory store (demo mode).
	var db *gorm.DB
	var repos router.Repos
	if cfg.DemoMode() {
		store := memoria.NewStore()
		store.Seed()
		repos = router.Repos{
			Mesas:     store.Mesas(),
			Productos: store.Productos(),
			Pedidos:   store.Pedidos(),
			Caja:      store.Caja(),
			Usuarios:  store.Usuarios(),
		}
		log.Warn().Msg("DATABASE_URL empty — running in demo mode with in-memory data")
	} else {
		db, err = infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		repos = router.Repos{
			Mesas:     repository.NewMesaRepository(db),
			Productos: repository.NewProductoRepository(db),
			Pedidos:   repository.NewPedidoRepository(db),
			Caja:      repository.NewCajaRepository(db),
			Usuarios:  repository.NewUsuarioRepository(db),
		}
	}

	// Redis is optional: without it the carta cache and the async jobs are off.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
	} else {
		log.Warn().Msg("REDIS_URL empty — carta cache and async jobs disabled")
	}

	// Worker pool for async tasks (comanda PDFs, cierre mailing). Handlers are
	// wired here, the composition root, with full access to infrastructure.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := worker.NewDispatcher(rdb)
	if rdb != nil {
		mailer := infra.NewMailer(cfg)
		reporteSvc := service.NewReporteService(repos.Pedidos, repos.Caja, dispatcher)
		handlers := worker.Handlers{
			Comanda: worker.NewComandaWorker(repos.Pedidos, cfg.NombreLocal, cfg.PDFStoragePath),
			Cierre:  worker.NewCierreWorker(reporteSvc, mailer, cfg.NombreLocal, cfg.PDFStoragePath),
		}
		worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)
	}

	r := router.New(cfg, db, rdb, repos, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("%s backend listening on :%d", cfg.NombreLocal, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
