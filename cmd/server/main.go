package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/realty-marketplace/internal/config"
	"github.com/maxviazov/realty-marketplace/internal/gate"
	"github.com/maxviazov/realty-marketplace/internal/handler"
	"github.com/maxviazov/realty-marketplace/internal/logger"
	"github.com/maxviazov/realty-marketplace/internal/repository"
	"github.com/maxviazov/realty-marketplace/internal/repository/postgres"
	"github.com/maxviazov/realty-marketplace/internal/service"
	"github.com/maxviazov/realty-marketplace/internal/web"
)

func main() {
	configPath := "config.yaml"
	if p := os.Getenv("APP_CONFIG"); p != "" {
		configPath = p
	}

	// Load application config
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := repository.New(ctx, cfg.Postgres, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Postgres connection failed")
	}
	defer repo.Close()

	pool := repo.Pool()
	tx := postgres.NewTxManager(pool)
	properties := postgres.NewPropertyRepository(pool)
	brokers := postgres.NewBrokerRepository(pool)

	svc := handler.Services{
		Properties:    service.NewPropertyService(properties, brokers, tx, appLogger),
		Brokers:       service.NewBrokerService(brokers, properties, tx, appLogger),
		News:          service.NewNewsService(postgres.NewNewsRepository(pool), tx, appLogger),
		ExchangeRates: service.NewExchangeRateService(postgres.NewExchangeRateRepository(pool), appLogger),
	}

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestID(), handler.RequestLogger(appLogger))
	r.Use(gate.Middleware(
		gate.Default(gate.TrailingSlashRouter),
		gate.WithSkipPrefixes(append(handler.RootPrefixes(), web.StaticPrefix)...),
		gate.WithLogger(appLogger),
	))

	handler.Register(r, repo, svc)

	apiBase := cfg.Web.APIBaseURL
	if apiBase == "" {
		apiBase = "http://127.0.0.1:" + strconv.Itoa(cfg.App.Port)
	}
	site, err := web.New(web.NewClient(apiBase, cfg.Web.APITimeout), cfg.Web, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Templates failed to load")
	}
	site.Register(r)
	r.NoRoute(site.NotFound)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: r,
	}

	go func() {
		appLogger.Info().Str("addr", srv.Addr).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
