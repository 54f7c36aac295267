// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"regportal/internal/auth"
	"regportal/internal/content"
	"regportal/internal/platform/config"
	"regportal/internal/platform/httpserver"
	"regportal/internal/platform/logger"
	"regportal/internal/registration/handler"
	"regportal/internal/registration/metrics"
	"regportal/internal/registration/service"
	"regportal/internal/registration/store"
	"regportal/internal/registration/store/postgres"
	"regportal/internal/registration/store/workbook"
	"regportal/internal/siteconfig"
	httptransport "regportal/internal/transport/http"
)

func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	regStore, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Error("store setup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()
	if err := regStore.Init(ctx); err != nil {
		log.Error("store init failed", "error", err)
		os.Exit(1)
	}

	authService, err := auth.New(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.AdminPassword, cfg.JWTSigningKey)
	if err != nil {
		log.Error("auth setup failed", "error", err)
		os.Exit(1)
	}

	regService := service.New(regStore, log, metrics.New())
	contentStore := content.NewStore(filepath.Join(cfg.DataDir, "content"))
	siteStore := siteconfig.NewStore(filepath.Join(cfg.DataDir, "site_config.json"))

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:       log,
		Auth:         authService,
		AuthHandler:  auth.NewHandler(authService, log),
		Registration: handler.New(regService, log),
		Content:      content.NewHandler(contentStore, log),
		SiteConfig:   siteconfig.NewHandler(siteStore, log),
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting regportal", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// buildStore selects the registration store: Postgres when DATABASE_URL is
// set, otherwise the workbook file.
func buildStore(ctx context.Context, cfg config.Server) (store.Store, func(), error) {
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return postgres.New(pool), pool.Close, nil
	}
	return workbook.New(cfg.WorkbookPath), func() {}, nil
}
