package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/elizavetaa0/web-larek-frontend/internal/config"
	"github.com/elizavetaa0/web-larek-frontend/internal/server/rest"
	"github.com/elizavetaa0/web-larek-frontend/internal/server/storage"
	"github.com/elizavetaa0/web-larek-frontend/pkg/logger"
)

func main() {
	log, err := logger.New("storefront-server")
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal("loading config", zap.Error(err))
	}

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		log.Fatal("opening database", zap.Error(err))
	}
	defer repo.Close()

	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal("running migrations", zap.Error(err))
	}
	log.Info("migrations completed")

	handler := rest.NewHandler(repo, log)
	router := rest.NewRouter(handler, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("storefront server listening", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
