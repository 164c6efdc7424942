package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-explorer/backend/config"
	"github.com/pageza/recipe-explorer/backend/internal/logging"
	"github.com/pageza/recipe-explorer/backend/internal/router"
	"github.com/pageza/recipe-explorer/backend/internal/server"
	"github.com/pageza/recipe-explorer/backend/internal/service"
	"github.com/pageza/recipe-explorer/backend/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.New("info", "text").WithError(err).Fatal("Invalid configuration")
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	recipes, closeStore, err := store.Open(context.Background(), cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open storage")
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.WithError(err).Warn("Failed to close storage")
		}
	}()

	handler := router.SetupRouter(service.NewRecipeService(recipes), cfg, log)
	srv := server.New(cfg, handler, log)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.WithError(err).Error("Server error")
		}
		return
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received signal")
	}

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server shutdown error")
		return
	}
	log.Info("Server stopped")
}
