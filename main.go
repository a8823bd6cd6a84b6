package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sanjay2518/FR/internal/config"
	"github.com/sanjay2518/FR/internal/logger"
	"github.com/sanjay2518/FR/internal/services"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set, bearer-token routes will reject every request")
	}

	store, identity, err := buildBackend(cfg, tokens)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	events, closeEvents := connectEvents(cfg)

	app := NewApp(Deps{
		Store:    store,
		Identity: identity,
		Tokens:   tokens,
		Events:   events,
	})

	log.WithFields(log.Fields{"port": cfg.AppPort, "driver": cfg.StoreDriver}).Info("Starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.WithError(err).Error("Error during Fiber shutdown")
	}
	if err := closeEvents(); err != nil {
		log.WithError(err).Error("Error closing RabbitMQ client")
	}
	if err := store.Close(); err != nil {
		log.WithError(err).Error("Error closing database")
	}
	log.Info("Server gracefully stopped")
}
