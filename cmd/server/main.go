// Package main is the entry point for the lucky money game server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"lixi-server/internal/config"
	"lixi-server/internal/pkg/db"
	"lixi-server/internal/realtime"
	"lixi-server/internal/repository"
	"lixi-server/internal/server"
	"lixi-server/internal/service"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Pick the room store: Postgres when configured, in-memory otherwise.
	var repo repository.RoomRepository
	if cfg.Database.Enabled {
		dbPool, err := db.NewPool(ctx, &cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer dbPool.Close()

		pgRepo := repository.NewPostgresRoomRepository(dbPool.Pool)
		if err := pgRepo.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
		log.Info().Msg("Database migrations completed")
		repo = pgRepo
	} else {
		log.Info().Msg("Database disabled, using in-memory room store")
		repo = repository.NewMemoryRoomRepository()
	}

	hub := realtime.NewHub()
	rooms := service.NewRoomService(repo, hub, cfg.Game)

	srv := server.New(cfg, rooms)

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	srv.Stop()
	log.Info().Msg("Server stopped gracefully")
}
