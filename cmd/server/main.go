// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/inkstone-labs/qtstore/internal/config"
	"github.com/inkstone-labs/qtstore/internal/localstore"
	"github.com/inkstone-labs/qtstore/internal/mockapi"
	"github.com/inkstone-labs/qtstore/internal/scheduler"
)

const shutdownTimeout = 30 * time.Second

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	store, err := localstore.Open(cfg.Store.Filename)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open local store")
	}
	defer store.Close()

	data := mockapi.NewDataset()
	gateway, err := mockapi.New(data, store, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build gateway rule table")
	}

	sched, err := scheduler.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	if err := sched.RegisterTrendRoll(data); err != nil {
		log.Fatal().Err(err).Msg("Failed to register trend roll job")
	}
	sched.Start()
	defer func() {
		if err := sched.Stop(); err != nil {
			log.Error().Err(err).Msg("Scheduler shutdown failed")
		}
	}()

	srv := newServer(cfg, gateway)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Run server
	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
