// Package main is the entry point for the FinCore evaluation service. It
// exposes the two stateless computation engines over HTTP: the Financial
// Engine (project valuation and risk analytics for a cash-flow series) and
// the Risk Engine (composite credit scoring for a loan request).
//
// The engines themselves are pure functions; everything stateful here is
// plumbing: configuration, logging, an optional response cache, and the
// HTTP server with graceful shutdown.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fincore/engines/internal/cache"
	"github.com/fincore/engines/internal/config"
	"github.com/fincore/engines/internal/server"
	"github.com/fincore/engines/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	var responseCache cache.Cache
	if cfg.RedisAddr != "" {
		log.Info().Str("addr", cfg.RedisAddr).Msg("Using Redis response cache")
		responseCache = cache.NewRedis(cfg.RedisAddr, log)
	} else {
		log.Info().Msg("Using in-memory response cache")
		responseCache = cache.NewMemory()
	}

	srv := server.New(server.Config{
		Log:      log,
		Port:     cfg.Port,
		DevMode:  cfg.DevMode,
		Cache:    responseCache,
		CacheTTL: cfg.CacheTTL,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Server stopped unexpectedly")
			os.Exit(1)
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("Shutdown complete")
}
