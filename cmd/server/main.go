// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

// Package main is the entry point for the Cordial server.
//
// Cordial is a self-hosted cocktail catalog with user-curated lists. Every
// user gets two system lists, Favorites and Your Creations, plus any number
// of custom lists; the server exposes a JSON surface for browsing the
// catalog, toggling favorites, and bulk list operations.
//
// Startup order:
//
//  1. Configuration: koanf v2 layered from defaults, config.yaml, and
//     CORDIAL_* environment variables
//  2. Logging: zerolog, configured from the logging section
//  3. Database: DuckDB with schema migrations applied at open
//  4. Auth: JWT session manager and login rate limiter
//  5. Supervisor tree: HTTP server in the api layer, the creations resync
//     worker in the maintenance layer
//
// The server shuts down gracefully on SIGINT and SIGTERM, draining in-flight
// requests within the configured shutdown timeout.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cordialhq/cordial/internal/api"
	"github.com/cordialhq/cordial/internal/auth"
	"github.com/cordialhq/cordial/internal/config"
	"github.com/cordialhq/cordial/internal/database"
	"github.com/cordialhq/cordial/internal/lists"
	"github.com/cordialhq/cordial/internal/logging"
	"github.com/cordialhq/cordial/internal/supervisor"
	"github.com/cordialhq/cordial/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config is not available yet; the default logger has to do.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Int("port", cfg.Server.Port).
		Msg("Starting Cordial")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}
	authMW := auth.NewMiddleware(jwtManager, &cfg.Security)
	authHandlers := auth.NewHandlers(jwtManager, &cfg.Security)
	defer authHandlers.Close()

	handler := api.NewHandler(db, cfg)
	router := api.NewRouter(handler, authMW, authHandlers, cfg).Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog speaks slog; bridge it to zerolog.
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}
	tree.AddAPIService(services.NewHTTPService(server, cfg.Server.ShutdownTimeout))

	if cfg.Catalog.ResyncInterval > 0 {
		creations := lists.NewCreations(db, cfg.Catalog.AnonymousUser)
		tree.AddMaintenanceService(services.NewResyncService(creations, cfg.Catalog.ResyncInterval))
		logging.Info().Dur("interval", cfg.Catalog.ResyncInterval).Msg("Creations resync worker enabled")
	} else {
		logging.Info().Msg("Creations resync worker disabled")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain the error channel so the tree has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("Stopped")
}
