// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/nurture/internal/api"
	"github.com/tomtom215/nurture/internal/config"
	"github.com/tomtom215/nurture/internal/logging"
	"github.com/tomtom215/nurture/internal/metrics"
	"github.com/tomtom215/nurture/internal/recommend"
	"github.com/tomtom215/nurture/internal/recommend/catalog"
	"github.com/tomtom215/nurture/internal/supervisor"
	"github.com/tomtom215/nurture/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // sequential startup
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Str("backend", cfg.Interactions.Backend).
		Bool("events", cfg.Events.Enabled).
		Msg("Starting Nurture")

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Catalog.Path).Msg("Failed to load activity catalog")
	}
	logging.Info().
		Int("activities", cat.Len()).
		Int("tags", cat.Vocabulary().Len()).
		Msg("Activity catalog loaded")

	ilog, err := openInteractionLog(&cfg.Interactions)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open interaction log")
	}
	defer func() {
		if err := ilog.log.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing interaction log")
		}
	}()

	engine, err := recommend.NewEngine(&cfg.Recommend, cat, ilog.log, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracked := engine.LoadPopularity(ctx)
	metrics.RecordPopularityRebuild(tracked)
	logging.Info().Int("activities", tracked).Msg("Popularity rebuilt from interaction log")

	tree := supervisor.New(logging.NewSlogLogger(logging.Logger()), supervisor.Config{
		FailureThreshold: cfg.Supervisor.FailureThreshold,
		FailureDecay:     cfg.Supervisor.FailureDecay,
		FailureBackoff:   cfg.Supervisor.FailureBackoff,
		ShutdownTimeout:  cfg.Supervisor.ShutdownTimeout,
	})
	mustAdd := func(layer supervisor.Layer, svc suture.Service) {
		if _, err := tree.Add(layer, svc); err != nil {
			logging.Fatal().Err(err).Str("layer", layer.String()).Msg("Failed to add service")
		}
	}

	handlerOpts := []api.HandlerOption{
		api.WithVersion(version),
		api.WithRequestTimeout(cfg.Server.WriteTimeout),
	}
	if ilog.breaker != nil {
		handlerOpts = append(handlerOpts, api.WithLogState(ilog.breaker.State))
	}

	if cfg.Events.Enabled {
		bus, recorder := newEventBus(&cfg.Events)
		defer func() {
			if err := bus.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event bus")
			}
		}()
		engine.SetPublisher(bus)
		handlerOpts = append(handlerOpts, api.WithFeedbackSummaries(recorder))
		mustAdd(supervisor.LayerMessaging, services.NewEventRouterService(eventRouterFactory(&cfg.Events, bus, recorder)))
		logging.Info().Msg("Event router added to supervisor tree")
	}

	if ilog.badger != nil {
		mustAdd(supervisor.LayerData, services.NewGCService(ilog.badger, cfg.Interactions.GCInterval))
		logging.Info().Dur("interval", cfg.Interactions.GCInterval).Msg("Badger GC added to supervisor tree")
	}

	router := api.NewRouter(api.NewHandler(engine, handlerOpts...), api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		CORSAllowedMethods: api.DefaultChiMiddlewareConfig().CORSAllowedMethods,
		CORSAllowedHeaders: api.DefaultChiMiddlewareConfig().CORSAllowedHeaders,
		CORSExposedHeaders: api.DefaultChiMiddlewareConfig().CORSExposedHeaders,
		CORSMaxAge:         api.DefaultChiMiddlewareConfig().CORSMaxAge,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	}))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	mustAdd(supervisor.LayerAPI, services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().
		Strs("data", tree.Services(supervisor.LayerData)).
		Strs("messaging", tree.Services(supervisor.LayerMessaging)).
		Strs("api", tree.Services(supervisor.LayerAPI)).
		Msg("Starting supervisor tree")
	if err := <-tree.ServeBackground(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor shutdown error")
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within timeout")
		}
	}

	logging.Info().Msg("Nurture stopped")
}
