// Package main is the entry point for the telepilot HTTP trigger server.
package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"telepilot/internal/apps"
	"telepilot/internal/config"
	"telepilot/internal/logger"
	"telepilot/internal/observability"
	"telepilot/internal/runner"
	"telepilot/internal/scenario"
	"telepilot/internal/server"
	"telepilot/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Chargement de la configuration: %v", err)
	}

	st, err := store.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("Ouverture du repertoire de donnees: %v", err)
	}

	slogger := logger.New()
	metrics := observability.NewMetrics()

	engine := scenario.NewEngine(st, apps.NewResolver(st), slogger)
	run := runner.New(cfg, st, engine, slogger, metrics)

	handlers := server.NewHandlers(run, st, cfg.HTTPRequestTimeout, slogger)
	srv := server.New(fmt.Sprintf(":%d", cfg.HTTPPort), handlers, metrics, slogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Serveur arrete: %v", err)
	}
	slogger.Info("serveur arrete proprement")
}
