// Package main is the entry point for the telepilot schedule daemon.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"telepilot/internal/apps"
	"telepilot/internal/config"
	"telepilot/internal/logger"
	"telepilot/internal/observability"
	"telepilot/internal/runner"
	"telepilot/internal/scenario"
	"telepilot/internal/scheduler"
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

	sched := scheduler.New(st, run, slogger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Dedicated metrics listener, separate from the trigger server.
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		addr := fmt.Sprintf(":%d", cfg.MetricsPort)
		slogger.Info("metriques du planificateur exposees", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			slogger.Error("serveur de metriques arrete", "error", err)
		}
	}()

	if err := sched.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Planificateur arrete: %v", err)
	}
	slogger.Info("planificateur arrete proprement")
}
