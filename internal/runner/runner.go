// Package runner wires device discovery, connection and the scenario engine
// into one execution pipeline shared by the CLI, the HTTP server and the
// scheduler.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"telepilot/internal/config"
	"telepilot/internal/device"
	"telepilot/internal/logger"
	"telepilot/internal/observability"
	"telepilot/internal/scenario"
	"telepilot/internal/schedule"
	"telepilot/internal/store"
)

// Runner resolves a device selector and drives the engine against it.
type Runner struct {
	cfg     *config.Config
	store   *store.Store
	scanner device.Scanner
	engine  *scenario.Engine
	log     *slog.Logger
	metrics *observability.Metrics

	// connect is replaceable in tests.
	connect func(ctx context.Context, info device.Info, creds map[string]string) (device.Controller, error)
}

// New builds a runner. metrics may be nil when no instrumentation is wanted
// (plain CLI invocations).
func New(cfg *config.Config, st *store.Store, engine *scenario.Engine, log *slog.Logger, metrics *observability.Metrics) *Runner {
	r := &Runner{
		cfg:     cfg,
		store:   st,
		scanner: device.NewRemoteScanner(cfg.RemoteBin, cfg.ScanTimeout),
		engine:  engine,
		log:     log,
		metrics: metrics,
	}
	r.connect = func(ctx context.Context, info device.Info, creds map[string]string) (device.Controller, error) {
		return device.Connect(ctx, cfg.RemoteBin, info, creds, cfg.OperationTimeout)
	}
	return r
}

// Connect discovers devices, resolves the selector and opens a control
// session. The caller owns the returned controller and must Close it.
func (r *Runner) Connect(ctx context.Context, selector string) (device.Controller, error) {
	if selector == "" {
		selector = r.cfg.DefaultDevice
	}

	devices, err := r.scanner.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan du reseau: %w", err)
	}

	info, err := device.Select(devices, selector)
	if err != nil {
		return nil, err
	}

	allCreds, err := r.store.Credentials()
	if err != nil {
		return nil, err
	}

	return r.connect(ctx, info, allCreds[info.Identifier])
}

// RunScenario connects to the selected device and executes the named
// scenario, releasing the connection afterwards.
func (r *Runner) RunScenario(ctx context.Context, selector, name string) error {
	start := time.Now()
	err := r.runScenario(ctx, selector, name)
	if r.metrics != nil {
		r.metrics.ObserveRun(err == nil, time.Since(start).Seconds())
	}
	return err
}

func (r *Runner) runScenario(ctx context.Context, selector, name string) error {
	// The run id travels in the context so the engine's log lines correlate
	// with ours.
	ctx = logger.WithRunID(ctx, uuid.NewString())
	log := logger.FromContext(ctx, r.log)

	log.Info("execution demandee", "scenario", name, "device", selector)

	dev, err := r.Connect(ctx, selector)
	if err != nil {
		log.Error("connexion impossible", "device", selector, "error", err)
		return err
	}
	defer dev.Close()

	return r.engine.Run(ctx, dev, name)
}

// RunEntry implements the scheduler's entry runner: one fired schedule entry
// executed end to end.
func (r *Runner) RunEntry(ctx context.Context, entry schedule.Entry) error {
	return r.RunScenario(ctx, entry.Device, entry.Scenario)
}
