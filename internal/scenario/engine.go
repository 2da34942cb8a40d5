package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"telepilot/internal/device"
	"telepilot/internal/logger"
)

// MaxScenarioDepth bounds sub-scenario recursion. Cycles are not detected by
// name: a self-referential scenario runs this many nested levels, then fails.
const MaxScenarioDepth = 10

// ErrMaxDepth is returned when sub-scenario nesting exceeds MaxScenarioDepth.
var ErrMaxDepth = errors.New("profondeur maximale de scenarios atteinte")

// homeDoubleGap separates the two presses of the app-switcher gesture.
const homeDoubleGap = 150 * time.Millisecond

// swipeGestures maps swipe actions to pad coordinates
// (0 = top/left, 1000 = bottom/right).
var swipeGestures = map[Action]device.Gesture{
	ActionSwipeUp:    {StartX: 500, StartY: 700, EndX: 500, EndY: 300, DurationMS: 300},
	ActionSwipeDown:  {StartX: 500, StartY: 300, EndX: 500, EndY: 700, DurationMS: 300},
	ActionSwipeLeft:  {StartX: 700, StartY: 500, EndX: 300, EndY: 500, DurationMS: 300},
	ActionSwipeRight: {StartX: 300, StartY: 500, EndX: 700, EndY: 500, DurationMS: 300},
}

// Registry supplies the validated scenario set. The engine fetches one
// snapshot per run and never reloads mid-execution.
type Registry interface {
	Scenarios() (Set, error)
}

// AppResolver resolves an app alias to a bundle identifier.
type AppResolver interface {
	Bundle(name string) string
}

// Engine interprets scenario steps against a connected device. Failures are
// terminal for the current run: no step is ever retried.
type Engine struct {
	registry Registry
	apps     AppResolver
	log      *slog.Logger

	// sleep is replaceable in tests; the default honors ctx cancellation.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewEngine builds an engine over a scenario registry and app resolver.
func NewEngine(registry Registry, apps AppResolver, log *slog.Logger) *Engine {
	return &Engine{
		registry: registry,
		apps:     apps,
		log:      log,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Run executes the named scenario against dev. A nil return means every step,
// including all nested sub-scenario steps, succeeded. The scenario set is
// loaded once at the start of the run and used as an immutable snapshot.
func (e *Engine) Run(ctx context.Context, dev device.Controller, name string) error {
	set, err := e.registry.Scenarios()
	if err != nil {
		e.log.Error("chargement des scenarios impossible", "error", err)
		return fmt.Errorf("chargement des scenarios: %w", err)
	}

	sc, ok := set[name]
	if !ok {
		e.log.Error("scenario non trouve", "scenario", name)
		return fmt.Errorf("scenario '%s' non trouve. Scenarios disponibles: %s",
			name, strings.Join(set.Names(), ", "))
	}

	// Reuse the caller's run id so one run correlates across layers; a direct
	// caller without one gets a fresh id.
	runID := logger.RunIDFromContext(ctx)
	if runID == "" {
		runID = uuid.NewString()
	}
	log := e.log.With("run_id", runID, "scenario", name)
	log.Info("execution du scenario", "description", sc.Description, "etapes", len(sc.Steps))

	if err := e.executeSteps(ctx, log, dev, sc, set, 0); err != nil {
		log.Error("scenario echoue", "error", err)
		return err
	}

	log.Info("scenario termine")
	return nil
}

// executeSteps runs a scenario's steps in document order, stopping at the
// first failure and reporting its 1-based index.
func (e *Engine) executeSteps(ctx context.Context, log *slog.Logger, dev device.Controller, sc Scenario, set Set, depth int) error {
	for i, step := range sc.Steps {
		if err := e.executeStep(ctx, log, dev, step, i+1, set, depth); err != nil {
			return fmt.Errorf("etape %d: %w", i+1, err)
		}
	}
	return nil
}

// executeStep runs one step. For scenario steps it recurses into the
// sub-scenario at depth+1, bounded by MaxScenarioDepth.
func (e *Engine) executeStep(ctx context.Context, log *slog.Logger, dev device.Controller, step Step, num int, set Set, depth int) error {
	switch {
	case step.Action == ActionLaunch:
		// Validation already rejected a missing app; legacy data may still
		// reach execution, so the check is repeated here.
		if step.App == "" {
			return fmt.Errorf("parametre 'app' manquant")
		}
		bundleID := e.apps.Bundle(step.App)
		log.Info("lancement", "etape", num, "app", step.App, "bundle_id", bundleID)
		if err := device.RequireFeature(dev, device.FeatureLaunchApp); err != nil {
			return err
		}
		return dev.LaunchApp(ctx, bundleID)

	case step.Action == ActionWait:
		log.Info("attente", "etape", num, "secondes", step.Seconds)
		return e.sleep(ctx, secondsToDuration(step.Seconds))

	case step.Action == ActionScenario:
		sub, ok := set[step.Name]
		if !ok {
			return fmt.Errorf("scenario '%s' non trouve", step.Name)
		}
		if depth+1 > MaxScenarioDepth {
			return fmt.Errorf("%w (%d)", ErrMaxDepth, MaxScenarioDepth)
		}
		log.Info("sous-scenario", "etape", num, "nom", step.Name, "profondeur", depth+1)
		return e.executeSteps(ctx, log, dev, sub, set, depth+1)

	case step.Action.IsSwipe():
		return e.repeatAction(ctx, log, dev, step, num, func(ctx context.Context) error {
			if err := device.RequireFeature(dev, device.FeatureSwipe); err != nil {
				return err
			}
			return dev.Swipe(ctx, swipeGestures[step.Action])
		})

	case step.Action == ActionHomeDouble:
		return e.repeatAction(ctx, log, dev, step, num, func(ctx context.Context) error {
			if err := device.RequireFeature(dev, device.FeatureHome); err != nil {
				return err
			}
			if err := dev.PressButton(ctx, device.ButtonHome); err != nil {
				return err
			}
			if err := e.sleep(ctx, homeDoubleGap); err != nil {
				return err
			}
			return dev.PressButton(ctx, device.ButtonHome)
		})

	case step.Action.IsNav() || step.Action.IsPlay():
		button := device.Button(step.Action)
		return e.repeatAction(ctx, log, dev, step, num, func(ctx context.Context) error {
			if err := device.RequireFeature(dev, device.ButtonFeature(button)); err != nil {
				return err
			}
			return dev.PressButton(ctx, button)
		})
	}

	// Unreachable for validated steps; unvalidated data fails the step.
	return fmt.Errorf("action inconnue: %s", step.Action)
}

// repeatAction fires the action body Repeat times in order, pausing Delay
// seconds after each firing, including the final one.
func (e *Engine) repeatAction(ctx context.Context, log *slog.Logger, dev device.Controller, step Step, num int, fire func(context.Context) error) error {
	for i := 0; i < step.Repeat; i++ {
		if step.Repeat > 1 {
			log.Info("action", "etape", num, "action", step.Action, "iteration", fmt.Sprintf("%d/%d", i+1, step.Repeat))
		} else {
			log.Info("action", "etape", num, "action", step.Action)
		}
		if err := fire(ctx); err != nil {
			return err
		}
		if step.Delay > 0 {
			if err := e.sleep(ctx, secondsToDuration(step.Delay)); err != nil {
				return err
			}
		}
	}
	return nil
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
