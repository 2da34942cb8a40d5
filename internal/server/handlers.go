package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"telepilot/internal/device"
	"telepilot/internal/scenario"
	"telepilot/pkg/api"
)

// ScenarioRunner executes one scenario against a device selector.
type ScenarioRunner interface {
	RunScenario(ctx context.Context, selector, name string) error
}

// ScenarioSource lists the available scenarios.
type ScenarioSource interface {
	Scenarios() (scenario.Set, error)
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	runner         ScenarioRunner
	scenarios      ScenarioSource
	requestTimeout time.Duration
	log            *slog.Logger
}

// NewHandlers creates the handler set. requestTimeout bounds one
// HTTP-triggered execution; exceeding it releases the device connection and
// answers 504.
func NewHandlers(runner ScenarioRunner, scenarios ScenarioSource, requestTimeout time.Duration, log *slog.Logger) *Handlers {
	return &Handlers{
		runner:         runner,
		scenarios:      scenarios,
		requestTimeout: requestTimeout,
		log:            log,
	}
}

// Health handles GET /health.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// ListScenarios handles GET /scenarios.
func (h *Handlers) ListScenarios(c *gin.Context) {
	set, err := h.scenarios.Scenarios()
	if err != nil {
		h.log.Error("chargement des scenarios impossible", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Erreur interne du serveur"})
		return
	}
	c.JSON(http.StatusOK, api.ScenariosResponse{Scenarios: set.Names()})
}

// RunScenario handles POST /scenario/{name}?device=X.
func (h *Handlers) RunScenario(c *gin.Context) {
	name := c.Param("name")
	selector := c.Query("device")

	set, err := h.scenarios.Scenarios()
	if err != nil {
		h.log.Error("chargement des scenarios impossible", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Erreur interne du serveur"})
		return
	}
	if _, ok := set[name]; !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Scenario '" + name + "' non trouve"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
	defer cancel()

	err = h.runner.RunScenario(ctx, selector, name)
	if err == nil {
		c.JSON(http.StatusOK, api.RunScenarioResponse{Success: true, Scenario: name, Device: selector})
		return
	}

	h.log.Error("execution echouee", "scenario", name, "device", selector, "error", err)

	var notFound *device.NotFoundError
	var featureMissing *device.FeatureNotAvailableError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, api.ErrorResponse{Error: "Timeout - operation trop longue"})
	case errors.As(err, &notFound), errors.As(err, &featureMissing):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Erreur interne du serveur"})
	}
}
