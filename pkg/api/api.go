// Package api contains shared JSON request/response structs.
// This package is shared between the CLI and the HTTP server.
package api

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ScenariosResponse lists the available scenario names.
type ScenariosResponse struct {
	Scenarios []string `json:"scenarios"`
}

// RunScenarioResponse is the body returned after POST /scenario/{name}.
type RunScenarioResponse struct {
	Success  bool   `json:"success"`
	Scenario string `json:"scenario"`
	Device   string `json:"device"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
