// Package config handles environment variable loading for paths, ports and
// timeouts.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration values for the application.
type Config struct {
	// Directory holding scenarios.json, schedule.json, apps.json and
	// credentials.json
	DataDir string

	// HTTP server port
	HTTPPort int

	// Scheduler daemon metrics port
	MetricsPort int

	// Path of the atvremote binary
	RemoteBin string

	// Default device selector when none is given
	DefaultDevice string

	// Network scan duration
	ScanTimeout time.Duration

	// Bound on power transitions (turn on / turn off)
	OperationTimeout time.Duration

	// Bound on one HTTP-triggered scenario execution
	HTTPRequestTimeout time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	dataDir := os.Getenv("TELEPILOT_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("TELEPILOT_DATA_DIR non defini et repertoire personnel introuvable: %w", err)
		}
		dataDir = filepath.Join(home, ".config", "telepilot")
	}

	port := 8888
	if portStr := os.Getenv("TELEPILOT_PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("TELEPILOT_PORT invalide: %w", err)
		}
		port = p
	}

	metricsPort := 8889
	if portStr := os.Getenv("TELEPILOT_METRICS_PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("TELEPILOT_METRICS_PORT invalide: %w", err)
		}
		metricsPort = p
	}

	remoteBin := os.Getenv("TELEPILOT_ATVREMOTE")
	if remoteBin == "" {
		remoteBin = "atvremote"
	}

	scanTimeout := 5 * time.Second
	if v := os.Getenv("TELEPILOT_SCAN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("TELEPILOT_SCAN_TIMEOUT invalide: %w", err)
		}
		scanTimeout = d
	}

	operationTimeout := 10 * time.Second
	if v := os.Getenv("TELEPILOT_OPERATION_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("TELEPILOT_OPERATION_TIMEOUT invalide: %w", err)
		}
		operationTimeout = d
	}

	requestTimeout := 60 * time.Second
	if v := os.Getenv("TELEPILOT_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("TELEPILOT_HTTP_TIMEOUT invalide: %w", err)
		}
		requestTimeout = d
	}

	return &Config{
		DataDir:            dataDir,
		HTTPPort:           port,
		MetricsPort:        metricsPort,
		RemoteBin:          remoteBin,
		DefaultDevice:      os.Getenv("TELEPILOT_DEVICE"),
		ScanTimeout:        scanTimeout,
		OperationTimeout:   operationTimeout,
		HTTPRequestTimeout: requestTimeout,
	}, nil
}
