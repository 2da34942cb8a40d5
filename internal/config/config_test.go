package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TELEPILOT_DATA_DIR", "TELEPILOT_PORT", "TELEPILOT_METRICS_PORT",
		"TELEPILOT_ATVREMOTE",
		"TELEPILOT_DEVICE", "TELEPILOT_SCAN_TIMEOUT",
		"TELEPILOT_OPERATION_TIMEOUT", "TELEPILOT_HTTP_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEPILOT_DATA_DIR", "/tmp/telepilot-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPPort != 8888 {
		t.Errorf("expected HTTPPort 8888, got %d", cfg.HTTPPort)
	}
	if cfg.MetricsPort != 8889 {
		t.Errorf("expected MetricsPort 8889, got %d", cfg.MetricsPort)
	}
	if cfg.RemoteBin != "atvremote" {
		t.Errorf("expected RemoteBin atvremote, got %s", cfg.RemoteBin)
	}
	if cfg.DefaultDevice != "" {
		t.Errorf("expected empty DefaultDevice, got %s", cfg.DefaultDevice)
	}
	if cfg.ScanTimeout != 5*time.Second {
		t.Errorf("expected ScanTimeout 5s, got %v", cfg.ScanTimeout)
	}
	if cfg.OperationTimeout != 10*time.Second {
		t.Errorf("expected OperationTimeout 10s, got %v", cfg.OperationTimeout)
	}
	if cfg.HTTPRequestTimeout != 60*time.Second {
		t.Errorf("expected HTTPRequestTimeout 60s, got %v", cfg.HTTPRequestTimeout)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEPILOT_DATA_DIR", "/srv/telepilot")
	t.Setenv("TELEPILOT_PORT", "9000")
	t.Setenv("TELEPILOT_ATVREMOTE", "/usr/local/bin/atvremote")
	t.Setenv("TELEPILOT_DEVICE", "Salon")
	t.Setenv("TELEPILOT_SCAN_TIMEOUT", "8s")
	t.Setenv("TELEPILOT_OPERATION_TIMEOUT", "30s")
	t.Setenv("TELEPILOT_HTTP_TIMEOUT", "2m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != "/srv/telepilot" {
		t.Errorf("expected DataDir /srv/telepilot, got %s", cfg.DataDir)
	}
	if cfg.HTTPPort != 9000 {
		t.Errorf("expected HTTPPort 9000, got %d", cfg.HTTPPort)
	}
	if cfg.RemoteBin != "/usr/local/bin/atvremote" {
		t.Errorf("expected RemoteBin /usr/local/bin/atvremote, got %s", cfg.RemoteBin)
	}
	if cfg.DefaultDevice != "Salon" {
		t.Errorf("expected DefaultDevice Salon, got %s", cfg.DefaultDevice)
	}
	if cfg.ScanTimeout != 8*time.Second {
		t.Errorf("expected ScanTimeout 8s, got %v", cfg.ScanTimeout)
	}
	if cfg.OperationTimeout != 30*time.Second {
		t.Errorf("expected OperationTimeout 30s, got %v", cfg.OperationTimeout)
	}
	if cfg.HTTPRequestTimeout != 2*time.Minute {
		t.Errorf("expected HTTPRequestTimeout 2m, got %v", cfg.HTTPRequestTimeout)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEPILOT_DATA_DIR", "/tmp/telepilot-test")
	t.Setenv("TELEPILOT_PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid TELEPILOT_PORT")
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEPILOT_DATA_DIR", "/tmp/telepilot-test")
	t.Setenv("TELEPILOT_SCAN_TIMEOUT", "five seconds")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid TELEPILOT_SCAN_TIMEOUT")
	}
}
