// Package store persists scenario, schedule, app and credential definitions
// as operator-editable JSON files with atomic writes.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"telepilot/internal/apps"
	"telepilot/internal/scenario"
	"telepilot/internal/schedule"
)

// File names inside the data directory.
const (
	ScenariosFile   = "scenarios.json"
	ScheduleFile    = "schedule.json"
	AppsFile        = "apps.json"
	CredentialsFile = "credentials.json"
)

// DefaultScenarios is bootstrapped into scenarios.json on first load.
var DefaultScenarios = scenario.RawSet{
	"netflix_profil1": {
		Description: "Lancer Netflix et selectionner le premier profil",
		Steps: []scenario.RawStep{
			{Action: "launch", App: "netflix"},
			{Action: "wait", Seconds: floatPtr(3)},
			{Action: "select"},
		},
	},
	"canal_direct": {
		Description: "Lancer Canal+ et aller sur le direct",
		Steps: []scenario.RawStep{
			{Action: "launch", App: "mycanal"},
			{Action: "wait", Seconds: floatPtr(2)},
			{Action: "down", Repeat: intPtr(2)},
			{Action: "select"},
		},
	},
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

// Store reads and writes the JSON definition files of one data directory.
type Store struct {
	dir string
}

// New creates the data directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("repertoire de donnees requis")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creation du repertoire %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string { return s.dir }

// Path returns the absolute path of a definition file.
func (s *Store) Path(name string) string { return filepath.Join(s.dir, name) }

// Scenarios loads, bootstraps if absent, and validates the scenario set.
func (s *Store) Scenarios() (scenario.Set, error) {
	raw, err := s.RawScenarios()
	if err != nil {
		return nil, err
	}
	return scenario.ParseSet(raw)
}

// RawScenarios loads the scenario file without validation, writing the
// default set first when the file does not exist yet.
func (s *Store) RawScenarios() (scenario.RawSet, error) {
	path := s.Path(ScenariosFile)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.writeJSON(path, DefaultScenarios, 0o644); err != nil {
			return nil, err
		}
		return DefaultScenarios, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lecture de %s: %w", path, err)
	}

	var raw scenario.RawSet
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("lecture de %s: %w", path, err)
	}
	return raw, nil
}

// SaveScenarios persists a raw scenario set.
func (s *Store) SaveScenarios(raw scenario.RawSet) error {
	return s.writeJSON(s.Path(ScenariosFile), raw, 0o644)
}

// Schedules loads and validates the schedule list. A missing file is an
// empty list, not an error.
func (s *Store) Schedules() ([]schedule.Entry, error) {
	path := s.Path(ScheduleFile)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lecture de %s: %w", path, err)
	}
	return schedule.ParseFile(data)
}

// SaveSchedules persists the schedule list in the wire shape.
func (s *Store) SaveSchedules(entries []schedule.Entry) error {
	raws := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		b, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("serialisation de la planification: %w", err)
		}
		raws = append(raws, b)
	}
	return s.writeJSON(s.Path(ScheduleFile), schedule.File{Schedules: raws}, 0o644)
}

// Apps loads the alias table, bootstrapping the defaults when absent.
func (s *Store) Apps() (map[string]string, error) {
	path := s.Path(AppsFile)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.writeJSON(path, apps.Defaults, 0o644); err != nil {
			return nil, err
		}
		config := make(map[string]string, len(apps.Defaults))
		for k, v := range apps.Defaults {
			config[k] = v
		}
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lecture de %s: %w", path, err)
	}

	var config map[string]string
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("lecture de %s: %w", path, err)
	}
	return config, nil
}

// SaveApps persists the alias table.
func (s *Store) SaveApps(config map[string]string) error {
	return s.writeJSON(s.Path(AppsFile), config, 0o644)
}

// Credentials loads pairing credentials: device identifier -> protocol ->
// credentials. A missing file is an empty map.
func (s *Store) Credentials() (map[string]map[string]string, error) {
	path := s.Path(CredentialsFile)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lecture de %s: %w", path, err)
	}

	var creds map[string]map[string]string
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("lecture de %s: %w", path, err)
	}
	return creds, nil
}

// SaveCredentials persists pairing credentials with 0600 permissions.
func (s *Store) SaveCredentials(creds map[string]map[string]string) error {
	return s.writeJSON(s.Path(CredentialsFile), creds, 0o600)
}

// writeJSON writes data atomically: a temp file in the same directory is
// renamed over the target, so a crash mid-write never corrupts the file.
func (s *Store) writeJSON(path string, data any, perm os.FileMode) error {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("serialisation de %s: %w", path, err)
	}
	payload = append(payload, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("sauvegarde de %s: %w", path, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(payload); err != nil {
		cleanup()
		return fmt.Errorf("sauvegarde de %s: %w", path, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return fmt.Errorf("sauvegarde de %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("sauvegarde de %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("sauvegarde de %s: %w", path, err)
	}
	return nil
}
