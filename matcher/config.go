package matcher

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfigFile = "config.json"

// Config aggregates runtime settings persisted to config.json. CLI flags
// override individual values after loading.
type Config struct {
	ScoreThreshold      int    `json:"scoreThreshold"`
	TopNPerFaculty      int    `json:"topNPerFaculty"`
	MinColumnConfidence int    `json:"minColumnConfidence"`
	StrictColumns       bool   `json:"strictColumns"`
	UseWeights          bool   `json:"useWeights"`
	SchemaPath          string `json:"schemaPath"`
	WeightsPath         string `json:"weightsPath"`
	OutputDir           string `json:"outputDir"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		ScoreThreshold:      60,
		TopNPerFaculty:      20,
		MinColumnConfidence: defaultMinConfidence,
		OutputDir:           "outputs",
	}
}

// LoadConfig loads configuration from the given path or the default
// config.json. A missing file yields the defaults; keys absent from the
// file keep their defaults, while explicit values win even when zero, so
// "scoreThreshold": 0 really does keep every pair.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// SaveConfig persists configuration to disk atomically.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
