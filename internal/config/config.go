package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the working directory when --config is not given.
const DefaultFileName = "gridsweep.yaml"

// Config holds the driver settings. The grid itself is not configurable.
type Config struct {
	Solver      string            `json:"solver" mapstructure:"solver"`
	SolverFile  string            `json:"solver_file" mapstructure:"solver_file"`
	Dir         string            `json:"dir" mapstructure:"dir"`
	Env         map[string]string `json:"env" mapstructure:"env"`
	LogLevel    string            `json:"log_level" mapstructure:"log_level"`
	LogFormat   string            `json:"log_format" mapstructure:"log_format"`
	MetricsAddr string            `json:"metrics_addr" mapstructure:"metrics_addr"`
	RedisAddr   string            `json:"redis_addr" mapstructure:"redis_addr"`
	LockTTL     time.Duration     `json:"lock_ttl" mapstructure:"lock_ttl"`
}

// Default returns the settings used when nothing is configured.
// Solver is left empty so that a solver_file can supply it; callers fall
// back to domain.DefaultSolverPath.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		LockTTL:   24 * time.Hour,
	}
}

// Load reads path (YAML or JSON, by extension) over the defaults.
// A missing file is not an error unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Decode applies a generic key/value map onto cfg.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}
