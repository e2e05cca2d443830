// Package config loads the truss YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chazu/truss/pkg/grid"
	"github.com/chazu/truss/pkg/site"
	"github.com/chazu/truss/pkg/truss"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up when none is named.
const DefaultFile = "truss.yaml"

// Config is the full configuration. Fields missing from the file keep their
// defaults.
type Config struct {
	Log       LogConfig       `json:"log" yaml:"log"`
	Grid      GridConfig      `json:"grid" yaml:"grid"`
	Site      site.Params     `json:"site" yaml:"site"`
	Limits    truss.Limits    `json:"limits" yaml:"limits"`
	Inventory truss.Inventory `json:"inventory" yaml:"inventory"`
	Engine    EngineConfig    `json:"engine" yaml:"engine"`
}

type LogConfig struct {
	Level       string `json:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `json:"development" yaml:"development"`
}

type GridConfig struct {
	Density string `json:"density" yaml:"density" validate:"oneof=coarse medium fine"`
}

type EngineConfig struct {
	// Timeout bounds a single script evaluation.
	Timeout time.Duration `json:"timeout" yaml:"timeout" validate:"gt=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:       LogConfig{Level: "info"},
		Grid:      GridConfig{Density: grid.Coarse.String()},
		Site:      site.DefaultParams(),
		Limits:    truss.DefaultLimits(),
		Inventory: truss.DefaultInventory(),
		Engine:    EngineConfig{Timeout: 5 * time.Second},
	}
}

var validate = validator.New()

// Load reads path over the defaults and validates the result. A missing
// file is not an error when path is DefaultFile.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && path == DefaultFile:
		return cfg, nil
	case err != nil:
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field constraints and that the site parameters describe a
// buildable site.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, formatFieldError(fe))
			}
			return fmt.Errorf("config: %s: %w", strings.Join(msgs, "; "), err)
		}
		return fmt.Errorf("config: %w", err)
	}
	if _, err := site.New(c.Site); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "required":
		return fmt.Sprintf("%s is required", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// Density returns the configured grid density.
func (c Config) Density() grid.Density {
	d, err := grid.ParseDensity(c.Grid.Density)
	if err != nil {
		return grid.Coarse
	}
	return d
}

// Logger builds a zap logger for the log section.
func (c LogConfig) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// YAML renders the configuration.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
