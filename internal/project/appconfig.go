package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"github.com/piwi3910/creasefit/internal/model"
)

// EnvPrefix marks environment variables that override the config file.
// CREASEFIT_SOLVER_MAX_STATES sets solver.max_states.
const EnvPrefix = "CREASEFIT_"

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.creasefit/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".creasefit")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// SaveAppConfig persists an AppConfig to the given path as JSON, which the
// YAML loader reads back unchanged. It creates any missing parent
// directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path and applies
// CREASEFIT_ environment overrides on top. Keys missing from both keep
// their DefaultAppConfig values; a missing file is not an error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	k := koanf.New(".")

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
			return model.AppConfig{}, errors.Wrapf(err, "parsing %s", path)
		}
	case os.IsNotExist(err):
	default:
		return model.AppConfig{}, err
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return model.AppConfig{}, errors.Wrap(err, "loading environment overrides")
	}

	config := model.DefaultAppConfig()
	if err := k.Unmarshal("", &config); err != nil {
		return model.AppConfig{}, errors.Wrap(err, "decoding config")
	}
	if err := ValidateAppConfig(config); err != nil {
		return model.AppConfig{}, err
	}
	return config, nil
}

// envKey maps CREASEFIT_SOLVER_MAX_STATES to solver.max_states. The first
// word names the section when it is one; otherwise the whole name is a
// top-level key.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 2 && (parts[0] == "log" || parts[0] == "solver" || parts[0] == "score") {
		return parts[0] + "." + parts[1]
	}
	return lower
}

// ValidateAppConfig rejects values the solver cannot work with.
func ValidateAppConfig(c model.AppConfig) error {
	switch c.Solver.Strategy {
	case model.StrategySearch, model.StrategyWrap, model.StrategyAuto:
	default:
		return errors.Errorf("unknown strategy %q", c.Solver.Strategy)
	}
	switch c.Solver.Memo {
	case model.MemoMemory, model.MemoBadger:
	default:
		return errors.Errorf("unknown memo backend %q", c.Solver.Memo)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.Errorf("unknown log format %q", c.Log.Format)
	}
	if c.Score.SheetSize <= 0 || c.Score.FeedRate <= 0 {
		return errors.New("score sheet size and feed rate must be positive")
	}
	if c.Solver.MaxStates < 0 || c.Solver.SizeLimit < 0 || c.Solver.FoldPasses < 0 || c.Solver.Directions < 0 {
		return errors.New("solver limits must not be negative")
	}
	return nil
}
