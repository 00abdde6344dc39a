package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/creasefit/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.Log.Level = "debug"
	cfg.Solver.Strategy = model.StrategyWrap
	cfg.Solver.MaxStates = 1234
	cfg.ArchiveDir = "/tmp/folds"

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.Log.Level != "debug" {
		t.Errorf("expected Log.Level=debug, got %s", loaded.Log.Level)
	}
	if loaded.Solver.Strategy != model.StrategyWrap {
		t.Errorf("expected Strategy=wrap, got %s", loaded.Solver.Strategy)
	}
	if loaded.Solver.MaxStates != 1234 {
		t.Errorf("expected MaxStates=1234, got %d", loaded.Solver.MaxStates)
	}
	if loaded.ArchiveDir != "/tmp/folds" {
		t.Errorf("expected ArchiveDir=/tmp/folds, got %s", loaded.ArchiveDir)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.yaml")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.Solver.MaxStates != defaults.Solver.MaxStates {
		t.Errorf("expected default max states %d, got %d", defaults.Solver.MaxStates, cfg.Solver.MaxStates)
	}
	if cfg.Log.Format != "console" {
		t.Errorf("expected format=console, got %s", cfg.Log.Format)
	}
}

func TestLoadAppConfigPartialYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "solver:\n  strategy: search\n  fold_passes: 3\nlog:\n  format: json\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Solver.Strategy != model.StrategySearch {
		t.Errorf("expected strategy=search, got %s", cfg.Solver.Strategy)
	}
	if cfg.Solver.FoldPasses != 3 {
		t.Errorf("expected fold_passes=3, got %d", cfg.Solver.FoldPasses)
	}
	if cfg.Solver.Directions != model.DefaultSettings().Directions {
		t.Errorf("expected default directions, got %d", cfg.Solver.Directions)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("expected format=json, got %s", cfg.Log.Format)
	}
}

func TestLoadAppConfigEnvOverrides(t *testing.T) {
	t.Setenv("CREASEFIT_SOLVER_MAX_STATES", "77")
	t.Setenv("CREASEFIT_LOG_LEVEL", "warn")
	t.Setenv("CREASEFIT_ARCHIVE_DIR", "/var/folds")

	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Solver.MaxStates != 77 {
		t.Errorf("expected MaxStates=77, got %d", cfg.Solver.MaxStates)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected level=warn, got %s", cfg.Log.Level)
	}
	if cfg.ArchiveDir != "/var/folds" {
		t.Errorf("expected ArchiveDir=/var/folds, got %s", cfg.ArchiveDir)
	}
}

func TestLoadAppConfigRejectsUnknownStrategy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("solver:\n  strategy: guess\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestLoadAppConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("solver: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestEnvKey(t *testing.T) {
	cases := map[string]string{
		"CREASEFIT_SOLVER_MAX_STATES": "solver.max_states",
		"CREASEFIT_LOG_FORMAT":        "log.format",
		"CREASEFIT_ARCHIVE_DIR":       "archive_dir",
		"CREASEFIT_SCORE_SHEET_SIZE":  "score.sheet_size",
	}
	for in, want := range cases {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultConfigPath(t *testing.T) {
	if filepath.Base(DefaultConfigPath()) != "config.yaml" {
		t.Errorf("unexpected config path %s", DefaultConfigPath())
	}
	if filepath.Base(DefaultConfigDir()) != ".creasefit" {
		t.Errorf("unexpected config dir %s", DefaultConfigDir())
	}
}
