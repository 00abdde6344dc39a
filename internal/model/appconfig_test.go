package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.Solver.Strategy != defaults.Strategy {
		t.Errorf("Strategy mismatch: config=%s settings=%s", cfg.Solver.Strategy, defaults.Strategy)
	}
	if cfg.Solver.MaxStates != defaults.MaxStates {
		t.Errorf("MaxStates mismatch: config=%d settings=%d", cfg.Solver.MaxStates, defaults.MaxStates)
	}
	if cfg.Solver.SizeLimit != SolutionSizeLimit {
		t.Errorf("expected SizeLimit=%d, got %d", SolutionSizeLimit, cfg.Solver.SizeLimit)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level=info, got %s", cfg.Log.Level)
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.Solver.Strategy = StrategyWrap
	cfg.Solver.MaxStates = 42
	cfg.Solver.Memo = ""
	cfg.Solver.Normalize = false

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.Strategy != StrategyWrap {
		t.Errorf("expected Strategy=wrap, got %s", s.Strategy)
	}
	if s.MaxStates != 42 {
		t.Errorf("expected MaxStates=42, got %d", s.MaxStates)
	}
	if s.Memo != MemoMemory {
		t.Errorf("an unset memo must keep the default, got %q", s.Memo)
	}
	if s.Normalize {
		t.Error("expected Normalize=false")
	}
}
