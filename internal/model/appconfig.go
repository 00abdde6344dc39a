package model

// LogConfig controls the zap logger built by the CLI.
type LogConfig struct {
	Level  string `json:"level" koanf:"level"`   // debug, info, warn, error
	Format string `json:"format" koanf:"format"` // "console" or "json"
}

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	Log    LogConfig     `json:"log" koanf:"log"`
	Solver SolveSettings `json:"solver" koanf:"solver"`
	Score  ScoreSettings `json:"score" koanf:"score"`

	// Directory solutions are archived into; empty disables archiving
	ArchiveDir string `json:"archive_dir" koanf:"archive_dir"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Solver: DefaultSettings(),
		Score:  DefaultScoreSettings(),
	}
}

// ApplyToSettings copies the configured solver values into s, leaving
// fields the config does not set untouched.
func (c AppConfig) ApplyToSettings(s *SolveSettings) {
	if c.Solver.Strategy != "" {
		s.Strategy = c.Solver.Strategy
	}
	if c.Solver.MaxStates != 0 {
		s.MaxStates = c.Solver.MaxStates
	}
	if c.Solver.Memo != "" {
		s.Memo = c.Solver.Memo
	}
	if c.Solver.MemoDir != "" {
		s.MemoDir = c.Solver.MemoDir
	}
	if c.Solver.SizeLimit != 0 {
		s.SizeLimit = c.Solver.SizeLimit
	}
	if c.Solver.FoldPasses != 0 {
		s.FoldPasses = c.Solver.FoldPasses
	}
	if c.Solver.Directions != 0 {
		s.Directions = c.Solver.Directions
	}
	s.Normalize = c.Solver.Normalize
}
