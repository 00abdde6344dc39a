package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/creasefit/internal/gcode"
	"github.com/piwi3910/creasefit/internal/model"
	"github.com/piwi3910/creasefit/internal/project"
)

var scoreOpts struct {
	out     string
	profile string
	size    float64
}

var scoreCmd = &cobra.Command{
	Use:   "score <solution>",
	Short: "Write G-code that scores the crease pattern into a sheet",
	Long: fmt.Sprintf(`Score emits a toolpath that scores every crease of a solution with a drag
knife, scoring wheel or plotter stylus, so the sheet can be folded by hand.

Profiles: %s`, strings.Join(model.GetProfileNames(), ", ")),
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.StringVarP(&scoreOpts.out, "out", "o", "", "write the program here instead of stdout")
	f.StringVar(&scoreOpts.profile, "profile", "", "controller profile (default from config)")
	f.Float64Var(&scoreOpts.size, "size", 0, "sheet edge in mm (default from config)")
	rootCmd.AddCommand(scoreCmd)
}

func scoreSettings() model.ScoreSettings {
	s := appConfig.Score
	if scoreOpts.profile != "" {
		s.Profile = scoreOpts.profile
	}
	if scoreOpts.size > 0 {
		s.SheetSize = scoreOpts.size
	}
	return s
}

func runScore(cmd *cobra.Command, args []string) error {
	sol, err := project.LoadSolution(args[0])
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	return writeScore(cmd, name, sol, scoreOpts.out)
}

func writeScore(cmd *cobra.Command, name string, sol model.Solution, out string) error {
	code := gcode.New(scoreSettings()).Generate(name, sol)
	stats := gcode.Summarize(gcode.Parse(code))
	logger.Info("score program",
		zap.String("name", name),
		zap.Int("strokes", stats.Strokes),
		zap.Float64("score_mm", stats.ScoreLength),
		zap.Float64("travel_mm", stats.TravelLength))

	if out == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), code)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	return os.WriteFile(out, []byte(code), 0644)
}
