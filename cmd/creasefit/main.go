// creasefit folds a unit square of paper into a target silhouette.
//
// Build:
//
//	go build -o creasefit ./cmd/creasefit
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/creasefit/internal/logging"
	"github.com/piwi3910/creasefit/internal/model"
	"github.com/piwi3910/creasefit/internal/project"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	version    = "dev"

	// Set by the root command before any subcommand runs
	appConfig model.AppConfig
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "creasefit",
	Short: "Fold a unit square of paper into a polygonal silhouette",
	Long: `creasefit computes crease patterns that fold the unit square into a target
silhouette. Problems and solutions use the plain text format of the folding
contest: counts followed by exact rational points such as 1/3,2/5.

The search strategy unrolls the silhouette's skeleton onto the square and is
exact when it succeeds; the wrap strategy folds the square around the
silhouette's convex hull and always produces an answer.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", project.DefaultConfigPath(), "configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console or json)")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	l, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	appConfig = cfg
	logger = l
	logger.Debug("configuration loaded", zap.String("path", configPath))
	return nil
}

// solveSettings is the configured solver settings.
func solveSettings() model.SolveSettings {
	s := model.DefaultSettings()
	appConfig.ApplyToSettings(&s)
	return s
}

func main() {
	err := rootCmd.Execute()
	_ = logging.Sync(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
