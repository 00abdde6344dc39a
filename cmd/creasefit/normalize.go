package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/creasefit/internal/fold"
	"github.com/piwi3910/creasefit/internal/project"
)

var normalizeOut string

var normalizeCmd = &cobra.Command{
	Use:   "normalize <solution>",
	Short: "Merge facets that fold together",
	Long: `Normalize turns every facet counter-clockwise and merges neighbouring facets
that share a transform, which removes creases that are never folded and
shrinks the solution text.`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeOut, "out", "o", "", "write the solution here instead of stdout")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	st, err := loadState(args[0])
	if err != nil {
		return err
	}
	before := len(st.Facets)
	stats, err := st.Normalize()
	if err != nil {
		return err
	}
	logger.Info("normalized",
		zap.Int("facets_before", before),
		zap.Int("facets_after", len(st.Facets)),
		zap.Int("reversed", stats.Reversed),
		zap.Int("merged", stats.Merged))
	return writeState(cmd, st, normalizeOut)
}

// loadState reads a solution file into a fold state; "-" or an empty path
// gives the unfolded square.
func loadState(path string) (*fold.State, error) {
	if path == "" || path == "-" {
		return fold.NewSquare(fold.WithLogger(logger)), nil
	}
	sol, err := project.LoadSolution(path)
	if err != nil {
		return nil, err
	}
	return fold.FromSolution(sol, fold.WithLogger(logger))
}

func writeState(cmd *cobra.Command, st *fold.State, out string) error {
	sol, err := st.Solution()
	if err != nil {
		return err
	}
	if out != "" {
		return project.SaveSolution(out, sol)
	}
	_, err = sol.WriteTo(cmd.OutOrStdout())
	return err
}
