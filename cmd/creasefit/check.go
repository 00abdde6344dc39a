package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/piwi3910/creasefit/internal/fold"
	"github.com/piwi3910/creasefit/internal/geom"
	"github.com/piwi3910/creasefit/internal/model"
	"github.com/piwi3910/creasefit/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check <solution>",
	Short: "Validate a solution file",
	Long: `Check verifies that a solution is a legal folding: sources tile the unit
square without overlaps or T-junctions, every facet is congruent to its
folded image, and the text stays under the size limit.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	sol, err := project.LoadSolution(args[0])
	if err != nil {
		return err
	}
	if err := sol.Validate(); err != nil {
		return err
	}

	st, err := fold.FromSolution(sol, fold.WithLogger(logger))
	if err != nil {
		return err
	}
	lo, hi := st.Bounds()
	size := sol.Size()

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s: valid\n", args[0])
	fmt.Fprintf(w, "  vertices: %s\n", humanize.Comma(int64(len(sol.Source))))
	fmt.Fprintf(w, "  facets:   %s\n", humanize.Comma(int64(len(sol.Facets))))
	fmt.Fprintf(w, "  size:     %s of %s characters\n", humanize.Comma(int64(size)), humanize.Comma(model.SolutionSizeLimit))
	fmt.Fprintf(w, "  folded:   %s to %s\n", lo, hi)
	if size > model.SolutionSizeLimit {
		return fmt.Errorf("solution is %d characters over the limit", size-model.SolutionSizeLimit)
	}
	return nil
}

// parsePoints reads every argument as an "x,y" point.
func parsePoints(raw []string) ([]geom.Point, error) {
	pts := make([]geom.Point, 0, len(raw))
	for _, s := range raw {
		p, err := geom.ParsePoint(s)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}
