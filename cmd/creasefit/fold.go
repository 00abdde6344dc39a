package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var foldOpts struct {
	lines     []string
	marks     []string
	unfold    bool
	normalize bool
	out       string
}

var foldCmd = &cobra.Command{
	Use:   "fold [solution]",
	Short: "Apply folds to a solution or to the plain square",
	Long: `Fold replays hand-made folds. Each --line "ax,ay bx,by" flips everything left of
the directed line a→b onto its right side, in the order given. --mark refolds
the crease pattern so that only creases near the marked points are folded;
--unfold flattens everything.

Examples:
  # Fold the square in half and then in quarters
  creasefit fold --line "0,1/2 1,1/2" --line "1/2,0 1/2,1"

  # Keep only the crease through (1/2,1/4) folded
  creasefit fold --mark 1/2,1/4 solution.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFold,
}

func init() {
	f := foldCmd.Flags()
	f.StringArrayVar(&foldOpts.lines, "line", nil, `fold line "ax,ay bx,by" (repeatable)`)
	f.StringArrayVar(&foldOpts.marks, "mark", nil, "point near a crease to keep folded (repeatable)")
	f.BoolVar(&foldOpts.unfold, "unfold", false, "unfold every crease before anything else")
	f.BoolVar(&foldOpts.normalize, "normalize", true, "merge facets before writing")
	f.StringVarP(&foldOpts.out, "out", "o", "", "write the solution here instead of stdout")
	rootCmd.AddCommand(foldCmd)
}

func runFold(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	st, err := loadState(path)
	if err != nil {
		return err
	}

	if foldOpts.unfold {
		if err := st.Unfold(); err != nil {
			return err
		}
	}
	if len(foldOpts.marks) > 0 {
		marks, err := parsePoints(foldOpts.marks)
		if err != nil {
			return err
		}
		if err := st.Refold(marks); err != nil {
			return err
		}
	}

	for _, l := range foldOpts.lines {
		ends, err := parsePoints(strings.Fields(l))
		if err != nil {
			return err
		}
		if len(ends) != 2 {
			return fmt.Errorf("fold line %q needs two points", l)
		}
		flipped, err := st.Fold(ends[0], ends[1])
		if err != nil {
			return err
		}
		if !flipped {
			logger.Warn("fold line misses the paper", zap.String("line", l))
		}
	}

	if foldOpts.normalize {
		if _, err := st.Normalize(); err != nil {
			return err
		}
	}
	if err := st.Check(); err != nil {
		return err
	}
	return writeState(cmd, st, foldOpts.out)
}

