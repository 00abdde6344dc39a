package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/creasefit/internal/engine"
	"github.com/piwi3910/creasefit/internal/export"
	"github.com/piwi3910/creasefit/internal/model"
	"github.com/piwi3910/creasefit/internal/project"
)

var solveOpts struct {
	strategy  string
	maxStates int
	memo      string
	out       string
	pdf       string
	dxf       string
	gcode     string
	archive   bool
	compare   bool
	timeout   time.Duration
}

var solveCmd = &cobra.Command{
	Use:   "solve <problem>",
	Short: "Compute a folding for a problem file",
	Long: `Solve reads a problem and writes a solution that folds the unit square into
its silhouette.

Examples:
  # Solve with the configured strategy and print the solution
  creasefit solve problems/42.txt

  # Try only the exact search, with a bigger state budget
  creasefit solve --strategy search --max-states 1000000 problems/42.txt

  # Compare strategies side by side
  creasefit solve --compare problems/42.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	f := solveCmd.Flags()
	f.StringVar(&solveOpts.strategy, "strategy", "", "search, wrap or auto (default from config)")
	f.IntVar(&solveOpts.maxStates, "max-states", 0, "cap on search expansions (default from config)")
	f.StringVar(&solveOpts.memo, "memo", "", "visited-state store: memory or badger")
	f.StringVarP(&solveOpts.out, "out", "o", "", "write the solution here instead of stdout")
	f.StringVar(&solveOpts.pdf, "pdf", "", "also write a PDF report")
	f.StringVar(&solveOpts.dxf, "dxf", "", "also write the crease pattern as DXF")
	f.StringVar(&solveOpts.gcode, "gcode", "", "also write a G-code program scoring the creases")
	f.BoolVar(&solveOpts.archive, "archive", false, "store the solution in the configured archive directory")
	f.BoolVar(&solveOpts.compare, "compare", false, "run every strategy and print a comparison instead")
	f.DurationVar(&solveOpts.timeout, "timeout", 0, "give up after this long (0 = no limit)")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	p, err := project.LoadProblem(args[0])
	if err != nil {
		return err
	}

	settings := solveSettings()
	if solveOpts.strategy != "" {
		settings.Strategy = model.Strategy(solveOpts.strategy)
	}
	if solveOpts.maxStates > 0 {
		settings.MaxStates = solveOpts.maxStates
	}
	if solveOpts.memo != "" {
		settings.Memo = solveOpts.memo
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if solveOpts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, solveOpts.timeout)
		defer cancel()
	}

	if solveOpts.compare {
		results := engine.CompareStrategies(ctx, engine.BuildDefaultScenarios(settings), p, engine.WithLogger(logger))
		printComparison(cmd.OutOrStdout(), results)
		return nil
	}

	start := time.Now()
	res, err := engine.New(settings, engine.WithLogger(logger)).Solve(ctx, p)
	if err != nil {
		return err
	}
	printResult(cmd.ErrOrStderr(), p, res, time.Since(start))

	if solveOpts.out != "" {
		if err := project.SaveSolution(solveOpts.out, res.Solution); err != nil {
			return err
		}
	} else if _, err := res.Solution.WriteTo(cmd.OutOrStdout()); err != nil {
		return err
	}

	if solveOpts.pdf != "" {
		if err := export.ExportPDF(solveOpts.pdf, p, res); err != nil {
			return err
		}
	}
	if solveOpts.dxf != "" {
		if err := export.ExportDXF(solveOpts.dxf, res.Solution); err != nil {
			return err
		}
	}
	if solveOpts.gcode != "" {
		if err := writeScore(cmd, p.Name, res.Solution, solveOpts.gcode); err != nil {
			return err
		}
	}
	if solveOpts.archive {
		if appConfig.ArchiveDir == "" {
			return fmt.Errorf("--archive needs archive_dir in the configuration")
		}
		entry, err := project.ArchiveSolution(appConfig.ArchiveDir, p, res, settings)
		if err != nil {
			return err
		}
		logger.Info("archived", zap.String("file", entry.SolutionFile()), zap.String("run", entry.RunID))
	}
	return nil
}

func printResult(w io.Writer, p model.Problem, res model.SolveResult, took time.Duration) {
	fmt.Fprintf(w, "%s: %s, exact=%t\n", p.Name, res.Strategy, res.Exact)
	fmt.Fprintf(w, "  facets:  %s\n", humanize.Comma(int64(res.Facets)))
	fmt.Fprintf(w, "  size:    %s of %s characters\n", humanize.Comma(int64(res.Size)), humanize.Comma(model.SolutionSizeLimit))
	if res.States > 0 {
		fmt.Fprintf(w, "  states:  %s\n", humanize.Comma(int64(res.States)))
	}
	if res.Merges > 0 {
		fmt.Fprintf(w, "  merged:  %s facet pairs\n", humanize.Comma(int64(res.Merges)))
	}
	fmt.Fprintf(w, "  took:    %s\n", took.Round(time.Millisecond))
	for _, warning := range res.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
}

func printComparison(w io.Writer, results []engine.ComparisonResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tSTRATEGY\tEXACT\tFACETS\tSIZE\tSTATES\tTIME\tERROR")
	for _, r := range results {
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\t%d\t%s\t%s\t%s\t%s\n",
			r.Scenario.Name,
			r.Result.Strategy,
			r.Result.Exact,
			r.Result.Facets,
			humanize.Comma(int64(r.Result.Size)),
			humanize.Comma(int64(r.Result.States)),
			r.Duration.Round(time.Millisecond),
			errText)
	}
	tw.Flush()
}
