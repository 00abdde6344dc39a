package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/piwi3910/creasefit/internal/project"
)

var archiveDir string

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "List archived solutions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runArchive,
}

func init() {
	archiveCmd.Flags().StringVar(&archiveDir, "dir", "", "archive directory (default from config)")
	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	dir := archiveDir
	if dir == "" {
		dir = appConfig.ArchiveDir
	}
	if dir == "" {
		return fmt.Errorf("no archive directory configured")
	}

	entries, err := project.ListArchive(dir)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROBLEM\tSTRATEGY\tEXACT\tFACETS\tSIZE\tCREATED\tFILE")
	for _, e := range entries {
		created := e.CreatedAt
		if t, err := time.Parse(time.RFC3339, e.CreatedAt); err == nil {
			created = humanize.Time(t)
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\t%d\t%s\t%s\t%s\n",
			e.Problem,
			e.Result.Strategy,
			e.Result.Exact,
			e.Result.Facets,
			humanize.Comma(int64(e.Result.Size)),
			created,
			e.SolutionFile())
	}
	return tw.Flush()
}
