package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/creasefit/internal/geom"
	"github.com/piwi3910/creasefit/internal/importer"
	"github.com/piwi3910/creasefit/internal/project"
)

var importOut string

var importDXFCmd = &cobra.Command{
	Use:   "import-dxf <drawing.dxf>",
	Short: "Convert a DXF drawing into a problem file",
	Long: `Import-dxf reads closed polylines as the silhouette and lines as the
skeleton. Coordinates are read as exact decimals; draw inside the unit
square or scale the drawing first.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportDXF,
}

func init() {
	importDXFCmd.Flags().StringVarP(&importOut, "out", "o", "", "write the problem here instead of stdout")
	rootCmd.AddCommand(importDXFCmd)
}

func runImportDXF(cmd *cobra.Command, args []string) error {
	res := importer.ImportDXF(args[0])
	for _, w := range res.Warnings {
		logger.Warn("import", zap.String("file", args[0]), zap.String("warning", w))
	}
	if !res.OK() {
		return fmt.Errorf("importing %s: %s", args[0], strings.Join(res.Errors, "; "))
	}

	p := res.Problem
	logger.Info("imported",
		zap.String("problem", p.Name),
		zap.Int("polygons", len(p.Silhouette)),
		zap.Int("segments", len(p.Skeleton)),
		zap.String("area", geom.FormatRat(p.Area())))

	if importOut != "" {
		return project.SaveProblem(importOut, p)
	}
	_, err := p.WriteTo(cmd.OutOrStdout())
	return err
}
