package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/creasefit/internal/geom"
	"github.com/piwi3910/creasefit/internal/model"
)

// The unit square folded in half along y = 1/2.
const halfSquareSolution = `6
0,0
1,0
1,1/2
0,1/2
1,1
0,1
2
4 0 1 2 3
4 3 2 4 5
0,0
1,0
1,1/2
0,1/2
1,0
0,0
`

func buildTestSolution(t *testing.T) model.Solution {
	t.Helper()
	sol, err := model.ReadSolution(strings.NewReader(halfSquareSolution))
	if err != nil {
		t.Fatalf("ReadSolution failed: %v", err)
	}
	return sol
}

func buildTestProblem() model.Problem {
	p := model.NewProblem("half")
	p.Silhouette = []geom.Polygon{{
		geom.PI(0, 0), geom.PI(1, 0), geom.PR(1, 1, 1, 2), geom.PR(0, 1, 1, 2),
	}}
	p.Skeleton = []geom.Segment{geom.Seg(geom.PI(0, 0), geom.PR(1, 1, 1, 2))}
	return p
}

func buildTestResult(t *testing.T) model.SolveResult {
	sol := buildTestSolution(t)
	return model.SolveResult{
		Solution: sol,
		Strategy: model.StrategySearch,
		Exact:    true,
		Facets:   len(sol.Facets),
		Size:     sol.Size(),
		States:   3,
		Warnings: []string{"paper still sticks out of the hull after 64 passes"},
	}
}

func TestIsFlipped(t *testing.T) {
	sol := buildTestSolution(t)
	if isFlipped(sol, 0) {
		t.Error("facet 0 keeps its orientation")
	}
	if !isFlipped(sol, 1) {
		t.Error("facet 1 is folded over")
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "half.pdf")

	if err := ExportPDF(path, buildTestProblem(), buildTestResult(t)); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportPDF(path, buildTestProblem(), model.SolveResult{}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestExportDXF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "half.dxf")

	if err := ExportDXF(path, buildTestSolution(t)); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("DXF file was not created: %v", err)
	}
	for _, layer := range []string{LayerPaper, LayerCreases, LayerFolded} {
		if !strings.Contains(string(data), layer) {
			t.Errorf("DXF output is missing layer %s", layer)
		}
	}
}

func TestExportDXF_EmptySolution(t *testing.T) {
	if err := ExportDXF(filepath.Join(t.TempDir(), "empty.dxf"), model.Solution{}); err == nil {
		t.Fatal("expected error for empty solution, got nil")
	}
}

func TestExportProblemDXF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.dxf")
	if err := ExportProblemDXF(path, buildTestProblem()); err != nil {
		t.Fatalf("ExportProblemDXF returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "LWPOLYLINE") {
		t.Error("expected a LWPOLYLINE entity for the silhouette")
	}
}
