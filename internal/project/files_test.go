package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/creasefit/internal/geom"
	"github.com/piwi3910/creasefit/internal/model"
)

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

func TestLoadProblemNamesAfterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boat.txt")
	if err := os.WriteFile(path, []byte("1\n4\n0,0\n1,0\n1,1/2\n0,1/2\n0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProblem(path)
	if err != nil {
		t.Fatalf("LoadProblem failed: %v", err)
	}
	if p.Name != "boat" {
		t.Errorf("expected name boat, got %s", p.Name)
	}
	if geom.FormatRat(p.Area()) != "1/2" {
		t.Errorf("expected area 1/2, got %s", geom.FormatRat(p.Area()))
	}
}

func TestLoadProblemMissingFile(t *testing.T) {
	if _, err := LoadProblem(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSaveAndLoadProblem(t *testing.T) {
	p := model.NewProblem("square")
	p.Silhouette = []geom.Polygon{geom.UnitSquare()}
	p.Skeleton = []geom.Segment{geom.Seg(geom.PI(0, 0), geom.PI(1, 1))}

	path := filepath.Join(t.TempDir(), "nested", "square.txt")
	if err := SaveProblem(path, p); err != nil {
		t.Fatalf("SaveProblem failed: %v", err)
	}
	back, err := LoadProblem(path)
	if err != nil {
		t.Fatalf("LoadProblem failed: %v", err)
	}
	if len(back.Silhouette) != 1 || len(back.Skeleton) != 1 {
		t.Fatalf("expected 1 polygon and 1 segment, got %d and %d", len(back.Silhouette), len(back.Skeleton))
	}
	if !back.Skeleton[0].Equal(p.Skeleton[0]) {
		t.Errorf("skeleton changed: %v", back.Skeleton[0])
	}
}

func TestSaveAndLoadSolution(t *testing.T) {
	sol, err := model.ReadSolution(strings.NewReader(halfSquareSolution))
	if err != nil {
		t.Fatalf("ReadSolution failed: %v", err)
	}
	if err := sol.Validate(); err != nil {
		t.Fatalf("fixture is not valid: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out", "half.txt")
	if err := SaveSolution(path, sol); err != nil {
		t.Fatalf("SaveSolution failed: %v", err)
	}
	back, err := LoadSolution(path)
	if err != nil {
		t.Fatalf("LoadSolution failed: %v", err)
	}
	if back.String() != sol.String() {
		t.Errorf("solution changed on round trip:\n%s\nvs\n%s", back.String(), sol.String())
	}
}

func TestLoadSolutionGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte("3\n0,0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSolution(path); err == nil {
		t.Fatal("expected error for truncated solution")
	}
}
