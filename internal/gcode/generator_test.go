package gcode

import (
	"math"
	"strings"
	"testing"

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

func testSettings() model.ScoreSettings {
	s := model.DefaultScoreSettings()
	s.SheetSize = 100
	return s
}

func halfSquare(t *testing.T) model.Solution {
	t.Helper()
	sol, err := model.ReadSolution(strings.NewReader(halfSquareSolution))
	if err != nil {
		t.Fatalf("ReadSolution failed: %v", err)
	}
	return sol
}

func TestGenerate_HalfSquare(t *testing.T) {
	code := New(testSettings()).Generate("half", halfSquare(t))

	for _, want := range []string{
		"; creasefit score program: half",
		"G0 X0.000 Y50.000",
		"G1 Z-0.200 F300.000",
		"G1 X100.000 Y50.000 F1200.000",
		"M2",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("expected %q in output:\n%s", want, code)
		}
	}
}

func TestGenerate_ParsesBack(t *testing.T) {
	code := New(testSettings()).Generate("half", halfSquare(t))
	stats := Summarize(Parse(code))

	if stats.Strokes != 1 {
		t.Errorf("expected 1 stroke, got %d", stats.Strokes)
	}
	if math.Abs(stats.ScoreLength-100) > 1e-9 {
		t.Errorf("expected 100mm scored, got %f", stats.ScoreLength)
	}
	if stats.TravelLength < 50 {
		t.Errorf("expected at least 50mm of travel, got %f", stats.TravelLength)
	}
}

func TestGenerate_PlotterProfileTogglesTool(t *testing.T) {
	s := testSettings()
	s.Profile = "Plotter"
	code := New(s).Generate("half", halfSquare(t))

	if strings.Count(code, "M3\n") != 1 {
		t.Errorf("expected one tool-on command:\n%s", code)
	}
	if !strings.Contains(code, "G1 X100.00 Y50.00") {
		t.Errorf("expected two decimal places:\n%s", code)
	}
	if stats := Summarize(Parse(code)); stats.Strokes != 1 {
		t.Errorf("expected 1 stroke, got %d", stats.Strokes)
	}
}

func TestGenerate_UnfoldedSheetHasNoStrokes(t *testing.T) {
	sol, err := model.ReadSolution(strings.NewReader("4\n0,0\n1,0\n1,1\n0,1\n1\n4 0 1 2 3\n0,0\n1,0\n1,1\n0,1\n"))
	if err != nil {
		t.Fatal(err)
	}
	stats := Summarize(Parse(New(testSettings()).Generate("flat", sol)))
	if stats.Strokes != 0 || stats.ScoreLength != 0 {
		t.Errorf("expected nothing scored, got %+v", stats)
	}
}

func TestOrder_NearestEndFirst(t *testing.T) {
	g := New(testSettings())
	got := g.order([]stroke{
		{x0: 100, y0: 100, x1: 50, y1: 50},
		{x0: 10, y0: 0, x1: 10, y1: 10},
	})

	want := []stroke{
		{x0: 10, y0: 0, x1: 10, y1: 10},
		{x0: 50, y0: 50, x1: 100, y1: 100},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stroke %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestGetProfileFallsBackToFirst(t *testing.T) {
	if p := model.GetProfile("nope"); p.Name != model.GCodeProfiles[0].Name {
		t.Errorf("expected fallback to %s, got %s", model.GCodeProfiles[0].Name, p.Name)
	}
	if len(model.GetProfileNames()) != len(model.GCodeProfiles) {
		t.Error("profile names out of sync")
	}
}
