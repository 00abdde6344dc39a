package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/creasefit/internal/model"
)

func archivedResult(t *testing.T) model.SolveResult {
	t.Helper()
	sol, err := model.ReadSolution(strings.NewReader(halfSquareSolution))
	if err != nil {
		t.Fatalf("ReadSolution failed: %v", err)
	}
	return model.SolveResult{
		Solution: sol,
		Strategy: model.StrategySearch,
		Exact:    true,
		Facets:   len(sol.Facets),
		Size:     sol.Size(),
	}
}

func TestArchiveSolution(t *testing.T) {
	dir := t.TempDir()
	p := model.NewProblem("half")
	res := archivedResult(t)

	entry, err := ArchiveSolution(dir, p, res, model.DefaultSettings())
	if err != nil {
		t.Fatalf("ArchiveSolution failed: %v", err)
	}
	if entry.RunID == "" || entry.CreatedAt == "" {
		t.Error("expected run id and timestamp")
	}
	if len(entry.Hash) != 16 {
		t.Errorf("expected 16 hex digit hash, got %q", entry.Hash)
	}
	if _, err := os.Stat(filepath.Join(dir, entry.SolutionFile())); err != nil {
		t.Errorf("solution file missing: %v", err)
	}

	sol, err := LoadArchived(dir, entry)
	if err != nil {
		t.Fatalf("LoadArchived failed: %v", err)
	}
	if sol.String() != res.Solution.String() {
		t.Error("archived solution differs from the stored one")
	}
}

func TestArchiveSolutionDeduplicates(t *testing.T) {
	dir := t.TempDir()
	p := model.NewProblem("half")
	res := archivedResult(t)

	first, err := ArchiveSolution(dir, p, res, model.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	second, err := ArchiveSolution(dir, p, res, model.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	if first.Hash != second.Hash {
		t.Errorf("same solution hashed differently: %s vs %s", first.Hash, second.Hash)
	}
	if first.RunID == second.RunID {
		t.Error("expected distinct run ids")
	}

	entries, err := ListArchive(dir)
	if err != nil {
		t.Fatalf("ListArchive failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].RunID != second.RunID {
		t.Error("expected the latest run to be recorded")
	}
	if entries[0].Result.Facets != 2 {
		t.Errorf("expected 2 facets, got %d", entries[0].Result.Facets)
	}
}

func TestListArchiveInvalidEntry(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "solution_x.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ListArchive(dir); err == nil {
		t.Fatal("expected error for entry without version")
	}
}

func TestListArchiveEmptyDir(t *testing.T) {
	entries, err := ListArchive(filepath.Join(t.TempDir(), "none"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
