package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/piwi3910/creasefit/internal/model"
)

// ArchiveEntry is the metadata stored next to every archived solution.
type ArchiveEntry struct {
	Version   string              `json:"version"`
	RunID     string              `json:"run_id"`
	CreatedAt string              `json:"created_at"`
	Problem   string              `json:"problem"`
	ProblemID string              `json:"problem_id"`
	Hash      string              `json:"hash"`
	Result    model.SolveResult   `json:"result"`
	Settings  model.SolveSettings `json:"settings"`
}

// SolutionFile is the archived solution text belonging to the entry.
func (e ArchiveEntry) SolutionFile() string {
	return "solution_" + e.Hash + ".txt"
}

// ArchiveSolution stores the solution of one run under dir, named by the
// hash of its text so identical foldings are kept once. The metadata file
// is rewritten on every run and records the latest run that produced it.
func ArchiveSolution(dir string, p model.Problem, res model.SolveResult, settings model.SolveSettings) (ArchiveEntry, error) {
	text := res.Solution.String()
	entry := ArchiveEntry{
		Version:   "1.0.0",
		RunID:     uuid.New().String(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Problem:   p.Name,
		ProblemID: p.ID,
		Hash:      fmt.Sprintf("%016x", xxhash.Sum64String(text)),
		Result:    res,
		Settings:  settings,
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return ArchiveEntry{}, fmt.Errorf("failed to create archive directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, entry.SolutionFile()), []byte(text), 0644); err != nil {
		return ArchiveEntry{}, fmt.Errorf("failed to write archived solution: %w", err)
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return ArchiveEntry{}, fmt.Errorf("failed to marshal archive entry: %w", err)
	}
	meta := filepath.Join(dir, "solution_"+entry.Hash+".json")
	if err := os.WriteFile(meta, data, 0644); err != nil {
		return ArchiveEntry{}, fmt.Errorf("failed to write archive entry: %w", err)
	}
	return entry, nil
}

// ListArchive reads every archive entry under dir, newest first.
func ListArchive(dir string) ([]ArchiveEntry, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "solution_*.json"))
	if err != nil {
		return nil, err
	}
	entries := make([]ArchiveEntry, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var e ArchiveEntry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
		if e.Version == "" {
			return nil, fmt.Errorf("invalid archive entry %s: missing version field", path)
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt > entries[j].CreatedAt
	})
	return entries, nil
}

// LoadArchived reads the solution an entry points at.
func LoadArchived(dir string, e ArchiveEntry) (model.Solution, error) {
	return LoadSolution(filepath.Join(dir, e.SolutionFile()))
}
