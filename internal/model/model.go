package model

import (
	"math/big"

	"github.com/google/uuid"

	"github.com/piwi3910/creasefit/internal/geom"
)

// SolutionSizeLimit is the largest accepted solution, counted in
// non-whitespace characters of its text form.
const SolutionSizeLimit = 5000

// Problem is a target silhouette plus its skeleton. Counter-clockwise
// polygons are outer boundaries, clockwise ones are holes.
type Problem struct {
	ID         string
	Name       string
	Silhouette []geom.Polygon
	Skeleton   []geom.Segment
}

func NewProblem(name string) Problem {
	return Problem{
		ID:   uuid.New().String()[:8],
		Name: name,
	}
}

// Area is the signed sum of the silhouette polygons, i.e. outer areas
// minus hole areas.
func (p Problem) Area() *big.Rat {
	total := new(big.Rat)
	for _, poly := range p.Silhouette {
		total.Add(total, poly.SignedArea())
	}
	return total
}

// Points lists every silhouette vertex.
func (p Problem) Points() []geom.Point {
	var pts []geom.Point
	for _, poly := range p.Silhouette {
		pts = append(pts, poly...)
	}
	return pts
}

// Solution is the persisted crease pattern: shared source vertices in the
// unit square, facets as index lists, and the folded position of every
// source vertex.
type Solution struct {
	Source      []geom.Point
	Facets      [][]int
	Destination []geom.Point
}

// FacetSource returns facet i as a polygon in source space.
func (s Solution) FacetSource(i int) geom.Polygon {
	poly := make(geom.Polygon, len(s.Facets[i]))
	for k, v := range s.Facets[i] {
		poly[k] = s.Source[v]
	}
	return poly
}

// FacetDestination returns facet i as a polygon in destination space.
func (s Solution) FacetDestination(i int) geom.Polygon {
	poly := make(geom.Polygon, len(s.Facets[i]))
	for k, v := range s.Facets[i] {
		poly[k] = s.Destination[v]
	}
	return poly
}

// Creases returns the facet edges that are not on the paper's edge, each
// shared edge once, in the order they first appear.
func (s Solution) Creases() []geom.Segment {
	seen := make(map[string]bool)
	var out []geom.Segment
	for i := range s.Facets {
		poly := s.FacetSource(i)
		for k := range poly {
			e := poly.Edge(k)
			if geom.OnUnitSquareBoundary(e) || seen[e.Key()] {
				continue
			}
			seen[e.Key()] = true
			out = append(out, e.Canonical())
		}
	}
	return out
}

// Strategy selects how the solver builds a folding.
type Strategy string

const (
	StrategySearch Strategy = "search" // Exact unroll search over the skeleton faces
	StrategyWrap   Strategy = "wrap"   // Fold the square around the silhouette's convex hull
	StrategyAuto   Strategy = "auto"   // Search first, wrap when the search gives up
)

// Memo backends for the search's visited-state set.
const (
	MemoMemory = "memory"
	MemoBadger = "badger"
)

// SolveSettings holds solver configuration.
type SolveSettings struct {
	Strategy   Strategy `json:"strategy" koanf:"strategy"`
	MaxStates  int      `json:"max_states" koanf:"max_states"`   // 0 = unbounded
	Memo       string   `json:"memo" koanf:"memo"`               // "memory" or "badger"
	MemoDir    string   `json:"memo_dir" koanf:"memo_dir"`       // badger directory; empty keeps it in memory
	Normalize  bool     `json:"normalize" koanf:"normalize"`     // Merge facets before output
	SizeLimit  int      `json:"size_limit" koanf:"size_limit"`   // Non-whitespace characters
	FoldPasses int      `json:"fold_passes" koanf:"fold_passes"` // Cap on wrap fold-excess passes
	Directions int      `json:"directions" koanf:"directions"`   // Size of the generated direction table
}

func DefaultSettings() SolveSettings {
	return SolveSettings{
		Strategy:   StrategyAuto,
		MaxStates:  200000,
		Memo:       MemoMemory,
		Normalize:  true,
		SizeLimit:  SolutionSizeLimit,
		FoldPasses: 64,
		Directions: 200,
	}
}

// SolveResult is what a solver run produced.
type SolveResult struct {
	Solution Solution `json:"-"`
	Strategy Strategy `json:"strategy"`
	Exact    bool     `json:"exact"` // The folded shape matches the silhouette exactly
	Facets   int      `json:"facets"`
	Size     int      `json:"size"`
	States   int      `json:"states"` // Search states explored
	Merges   int      `json:"merges"` // Facet pairs merged by normalization
	Warnings []string `json:"warnings,omitempty"`
}
