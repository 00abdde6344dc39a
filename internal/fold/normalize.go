package fold

import (
	"go.uber.org/zap"

	"github.com/piwi3910/creasefit/internal/geom"
)

// NormalizeStats reports what Normalize changed.
type NormalizeStats struct {
	Reversed int // Facets turned counter-clockwise
	Merged   int // Facet pairs joined
}

// Normalize makes every source outline counter-clockwise and then merges
// facets that share a transform and an edge until no pair qualifies.
// Merging keeps the folded shape and the crease pattern's meaning; it
// only removes creases that were never folded.
func (s *State) Normalize() (NormalizeStats, error) {
	var stats NormalizeStats

	facets := make([]Facet, len(s.Facets))
	for i, f := range s.Facets {
		if f.Source.SignedArea().Sign() < 0 {
			f = Facet{Source: f.Source.Reversed(), Destination: f.Destination.Reversed(), Xf: f.Xf}
			stats.Reversed++
		}
		facets[i] = f
	}

	rejected := make(map[[2]int]bool)
	for {
		i, j, merged, err := findMerge(facets, rejected)
		if err != nil {
			return stats, err
		}
		if i < 0 {
			break
		}
		if merged == nil {
			rejected[[2]int{i, j}] = true
			continue
		}

		next := make([]Facet, 0, len(facets)-1)
		for k, f := range facets {
			if k != i && k != j {
				next = append(next, f)
			}
		}
		facets = append(next, *merged)
		rejected = make(map[[2]int]bool)
		stats.Merged++
	}

	s.log.Debug("normalized facets",
		zap.Int("reversed", stats.Reversed), zap.Int("merged", stats.Merged), zap.Int("facets", len(facets)))
	s.Facets = facets
	return stats, nil
}

// findMerge returns the first mergeable pair. A nil facet with valid
// indices means the pair shares an edge but joining them would not give a
// simple outline.
func findMerge(facets []Facet, rejected map[[2]int]bool) (int, int, *Facet, error) {
	for i := range facets {
		for j := i + 1; j < len(facets); j++ {
			if rejected[[2]int{i, j}] || !facets[i].Xf.Equal(facets[j].Xf) {
				continue
			}
			a, b := facets[i].Source, facets[j].Source
			if ei, ej, same := geom.SameDirectionEdge(a, b); same {
				return -1, -1, nil, invariantf("facets %d and %d both walk edge %s and %s in the same direction",
					i, j, a.Edge(ei).Key(), b.Edge(ej).Key())
			}
			ei, ej, ok := geom.SharedEdge(a, b)
			if !ok {
				continue
			}
			src := geom.Splice(a, ei, b, ej)
			if !src.IsSimple() {
				return i, j, nil, nil
			}
			xf := facets[i].Xf
			return i, j, &Facet{Source: src, Destination: xf.ApplyPolygon(src), Xf: xf}, nil
		}
	}
	return -1, -1, nil, nil
}
