package fold

import (
	"github.com/piwi3910/creasefit/internal/geom"
	"github.com/piwi3910/creasefit/internal/model"
)

// FromSolution rebuilds a state from its persisted form, deriving each
// facet's transform from its vertex pairs.
func FromSolution(sol model.Solution, opts ...Option) (*State, error) {
	if len(sol.Source) != len(sol.Destination) {
		return nil, invariantf("%d source vertices but %d destination vertices", len(sol.Source), len(sol.Destination))
	}
	facets := make([]Facet, 0, len(sol.Facets))
	for i := range sol.Facets {
		f, err := NewFacet(sol.FacetSource(i), sol.FacetDestination(i))
		if err != nil {
			return nil, invariantf("facet %d: %v", i, err)
		}
		facets = append(facets, f)
	}
	return NewState(facets, opts...), nil
}

// Solution flattens the state into shared vertex lists. Vertices are
// de-duplicated by source position in first-seen order; every facet that
// shares a source vertex must fold it to the same place.
func (s *State) Solution() (model.Solution, error) {
	var sol model.Solution
	index := make(map[string]int)
	for fi, f := range s.Facets {
		facet := make([]int, len(f.Source))
		for k, v := range f.Source {
			idx, ok := index[v.Key()]
			if !ok {
				idx = len(sol.Source)
				index[v.Key()] = idx
				sol.Source = append(sol.Source, v)
				sol.Destination = append(sol.Destination, f.Destination[k])
			} else if !sol.Destination[idx].Equal(f.Destination[k]) {
				return model.Solution{}, invariantf("source vertex %s folds to both %s and %s (facet %d)",
					v, sol.Destination[idx], f.Destination[k], fi)
			}
			facet[k] = idx
		}
		sol.Facets = append(sol.Facets, facet)
	}
	return sol, nil
}

// Bounds returns the bounding box of the folded shape.
func (s *State) Bounds() (geom.Point, geom.Point) {
	return geom.Polygon(s.DestinationPoints()).Bounds()
}
