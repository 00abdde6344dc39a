package fold

import (
	"math/big"

	"go.uber.org/zap"

	"github.com/piwi3910/creasefit/internal/geom"
)

type creaseKind int

const (
	creaseOutside creaseKind = iota // On the paper boundary
	creaseFlat                      // Shared by two facets, left unfolded
	creaseFold                      // Shared by two facets, folded
)

type crease struct {
	seg    geom.Segment
	kind   creaseKind
	facets []int
}

// creaseGraph indexes every source edge by its endpoints in canonical
// order. Edges are kept in first-seen order so nearest-edge ties resolve
// deterministically.
type creaseGraph struct {
	byKey map[string]*crease
	order []*crease
}

func (s *State) buildCreaseGraph() (*creaseGraph, error) {
	g := &creaseGraph{byKey: make(map[string]*crease)}
	for i, f := range s.Facets {
		for k := range f.Source {
			seg := f.Source.Edge(k).Canonical()
			c, ok := g.byKey[seg.Key()]
			if !ok {
				c = &crease{seg: seg}
				g.byKey[seg.Key()] = c
				g.order = append(g.order, c)
			}
			c.facets = append(c.facets, i)
		}
	}

	for _, c := range g.order {
		switch len(c.facets) {
		case 1:
			c.kind = creaseOutside
			if !geom.OnUnitSquareBoundary(c.seg) {
				return nil, invariantf("edge %s borders one facet but is not on the paper boundary", c.seg.Key())
			}
		case 2:
			c.kind = creaseFlat
		default:
			return nil, invariantf("edge %s is shared by %d facets", c.seg.Key(), len(c.facets))
		}
	}
	return g, nil
}

// nearest returns the crease closest to p, the first one on ties.
func (g *creaseGraph) nearest(p geom.Point) *crease {
	var best *crease
	var bestDist2 *big.Rat
	for _, c := range g.order {
		d := c.seg.Dist2(p)
		if bestDist2 == nil || d.Cmp(bestDist2) < 0 {
			best, bestDist2 = c, d
		}
	}
	return best
}

// Unfold returns every facet to its source position.
func (s *State) Unfold() error { return s.Refold(nil) }

// Refold rebuilds the destination geometry from the crease pattern: edges
// near a mark are folded, every other interior edge stays flat. Transforms
// propagate outward from facet 0, which keeps the identity. When two paths
// reach a facet with different transforms the marks are inconsistent; the
// state is then unfolded and ErrInconsistentMarks returned.
func (s *State) Refold(marks []geom.Point) error {
	g, err := s.buildCreaseGraph()
	if err != nil {
		return err
	}
	if len(s.Facets) == 0 {
		return nil
	}

	for _, m := range marks {
		c := g.nearest(m)
		if c == nil {
			continue
		}
		switch c.kind {
		case creaseOutside:
			s.log.Warn("crease mark lands on the paper boundary", zap.Stringer("mark", m), zap.String("edge", c.seg.Key()))
		case creaseFold:
			s.log.Warn("edge marked more than once", zap.Stringer("mark", m), zap.String("edge", c.seg.Key()))
		default:
			c.kind = creaseFold
		}
	}

	committed := map[int]Transform{0: Identity()}
	work := []int{0}
	for len(work) > 0 {
		i := work[len(work)-1]
		work = work[:len(work)-1]
		xf := committed[i]

		src := s.Facets[i].Source
		for k := range src {
			c := g.byKey[src.Edge(k).Key()]
			if c.kind == creaseOutside {
				continue
			}
			j := c.facets[0]
			if j == i {
				j = c.facets[1]
			}

			next := xf
			if c.kind == creaseFold {
				next = Reflection(xf.Apply(c.seg.A), xf.Apply(c.seg.B)).Compose(xf)
			}

			if have, ok := committed[j]; ok {
				if !have.Equal(next) {
					s.log.Warn("crease marks conflict, unfolding",
						zap.Int("facet", j), zap.String("edge", c.seg.Key()))
					if err := s.Refold(nil); err != nil {
						return err
					}
					return ErrInconsistentMarks
				}
				continue
			}
			committed[j] = next
			work = append(work, j)
		}
	}

	next := make([]Facet, len(s.Facets))
	for i, f := range s.Facets {
		xf, ok := committed[i]
		if !ok {
			return invariantf("facet %d is not connected to facet 0", i)
		}
		next[i] = Facet{Source: f.Source, Destination: xf.ApplyPolygon(f.Source), Xf: xf}
	}
	s.Facets = next
	return nil
}
