// Package fold models a folded unit square as a list of facets and
// implements the operations that change it: folding along a line,
// refolding from crease marks, unfolding and normalization.
package fold

import (
	"math/big"

	"go.uber.org/zap"

	"github.com/piwi3910/creasefit/internal/geom"
)

// Facet is one flat piece of paper: its outline in the unit square, its
// outline after folding, and the isometry between the two.
type Facet struct {
	Source      geom.Polygon
	Destination geom.Polygon
	Xf          Transform
}

// NewFacet derives the transform from a source/destination pair.
func NewFacet(src, dst geom.Polygon) (Facet, error) {
	xf, err := ComputeTransform(src, dst)
	if err != nil {
		return Facet{}, err
	}
	return Facet{Source: src, Destination: dst, Xf: xf}, nil
}

// Check verifies that Xf carries every source vertex onto its destination.
func (f Facet) Check() error {
	if len(f.Source) != len(f.Destination) {
		return invariantf("facet has %d source and %d destination vertices", len(f.Source), len(f.Destination))
	}
	for i := range f.Source {
		if !f.Xf.Apply(f.Source[i]).Equal(f.Destination[i]) {
			return invariantf("facet vertex %d: %s does not map to %s", i, f.Source[i], f.Destination[i])
		}
	}
	return nil
}

// State is the current folding. Operations replace Facets as a whole so a
// failed operation leaves the previous facets intact.
type State struct {
	Facets []Facet
	log    *zap.Logger
}

// Option configures a State.
type Option func(*State)

// WithLogger routes fold warnings to l.
func WithLogger(l *zap.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.log = l
		}
	}
}

// NewState wraps existing facets.
func NewState(facets []Facet, opts ...Option) *State {
	s := &State{Facets: facets, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewSquare is the unfolded sheet: one facet, identity transform.
func NewSquare(opts ...Option) *State {
	sq := geom.UnitSquare()
	return NewState([]Facet{{Source: sq, Destination: sq, Xf: Identity()}}, opts...)
}

// Clone copies the facet list; facets themselves are immutable.
func (s *State) Clone() *State {
	return &State{Facets: append([]Facet(nil), s.Facets...), log: s.log}
}

// Logger exposes the state's logger to collaborators working on it.
func (s *State) Logger() *zap.Logger { return s.log }

// Check verifies every facet.
func (s *State) Check() error {
	for i, f := range s.Facets {
		if err := f.Check(); err != nil {
			return invariantf("facet %d: %v", i, err)
		}
	}
	return nil
}

// DestinationPoints lists every destination vertex of every facet.
func (s *State) DestinationPoints() []geom.Point {
	var pts []geom.Point
	for _, f := range s.Facets {
		pts = append(pts, f.Destination...)
	}
	return pts
}

// SourceArea sums the source areas of all facets; 1 for a complete sheet.
func (s *State) SourceArea() *big.Rat {
	total := new(big.Rat)
	for _, f := range s.Facets {
		total.Add(total, f.Source.Area())
	}
	return total
}

// Fold flips everything lying left of the directed line a→b over onto its
// right side. Each facet is split along the line; the left pieces are
// reflected, the right pieces stay. It reports whether anything flipped.
func (s *State) Fold(a, b geom.Point) (bool, error) {
	if a.Equal(b) {
		return false, invariantf("fold line endpoints coincide at %s", a)
	}

	toFold := s.foldRegion(a, b)
	reflection := Reflection(a, b)

	var next []Facet
	flipped, stayed := 0, 0
	for i, f := range s.Facets {
		inverse := f.Xf.Inverse()

		pieces, err := clipConvexRegion(f.Destination, toFold)
		if err != nil {
			return false, invariantf("facet %d: %v", i, err)
		}
		for _, piece := range pieces {
			nf := Facet{
				Source:      inverse.ApplyPolygon(piece),
				Destination: reflection.ApplyPolygon(piece),
				Xf:          reflection.Compose(f.Xf),
			}
			if err := nf.Check(); err != nil {
				return false, err
			}
			next = append(next, nf)
			flipped++
		}

		// toFold covers the whole left side of the line within reach of
		// any facet, so what remains is exactly the right half-plane part.
		rest, err := geom.ClipHalfPlane(f.Destination, a, b, false)
		if err != nil {
			return false, invariantf("facet %d: %v", i, err)
		}
		for _, piece := range rest {
			nf := Facet{
				Source:      inverse.ApplyPolygon(piece),
				Destination: piece,
				Xf:          f.Xf,
			}
			if err := nf.Check(); err != nil {
				return false, err
			}
			next = append(next, nf)
			stayed++
		}
	}

	switch {
	case flipped == 0:
		s.log.Warn("fold line folded nothing", zap.Stringer("from", a), zap.Stringer("to", b))
	case stayed == 0:
		s.log.Warn("fold line folded everything", zap.Stringer("from", a), zap.Stringer("to", b))
	}
	s.Facets = next
	return flipped > 0, nil
}

// foldRegion builds a counter-clockwise quadrilateral on the left of a→b
// that contains every destination vertex on that side. The extremes along
// and across the line are pushed out by one more step so the bound is
// never tight.
func (s *State) foldRegion(a, b geom.Point) geom.Polygon {
	along := b.Sub(a)
	perp := along.Perp()
	len2 := along.Len2()

	var minPt, maxPt geom.Point
	var minAlong, maxAlong *big.Rat
	far := new(big.Rat)
	for _, v := range s.DestinationPoints() {
		rel := v.Sub(a)
		t := rel.Dot(along)
		if minAlong == nil || t.Cmp(minAlong) < 0 {
			minAlong, minPt = t, v
		}
		if maxAlong == nil || t.Cmp(maxAlong) > 0 {
			maxAlong, maxPt = t, v
		}
		if h := rel.Dot(perp); h.Cmp(far) > 0 {
			far = h
		}
	}
	if minAlong == nil {
		minPt, maxPt = a, b
	}

	line := geom.Seg(a, b)
	lo := line.Project(minPt.Sub(along))
	hi := line.Project(maxPt.Add(along))
	out := perp.Scale(new(big.Rat).Quo(new(big.Rat).Add(far, len2), len2))
	return geom.Polygon{lo, hi, hi.Add(out), lo.Add(out)}
}

// clipConvexRegion intersects poly with a counter-clockwise convex region
// by clipping against each of its edges in turn.
func clipConvexRegion(poly, region geom.Polygon) ([]geom.Polygon, error) {
	pieces := []geom.Polygon{poly}
	for i := range region {
		e := region.Edge(i)
		var next []geom.Polygon
		for _, p := range pieces {
			clipped, err := geom.ClipHalfPlane(p, e.A, e.B, true)
			if err != nil {
				return nil, err
			}
			next = append(next, clipped...)
		}
		pieces = next
		if len(pieces) == 0 {
			break
		}
	}
	return pieces, nil
}
