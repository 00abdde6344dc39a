package model

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/piwi3910/creasefit/internal/geom"
)

// ValidationError lists every rule a solution breaks.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid solution: " + strings.Join(e.Problems, "; ")
}

// Validate checks that the solution is a legal folding of the unit square:
// sources inside the square and pairwise distinct, simple facets without
// zero-length edges, facets covering exactly area 1, every facet congruent
// to its destination, and no two facet edges crossing.
func (s Solution) Validate() error {
	var problems []string
	addf := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(s.Source) != len(s.Destination) {
		addf("%d source vertices but %d destination vertices", len(s.Source), len(s.Destination))
		return &ValidationError{Problems: problems}
	}

	seen := make(map[string]int, len(s.Source))
	for i, v := range s.Source {
		if !v.InUnitSquare() {
			addf("source vertex %d (%s) is outside the unit square", i, v)
		}
		if j, dup := seen[v.Key()]; dup {
			addf("source vertices %d and %d coincide at %s", j, i, v)
		}
		seen[v.Key()] = i
	}

	used := make(map[int]bool)
	total := new(big.Rat)
	var segs []geom.TaggedSegment
	for f, facet := range s.Facets {
		if len(facet) < 3 {
			addf("facet %d has %d vertices", f, len(facet))
			continue
		}
		for _, idx := range facet {
			if idx < 0 || idx >= len(s.Source) {
				addf("facet %d references vertex %d", f, idx)
				return &ValidationError{Problems: problems}
			}
			used[idx] = true
		}
		src := s.FacetSource(f)
		if !src.IsSimple() {
			addf("facet %d is not a simple polygon", f)
		}
		if err := congruent(src, s.FacetDestination(f)); err != nil {
			addf("facet %d: %v", f, err)
		}
		total.Add(total, src.Area())
		for i := range src {
			segs = append(segs, geom.TaggedSegment{Segment: src.Edge(i)})
		}
	}
	if total.Cmp(big.NewRat(1, 1)) != 0 {
		addf("facets cover area %s instead of 1", geom.FormatRat(total))
	}

	if len(problems) == 0 {
		arr, err := geom.BuildArrangement(segs)
		if err != nil {
			addf("edge arrangement: %v", err)
		} else if arr.VertexCount() != len(used) {
			addf("facet edges cross: %d arrangement vertices for %d used vertices", arr.VertexCount(), len(used))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// congruent checks that dst is src moved by an isometry, measuring every
// vertex in the frame of the first edge. The perpendicular coordinates
// either all agree or all disagree in sign (mirror image).
func congruent(src, dst geom.Polygon) error {
	sx := src[1].Sub(src[0])
	dx := dst[1].Sub(dst[0])
	if sx.Len2().Cmp(dx.Len2()) != 0 {
		return fmt.Errorf("first edge changes length")
	}
	sy, dy := sx.Perp(), dx.Perp()
	mirror := 0
	for i := range src {
		ds := src[i].Sub(src[0])
		dd := dst[i].Sub(dst[0])
		if ds.Dot(sx).Cmp(dd.Dot(dx)) != 0 {
			return fmt.Errorf("vertex %d is displaced along the first edge", i)
		}
		a, b := ds.Dot(sy), dd.Dot(dy)
		if a.Sign() == 0 && b.Sign() == 0 {
			continue
		}
		this := 1
		switch {
		case a.Cmp(b) == 0:
		case a.Cmp(new(big.Rat).Neg(b)) == 0:
			this = -1
		default:
			return fmt.Errorf("vertex %d is displaced across the first edge", i)
		}
		if mirror == 0 {
			mirror = this
		} else if mirror != this {
			return fmt.Errorf("vertex %d mixes mirrored and direct placement", i)
		}
	}
	return nil
}
