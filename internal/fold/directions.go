package fold

import (
	"sort"

	"github.com/piwi3910/creasefit/internal/geom"
)

// minDirectionCos is the cosine below which two table entries count as
// distinct directions, roughly half a degree.
var minDirectionCos = geom.R(99996, 100000)

// DirectionTable holds exact unit vectors in the first quadrant
// (0 <= angle < 90 degrees), sorted by angle.
type DirectionTable []geom.Point

// UnitDirections builds a table from n steps of the 3-4-5 rotation, each
// folded back into the first quadrant, then drops entries within about
// half a degree of the previous one. Denominators grow as 5^k, so callers
// build the table once and pass it around.
func UnitDirections(n int) DirectionTable {
	rowX := geom.PR(4, 5, -3, 5)
	rowY := geom.PR(3, 5, 4, 5)
	raw := []geom.Point{geom.PI(1, 0)}
	v := geom.PI(1, 0)
	for i := 0; i < n; i++ {
		v = geom.P(v.Dot(rowX), v.Dot(rowY))
		raw = append(raw, firstQuadrant(v))
	}
	return thinDirections(raw)
}

// firstQuadrant rotates v by quarter turns until 0 <= angle < 90 degrees.
func firstQuadrant(v geom.Point) geom.Point {
	for !(v.X.Sign() > 0 && v.Y.Sign() >= 0) {
		v = v.Perp().Neg()
	}
	return v
}

func thinDirections(dirs []geom.Point) DirectionTable {
	sorted := append([]geom.Point(nil), dirs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Cross(sorted[j]).Sign() > 0
	})
	var out DirectionTable
	for _, d := range sorted {
		if len(out) > 0 && out[len(out)-1].Dot(d).Cmp(minDirectionCos) >= 0 {
			continue
		}
		out = append(out, d)
	}
	return out
}

// With merges extra unit vectors into the table, for example the exact
// directions of a silhouette's own edges.
func (t DirectionTable) With(extra ...geom.Point) DirectionTable {
	all := append([]geom.Point(nil), t...)
	for _, e := range extra {
		all = append(all, firstQuadrant(e))
	}
	return thinDirections(all)
}
