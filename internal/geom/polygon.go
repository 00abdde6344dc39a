package geom

import (
	"math/big"
	"strings"
)

// Polygon is a closed vertex ring; the last vertex connects back to the first.
type Polygon []Point

// UnitSquare returns the counter-clockwise square (0,0),(1,0),(1,1),(0,1).
func UnitSquare() Polygon {
	return Polygon{PI(0, 0), PI(1, 0), PI(1, 1), PI(0, 1)}
}

func (p Polygon) Clone() Polygon {
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// Edge returns the segment from vertex i to vertex i+1 (cyclically).
func (p Polygon) Edge(i int) Segment {
	return Segment{A: p[i], B: p[(i+1)%len(p)]}
}

// SignedArea is positive for counter-clockwise rings.
func (p Polygon) SignedArea() *big.Rat {
	sum := new(big.Rat)
	for i := range p {
		j := (i + 1) % len(p)
		sum.Add(sum, p[i].Cross(p[j]))
	}
	return sum.Quo(sum, I(2))
}

// Area is the unsigned enclosed area.
func (p Polygon) Area() *big.Rat { return new(big.Rat).Abs(p.SignedArea()) }

func (p Polygon) IsCCW() bool { return p.SignedArea().Sign() > 0 }

// Reversed returns the ring walked in the opposite direction, starting at
// the same vertex.
func (p Polygon) Reversed() Polygon {
	out := make(Polygon, len(p))
	for i := range p {
		out[i] = p[(len(p)-i)%len(p)]
	}
	return out
}

// CCW returns p, or its reversal when p is clockwise.
func (p Polygon) CCW() Polygon {
	if p.SignedArea().Sign() < 0 {
		return p.Reversed()
	}
	return p
}

// Map applies f to every vertex.
func (p Polygon) Map(f func(Point) Point) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = f(v)
	}
	return out
}

// IndexOf returns the position of v or -1.
func (p Polygon) IndexOf(v Point) int {
	for i, w := range p {
		if w.Equal(v) {
			return i
		}
	}
	return -1
}

func (p Polygon) Equal(q Polygon) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if !p[i].Equal(q[i]) {
			return false
		}
	}
	return true
}

// IsConvex reports whether every turn has the same orientation, ignoring
// collinear vertices.
func (p Polygon) IsConvex() bool {
	if len(p) < 3 {
		return false
	}
	sign := 0
	for i := range p {
		o := Orient(p[i], p[(i+1)%len(p)], p[(i+2)%len(p)])
		if o == 0 {
			continue
		}
		if sign == 0 {
			sign = o
		} else if o != sign {
			return false
		}
	}
	return sign != 0
}

// OnBoundary reports whether v lies on some edge of p.
func (p Polygon) OnBoundary(v Point) bool {
	for i := range p {
		if p.Edge(i).Contains(v) {
			return true
		}
	}
	return false
}

// Contains reports whether v lies strictly inside p.
func (p Polygon) Contains(v Point) bool {
	if p.OnBoundary(v) {
		return false
	}
	inside := false
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		if (a.Y.Cmp(v.Y) > 0) == (b.Y.Cmp(v.Y) > 0) {
			continue
		}
		t := quo(sub(v.Y, a.Y), sub(b.Y, a.Y))
		x := add(a.X, mul(t, sub(b.X, a.X)))
		if v.X.Cmp(x) < 0 {
			inside = !inside
		}
	}
	return inside
}

// Bounds returns the lower-left and upper-right corners of the bounding box.
func (p Polygon) Bounds() (Point, Point) {
	lo, hi := p[0], p[0]
	for _, v := range p[1:] {
		lo = Point{X: minRat(lo.X, v.X), Y: minRat(lo.Y, v.Y)}
		hi = Point{X: maxRat(hi.X, v.X), Y: maxRat(hi.Y, v.Y)}
	}
	return lo, hi
}

// IsSimple reports whether the ring has at least three distinct vertices,
// no zero-length edges and no two edges meeting except consecutive edges
// at their shared vertex.
func (p Polygon) IsSimple() bool {
	n := len(p)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		if p.Edge(i).IsDegenerate() {
			return false
		}
	}
	for i := 0; i < n; i++ {
		ei := p.Edge(i)
		for j := i + 1; j < n; j++ {
			ej := p.Edge(j)
			in := ei.Intersect(ej)
			if in.Kind == NoIntersection {
				continue
			}
			adjacent := j == i+1 || (i == 0 && j == n-1)
			if !adjacent || in.Kind == OverlapIntersection {
				return false
			}
			shared := ei.B
			if j != i+1 {
				shared = ei.A
			}
			if !in.P.Equal(shared) {
				return false
			}
		}
	}
	return true
}

func (p Polygon) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// DropDuplicates removes consecutive repeated vertices, including a
// repeat of the first vertex at the end.
func (p Polygon) DropDuplicates() Polygon {
	out := make(Polygon, 0, len(p))
	for _, v := range p {
		if len(out) > 0 && out[len(out)-1].Equal(v) {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && out[0].Equal(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

// CollapseSpikes removes zero-width excursions: a run a,b,a becomes a.
func (p Polygon) CollapseSpikes() Polygon {
	out := p.DropDuplicates()
	for {
		n := len(out)
		if n <= 3 {
			return out
		}
		found := -1
		for s := 0; s < n; s++ {
			if out[s].Equal(out[(s+2)%n]) {
				found = s
				break
			}
		}
		if found < 0 {
			return out
		}
		drop1, drop2 := (found+1)%n, (found+2)%n
		next := make(Polygon, 0, n-2)
		for i, v := range out {
			if i != drop1 && i != drop2 {
				next = append(next, v)
			}
		}
		out = next.DropDuplicates()
	}
}

// SharedEdge finds an edge i of p and j of q that run between the same two
// vertices in opposite directions.
func SharedEdge(p, q Polygon) (int, int, bool) {
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		for j := range q {
			if q[j].Equal(b) && q[(j+1)%len(q)].Equal(a) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// SameDirectionEdge finds an edge present in both rings with the same
// orientation.
func SameDirectionEdge(p, q Polygon) (int, int, bool) {
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		for j := range q {
			if q[j].Equal(a) && q[(j+1)%len(q)].Equal(b) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// Splice joins p and q along edge i of p and edge j of q, which must run
// between the same vertices in opposite directions. Each seam vertex is
// kept once and slits left behind by the join are collapsed.
func Splice(p Polygon, i int, q Polygon, j int) Polygon {
	out := make(Polygon, 0, len(p)+len(q)-2)
	for k := 1; k < len(p); k++ {
		out = append(out, p[(i+k)%len(p)])
	}
	for k := 1; k < len(q); k++ {
		out = append(out, q[(j+k)%len(q)])
	}
	return out.CollapseSpikes()
}
