package geom

import "math/big"

// Segment is a closed line segment from A to B.
type Segment struct {
	A, B Point
}

// Seg is shorthand for Segment{A: a, B: b}.
func Seg(a, b Point) Segment { return Segment{A: a, B: b} }

// Dir is B - A.
func (s Segment) Dir() Point { return s.B.Sub(s.A) }

func (s Segment) Reversed() Segment { return Segment{A: s.B, B: s.A} }

func (s Segment) IsDegenerate() bool { return s.A.Equal(s.B) }

// Canonical orders the endpoints so that A < B.
func (s Segment) Canonical() Segment {
	if s.B.Less(s.A) {
		return s.Reversed()
	}
	return s
}

// Key identifies the undirected segment.
func (s Segment) Key() string {
	c := s.Canonical()
	return c.A.Key() + " " + c.B.Key()
}

// DirectedKey identifies the directed segment.
func (s Segment) DirectedKey() string { return s.A.Key() + ">" + s.B.Key() }

// SameUndirected reports whether both segments have the same endpoints in
// either order.
func (s Segment) SameUndirected(o Segment) bool {
	return (s.A.Equal(o.A) && s.B.Equal(o.B)) || (s.A.Equal(o.B) && s.B.Equal(o.A))
}

func (s Segment) Equal(o Segment) bool { return s.A.Equal(o.A) && s.B.Equal(o.B) }

// Side is the orientation of p relative to the directed line A→B.
func (s Segment) Side(p Point) int { return Orient(s.A, s.B, p) }

// Contains reports whether p lies on the closed segment.
func (s Segment) Contains(p Point) bool {
	if s.Side(p) != 0 {
		return false
	}
	d := s.Dir()
	t := p.Sub(s.A).Dot(d)
	return t.Sign() >= 0 && t.Cmp(d.Len2()) <= 0
}

// ContainsInterior reports whether p lies on the segment but is not an endpoint.
func (s Segment) ContainsInterior(p Point) bool {
	return s.Contains(p) && !p.Equal(s.A) && !p.Equal(s.B)
}

// Project returns the orthogonal projection of p onto the supporting line.
func (s Segment) Project(p Point) Point {
	d := s.Dir()
	t := quo(p.Sub(s.A).Dot(d), d.Len2())
	return s.A.Add(d.Scale(t))
}

// Dist2 is the squared distance from p to the closed segment.
func (s Segment) Dist2(p Point) *big.Rat {
	d := s.Dir()
	l2 := d.Len2()
	if l2.Sign() == 0 {
		return p.Sub(s.A).Len2()
	}
	t := quo(p.Sub(s.A).Dot(d), l2)
	switch {
	case t.Sign() <= 0:
		return p.Sub(s.A).Len2()
	case t.Cmp(one) >= 0:
		return p.Sub(s.B).Len2()
	}
	return p.Sub(s.A.Add(d.Scale(t))).Len2()
}

// IntersectionKind classifies how two segments meet.
type IntersectionKind int

const (
	NoIntersection IntersectionKind = iota
	PointIntersection
	OverlapIntersection
)

// Intersection is the result of Segment.Intersect. For a point
// intersection only P is set; an overlap spans P..Q along the receiver.
type Intersection struct {
	Kind IntersectionKind
	P, Q Point
}

// Intersect computes the exact intersection of two closed segments.
func (s Segment) Intersect(o Segment) Intersection {
	r := s.Dir()
	q := o.Dir()
	if r.IsZero() {
		if o.Contains(s.A) {
			return Intersection{Kind: PointIntersection, P: s.A}
		}
		return Intersection{}
	}
	if q.IsZero() {
		if s.Contains(o.A) {
			return Intersection{Kind: PointIntersection, P: o.A}
		}
		return Intersection{}
	}

	w := o.A.Sub(s.A)
	denom := r.Cross(q)
	if denom.Sign() != 0 {
		t := quo(w.Cross(q), denom)
		u := quo(w.Cross(r), denom)
		if inUnit(t) && inUnit(u) {
			return Intersection{Kind: PointIntersection, P: s.A.Add(r.Scale(t))}
		}
		return Intersection{}
	}
	if w.Cross(r).Sign() != 0 {
		return Intersection{}
	}

	rr := r.Len2()
	t0 := quo(w.Dot(r), rr)
	t1 := quo(o.B.Sub(s.A).Dot(r), rr)
	if t0.Cmp(t1) > 0 {
		t0, t1 = t1, t0
	}
	lo := maxRat(t0, new(big.Rat))
	hi := minRat(t1, one)
	switch lo.Cmp(hi) {
	case 1:
		return Intersection{}
	case 0:
		return Intersection{Kind: PointIntersection, P: s.A.Add(r.Scale(lo))}
	}
	return Intersection{Kind: OverlapIntersection, P: s.A.Add(r.Scale(lo)), Q: s.A.Add(r.Scale(hi))}
}

// Crosses reports whether the segments meet anywhere other than at a
// common endpoint. Identical segments count as crossing.
func (s Segment) Crosses(o Segment) bool {
	in := s.Intersect(o)
	switch in.Kind {
	case NoIntersection:
		return false
	case PointIntersection:
		sharedEnd := (in.P.Equal(s.A) || in.P.Equal(s.B)) && (in.P.Equal(o.A) || in.P.Equal(o.B))
		return !sharedEnd
	}
	return true
}

// OnUnitSquareBoundary reports whether s lies along one side of the unit
// square's outline.
func OnUnitSquareBoundary(s Segment) bool {
	sameX := s.A.X.Cmp(s.B.X) == 0
	sameY := s.A.Y.Cmp(s.B.Y) == 0
	return (sameX && (s.A.X.Sign() == 0 || s.A.X.Cmp(one) == 0)) ||
		(sameY && (s.A.Y.Sign() == 0 || s.A.Y.Cmp(one) == 0))
}

func inUnit(t *big.Rat) bool { return t.Sign() >= 0 && t.Cmp(one) <= 0 }

// lineCrossing returns the point where segment p→q meets the line through
// a and b. The caller guarantees p and q lie strictly on opposite sides.
func lineCrossing(p, q, a, b Point) Point {
	d := b.Sub(a)
	sp := d.Cross(p.Sub(a))
	sq := d.Cross(q.Sub(a))
	t := quo(sp, sub(sp, sq))
	return p.Add(q.Sub(p).Scale(t))
}
