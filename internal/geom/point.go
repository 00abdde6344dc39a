package geom

import (
	"fmt"
	"math/big"
	"strings"
)

// Point is an exact 2D point. It doubles as a displacement vector.
type Point struct {
	X, Y *big.Rat
}

// P builds a point from two rationals.
func P(x, y *big.Rat) Point { return Point{X: x, Y: y} }

// PI builds a point with integer coordinates.
func PI(x, y int64) Point { return Point{X: I(x), Y: I(y)} }

// PR builds the point (xn/xd, yn/yd).
func PR(xn, xd, yn, yd int64) Point { return Point{X: R(xn, xd), Y: R(yn, yd)} }

// ParsePoint reads "x,y" where both coordinates are rationals.
func ParsePoint(s string) (Point, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("invalid point %q", s)
	}
	x, err := ParseRat(parts[0])
	if err != nil {
		return Point{}, err
	}
	y, err := ParseRat(parts[1])
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

// MustPoint is ParsePoint for literals.
func MustPoint(s string) Point {
	p, err := ParsePoint(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Point) Add(q Point) Point { return Point{X: add(p.X, q.X), Y: add(p.Y, q.Y)} }
func (p Point) Sub(q Point) Point { return Point{X: sub(p.X, q.X), Y: sub(p.Y, q.Y)} }
func (p Point) Neg() Point        { return Point{X: neg(p.X), Y: neg(p.Y)} }

// Scale multiplies both coordinates by r.
func (p Point) Scale(r *big.Rat) Point { return Point{X: mul(p.X, r), Y: mul(p.Y, r)} }

// Div divides both coordinates by r, which must be non-zero.
func (p Point) Div(r *big.Rat) Point { return Point{X: quo(p.X, r), Y: quo(p.Y, r)} }

// Dot is the scalar product.
func (p Point) Dot(q Point) *big.Rat {
	return add(mul(p.X, q.X), mul(p.Y, q.Y))
}

// Cross is the z component of the 3D cross product; positive when q lies
// counter-clockwise of p.
func (p Point) Cross(q Point) *big.Rat {
	return sub(mul(p.X, q.Y), mul(p.Y, q.X))
}

// Perp rotates the vector a quarter turn counter-clockwise.
func (p Point) Perp() Point { return Point{X: neg(p.Y), Y: p.X} }

// Len2 is the squared length.
func (p Point) Len2() *big.Rat { return p.Dot(p) }

func (p Point) IsZero() bool { return p.X.Sign() == 0 && p.Y.Sign() == 0 }

func (p Point) Equal(q Point) bool { return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0 }

// Less orders points by x, then y.
func (p Point) Less(q Point) bool {
	if c := p.X.Cmp(q.X); c != 0 {
		return c < 0
	}
	return p.Y.Cmp(q.Y) < 0
}

// Compare returns -1, 0 or 1 following Less.
func (p Point) Compare(q Point) int {
	if c := p.X.Cmp(q.X); c != 0 {
		return c
	}
	return p.Y.Cmp(q.Y)
}

// String renders the point as "x,y" in the persisted notation.
func (p Point) String() string { return FormatRat(p.X) + "," + FormatRat(p.Y) }

// Key is a canonical map key; equal points have equal keys.
func (p Point) Key() string { return p.String() }

// Float returns an approximation suitable for rendering only.
func (p Point) Float() (float64, float64) {
	x, _ := p.X.Float64()
	y, _ := p.Y.Float64()
	return x, y
}

// InUnitSquare reports whether 0 <= x, y <= 1.
func (p Point) InUnitSquare() bool {
	return p.X.Sign() >= 0 && p.Y.Sign() >= 0 && p.X.Cmp(one) <= 0 && p.Y.Cmp(one) <= 0
}

var one = big.NewRat(1, 1)

// Orient returns the sign of the turn a→b→c: 1 for a left turn, -1 for a
// right turn and 0 when the points are collinear.
func Orient(a, b, c Point) int {
	return b.Sub(a).Cross(c.Sub(a)).Sign()
}

// UnitDirection normalises v when its length is rational.
func UnitDirection(v Point) (Point, bool) {
	if v.IsZero() {
		return Point{}, false
	}
	l, ok := SqrtRat(v.Len2())
	if !ok {
		return Point{}, false
	}
	return v.Div(l), true
}
