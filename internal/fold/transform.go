package fold

import (
	"fmt"
	"math/big"

	"github.com/piwi3910/creasefit/internal/geom"
)

// Transform is a planar isometry p ↦ X·p.x + Y·p.y + T. X and Y are the
// images of the unit axes; Flipped is set when the map reverses
// orientation.
type Transform struct {
	X, Y, T geom.Point
	Flipped bool
}

func Identity() Transform {
	return Transform{X: geom.PI(1, 0), Y: geom.PI(0, 1), T: geom.PI(0, 0)}
}

// Translation moves every point by d.
func Translation(d geom.Point) Transform {
	t := Identity()
	t.T = d
	return t
}

func (t Transform) linear(v geom.Point) geom.Point {
	return t.X.Scale(v.X).Add(t.Y.Scale(v.Y))
}

func (t Transform) Apply(p geom.Point) geom.Point {
	return t.linear(p).Add(t.T)
}

func (t Transform) ApplyPolygon(poly geom.Polygon) geom.Polygon {
	return poly.Map(t.Apply)
}

// Compose returns t∘o, the map applying o first and then t.
func (t Transform) Compose(o Transform) Transform {
	return Transform{
		X:       t.linear(o.X),
		Y:       t.linear(o.Y),
		T:       t.Apply(o.T),
		Flipped: t.Flipped != o.Flipped,
	}
}

// Inverse transposes the linear part, which is exact for isometries.
func (t Transform) Inverse() Transform {
	inv := Transform{
		X:       geom.P(t.X.X, t.Y.X),
		Y:       geom.P(t.X.Y, t.Y.Y),
		Flipped: t.Flipped,
	}
	inv.T = inv.linear(t.T).Neg()
	return inv
}

func (t Transform) Equal(o Transform) bool {
	return t.X.Equal(o.X) && t.Y.Equal(o.Y) && t.T.Equal(o.T)
}

func (t Transform) IsIdentity() bool { return t.Equal(Identity()) }

func (t Transform) String() string {
	flip := ""
	if t.Flipped {
		flip = " flipped"
	}
	return fmt.Sprintf("[%s | %s | %s%s]", t.X, t.Y, t.T, flip)
}

// frame solves for the linear map sending fromX to toX and the left
// perpendicular of fromX to the left perpendicular of toX, or to its
// negation when mirror is set. fromX and toX must have equal length.
func frame(fromX, toX geom.Point, mirror bool) (geom.Point, geom.Point) {
	fromY := fromX.Perp()
	toY := toX.Perp()
	if mirror {
		toY = toY.Neg()
	}
	len2 := fromX.Len2()
	x := toX.Scale(fromX.X).Add(toY.Scale(fromY.X)).Div(len2)
	y := toX.Scale(fromX.Y).Add(toY.Scale(fromY.Y)).Div(len2)
	return x, y
}

// Frame builds the isometry sending from to to, where both are segments
// of the same length. With mirror set the left side of from lands on the
// right side of to.
func Frame(from, to geom.Segment, mirror bool) Transform {
	x, y := frame(from.Dir(), to.Dir(), mirror)
	t := Transform{X: x, Y: y, Flipped: mirror}
	t.T = to.A.Sub(t.linear(from.A))
	return t
}

// Reflection mirrors the plane across the line through a and b.
func Reflection(a, b geom.Point) Transform {
	along := b.Sub(a)
	x, y := frame(along, along, true)
	t := Transform{X: x, Y: y, Flipped: true}
	t.T = a.Sub(t.linear(a))
	return t
}

// ComputeTransform finds the isometry carrying src[i] to dst[i] for every
// i. The basis comes from the first edge; the first vertex off that edge
// decides whether the map mirrors. Every pair is verified afterwards.
func ComputeTransform(src, dst []geom.Point) (Transform, error) {
	if len(src) != len(dst) {
		return Transform{}, invariantf("%d source points against %d destination points", len(src), len(dst))
	}
	switch len(src) {
	case 0:
		return Identity(), nil
	case 1:
		return Translation(dst[0].Sub(src[0])), nil
	}

	fromX := src[1].Sub(src[0])
	toX := dst[1].Sub(dst[0])
	if fromX.IsZero() {
		return Transform{}, invariantf("zero-length first edge at %s", src[0])
	}
	if fromX.Len2().Cmp(toX.Len2()) != 0 {
		return Transform{}, invariantf("first edge length changes from %s to %s",
			geom.FormatRat(fromX.Len2()), geom.FormatRat(toX.Len2()))
	}

	fromY, toY := fromX.Perp(), toX.Perp()
	mirror := false
	for i := 2; i < len(src); i++ {
		s := src[i].Sub(src[0]).Dot(fromY)
		if s.Sign() == 0 {
			continue
		}
		d := dst[i].Sub(dst[0]).Dot(toY)
		if s.Cmp(d) == 0 {
			break
		}
		if s.Cmp(new(big.Rat).Neg(d)) == 0 {
			mirror = true
			break
		}
		return Transform{}, invariantf("vertex %d cannot be placed by an isometry", i)
	}

	x, y := frame(fromX, toX, mirror)
	t := Transform{X: x, Y: y, Flipped: mirror}
	t.T = dst[0].Sub(t.linear(src[0]))

	for i := range src {
		if !t.Apply(src[i]).Equal(dst[i]) {
			return Transform{}, invariantf("transform misses vertex %d: %s maps to %s, want %s",
				i, src[i], t.Apply(src[i]), dst[i])
		}
	}
	return t, nil
}
