package fold

import (
	"math/big"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/piwi3910/creasefit/internal/geom"
)

// WrapResult describes a hull wrap.
type WrapResult struct {
	State     *State
	Direction geom.Point // Image of the paper's x axis
	Fits      bool       // The hull fitted inside the unfolded square
	Contained bool       // Every folded vertex ended inside the hull
	Passes    int
}

// Wrap lays the unit square over the convex hull of pts and folds the
// overhang inward along every hull edge, repeating until a pass leaves
// the facet count unchanged or maxPasses is reached.
//
// The square is turned to the first direction in dirs in which the hull's
// bounding box fits inside it; when none fits, to the direction with the
// smallest longer side, centred on the hull.
func Wrap(pts []geom.Point, dirs DirectionTable, maxPasses int, opts ...Option) (*WrapResult, error) {
	hull := geom.ConvexHull(pts)
	if len(hull) < 3 {
		return nil, errors.Errorf("hull of %d points is degenerate", len(pts))
	}

	var extra []geom.Point
	for i := range hull {
		if u, ok := geom.UnitDirection(hull.Edge(i).Dir()); ok {
			extra = append(extra, u)
		}
	}
	candidates := dirs.With(extra...)

	var best *placement
	for _, d := range candidates {
		p := placeOver(hull, d)
		if p.fits {
			best = p
			break
		}
		if best == nil || p.longer().Cmp(best.longer()) < 0 {
			best = p
		}
	}
	if best == nil {
		return nil, errors.New("no directions to try")
	}

	sq := geom.UnitSquare()
	dst := sq.Map(func(v geom.Point) geom.Point {
		return best.origin.Add(best.x.Scale(v.X)).Add(best.y.Scale(v.Y))
	})
	f, err := NewFacet(sq, dst)
	if err != nil {
		return nil, err
	}
	s := NewState([]Facet{f}, opts...)
	s.log.Debug("wrap placement",
		zap.Stringer("direction", best.x), zap.Bool("fits", best.fits), zap.Int("candidates", len(candidates)))

	res := &WrapResult{State: s, Direction: best.x, Fits: best.fits}
	for res.Passes < maxPasses {
		before := len(s.Facets)
		for i := range hull {
			e := hull.Edge(i)
			if _, err := s.Fold(e.B, e.A); err != nil {
				return nil, errors.Wrapf(err, "folding along hull edge %d", i)
			}
		}
		res.Passes++
		if len(s.Facets) == before {
			break
		}
	}

	res.Contained = true
	for _, v := range s.DestinationPoints() {
		if !hull.Contains(v) && !hull.OnBoundary(v) {
			res.Contained = false
			break
		}
	}
	return res, nil
}

type placement struct {
	x, y   geom.Point
	origin geom.Point
	w, h   *big.Rat
	fits   bool
}

func (p *placement) longer() *big.Rat {
	if p.w.Cmp(p.h) >= 0 {
		return p.w
	}
	return p.h
}

// placeOver measures the hull in the frame (x, perp x) and positions the
// square's corner so the square covers the hull's box when it fits, or is
// centred on it otherwise.
func placeOver(hull geom.Polygon, x geom.Point) *placement {
	y := x.Perp()
	var minX, maxX, minY, maxY *big.Rat
	for _, v := range hull {
		px, py := v.Dot(x), v.Dot(y)
		if minX == nil || px.Cmp(minX) < 0 {
			minX = px
		}
		if maxX == nil || px.Cmp(maxX) > 0 {
			maxX = px
		}
		if minY == nil || py.Cmp(minY) < 0 {
			minY = py
		}
		if maxY == nil || py.Cmp(maxY) > 0 {
			maxY = py
		}
	}
	p := &placement{x: x, y: y}
	p.w = new(big.Rat).Sub(maxX, minX)
	p.h = new(big.Rat).Sub(maxY, minY)
	one := big.NewRat(1, 1)
	p.fits = p.w.Cmp(one) <= 0 && p.h.Cmp(one) <= 0

	ox, oy := minX, minY
	if !p.fits {
		half := big.NewRat(1, 2)
		ox = new(big.Rat).Sub(new(big.Rat).Quo(new(big.Rat).Add(minX, maxX), big.NewRat(2, 1)), half)
		oy = new(big.Rat).Sub(new(big.Rat).Quo(new(big.Rat).Add(minY, maxY), big.NewRat(2, 1)), half)
	}
	p.origin = x.Scale(ox).Add(y.Scale(oy))
	return p
}
