package search

import (
	"context"
	"math/big"

	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/piwi3910/creasefit/internal/fold"
	"github.com/piwi3910/creasefit/internal/geom"
)

var (
	// ErrNoSolution means every branch was explored without covering the square.
	ErrNoSolution = errors.New("no tiling of the unit square exists for these faces")

	// ErrSearchLimit means Options.MaxStates expansions ran out first.
	ErrSearchLimit = errors.New("search state limit reached")
)

// Options tunes a search. The zero value searches without a limit, keeps
// seen states in memory and logs nothing.
type Options struct {
	MaxStates int
	Seen      Seen
	Logger    *zap.Logger
}

// Result is a found tiling together with search statistics.
type Result struct {
	State      *fold.State
	Placements []Placement
	Seeds      int
	Expanded   int
	Distinct   int
}

// Engine searches one decomposed problem.
type Engine struct {
	g    *Graph
	opts Options
	log  *zap.Logger
}

func New(g *Graph, opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{g: g, opts: opts, log: log}
}

type rejection int

const (
	accepted rejection = iota
	rejectArea
	rejectBox
	rejectOverlap
	rejectMismatch
	rejectDead
)

// Search expands states smallest-remaining-area first until one covers the
// unit square exactly. A state is dropped as soon as one of its open edges
// admits no face at all, since that edge can never be closed later.
func (e *Engine) Search(ctx context.Context) (*Result, error) {
	seen := e.opts.Seen
	if seen == nil {
		seen = NewMemorySeen()
		defer seen.Close()
	}

	frontier := priorityqueue.NewWith(func(a, b interface{}) int {
		sa, sb := a.(*UnrollState), b.(*UnrollState)
		if c := sa.RemainingArea.Cmp(sb.RemainingArea); c != 0 {
			return c
		}
		return sb.Depth - sa.Depth
	})

	res := &Result{}
	push := func(s *UnrollState) error {
		added, err := seen.TryAdd(s)
		if err != nil {
			return err
		}
		if added {
			frontier.Enqueue(s)
		}
		return nil
	}

	for _, s := range e.seeds() {
		if s.Done() {
			return e.finish(res, s, seen)
		}
		res.Seeds++
		if err := push(s); err != nil {
			return nil, err
		}
	}
	e.log.Debug("seeded search",
		zap.Int("faces", e.g.FaceCount()), zap.Int("edges", e.g.EdgeCount()), zap.Int("seeds", res.Seeds))

	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "search interrupted")
		}
		item, ok := frontier.Dequeue()
		if !ok {
			e.log.Info("search exhausted", zap.Int("expanded", res.Expanded), zap.Int("distinct", seen.Len()))
			return nil, ErrNoSolution
		}
		if e.opts.MaxStates > 0 && res.Expanded >= e.opts.MaxStates {
			return nil, errors.Wrapf(ErrSearchLimit, "after %d states", res.Expanded)
		}
		res.Expanded++

		s := item.(*UnrollState)
		children, dead := e.expand(s)
		if dead {
			continue
		}
		for _, c := range children {
			if c.Done() {
				return e.finish(res, c, seen)
			}
			if err := push(c); err != nil {
				return nil, err
			}
		}
	}
}

// seeds lays each face edge with a rational length along the left side of
// the square, lower endpoint on the origin, in both orientations. Every
// tiling has a face touching the corner this way.
func (e *Engine) seeds() []*UnrollState {
	var out []*UnrollState
	skipped := 0
	for _, f := range e.g.Faces {
		for k := range f.Polygon {
			edge := f.Polygon.Edge(k)
			length, ok := geom.SqrtRat(edge.Dir().Len2())
			if !ok {
				skipped++
				continue
			}
			top := geom.P(geom.I(0), length)
			origin := geom.PI(0, 0)
			for _, mirror := range []bool{false, true} {
				to := geom.Seg(top, origin)
				if mirror {
					to = geom.Seg(origin, top)
				}
				place := fold.Frame(edge, to, mirror)
				s, why := e.attach(nil, f.Index, place.Inverse())
				if why != accepted {
					continue
				}
				out = append(out, s)
			}
		}
	}
	if skipped > 0 {
		e.log.Debug("skipped irrational seed edges", zap.Int("edges", skipped))
	}
	return out
}

// expand tries every face that can continue across each open edge. dead
// is set when some edge admits nothing.
func (e *Engine) expand(s *UnrollState) ([]*UnrollState, bool) {
	var children []*UnrollState
	for _, a := range s.Active {
		found := 0
		for _, side := range e.g.Edges[a.Edge].Sides {
			xf, ok := e.across(a, side)
			if !ok {
				continue
			}
			child, why := e.attach(s, side.Face, xf)
			if why != accepted {
				continue
			}
			children = append(children, child)
			found++
		}
		if found == 0 {
			return nil, true
		}
	}
	return children, false
}

// across picks, of the two isometries that agree with a.Xf on a.Seg, the
// one laying the face of side on the open side of a.
func (e *Engine) across(a ActiveEdge, side Side) (fold.Transform, bool) {
	face := e.g.Faces[side.Face]
	flat := a.Xf
	folded := a.Xf.Compose(fold.Reflection(a.Seg.A, a.Seg.B))
	for _, xf := range []fold.Transform{flat, folded} {
		inv := xf.Inverse()
		p := inv.Apply(face.Polygon[side.Pos])
		q := inv.Apply(face.Polygon[(side.Pos+1)%len(face.Polygon)])
		if xf.Flipped {
			p, q = q, p
		}
		if p.Equal(a.Seg.B) && q.Equal(a.Seg.A) {
			return xf, true
		}
	}
	return fold.Transform{}, false
}

// attach lays face f into the square with xf carrying it back to the
// folded shape, and checks in order: area, containment, then the new
// outline pieces against the open edges of parent.
func (e *Engine) attach(parent *UnrollState, f int, xf fold.Transform) (*UnrollState, rejection) {
	face := e.g.Faces[f]

	remaining, unusedArea := big.NewRat(1, 1), e.g.Area
	var active []ActiveEdge
	unused := make([]bool, len(e.g.Faces))
	for i := range unused {
		unused[i] = true
	}
	depth := 0
	if parent != nil {
		remaining, unusedArea = parent.RemainingArea, parent.UnusedArea
		active = parent.Active
		copy(unused, parent.Unused)
		depth = parent.Depth + 1
	}

	if remaining.Cmp(face.Area) < 0 {
		return nil, rejectArea
	}
	nextRemaining := new(big.Rat).Sub(remaining, face.Area)
	nextUnused := unusedArea
	if unused[f] {
		nextUnused = new(big.Rat).Sub(unusedArea, face.Area)
	}
	if nextUnused.Cmp(nextRemaining) > 0 {
		return nil, rejectArea
	}

	src := xf.Inverse().ApplyPolygon(face.Polygon)
	for _, v := range src {
		if !v.InUnitSquare() {
			return nil, rejectBox
		}
	}

	keep := make([]bool, len(active))
	for i := range keep {
		keep[i] = true
	}
	var fresh []ActiveEdge
	for k := range src {
		seg := src.Edge(k)
		if xf.Flipped {
			seg = seg.Reversed()
		}
		if geom.OnUnitSquareBoundary(seg) {
			continue
		}

		matched := -1
		for i, a := range active {
			if a.Seg.A.Equal(seg.B) && a.Seg.B.Equal(seg.A) {
				matched = i
				break
			}
		}
		if matched >= 0 {
			a := active[matched]
			if !keep[matched] || !a.Xf.Apply(seg.A).Equal(xf.Apply(seg.A)) || !a.Xf.Apply(seg.B).Equal(xf.Apply(seg.B)) {
				return nil, rejectMismatch
			}
			keep[matched] = false
			continue
		}

		for i, a := range active {
			if keep[i] && seg.Crosses(a.Seg) {
				return nil, rejectOverlap
			}
		}
		fresh = append(fresh, ActiveEdge{Seg: seg, Edge: face.Edges[k], Xf: xf})
	}

	next := make([]ActiveEdge, 0, len(active)+len(fresh))
	for i, a := range active {
		if keep[i] {
			next = append(next, a)
		}
	}
	next = append(next, fresh...)

	if (len(next) == 0) != (nextRemaining.Sign() == 0) {
		return nil, rejectDead
	}

	unused[f] = false
	child := &UnrollState{
		Active:        next,
		Unused:        unused,
		RemainingArea: nextRemaining,
		UnusedArea:    nextUnused,
		Parent:        parent,
		Placement:     Placement{Face: f, Source: src, Xf: xf},
		Depth:         depth,
	}
	child.seal()
	return child, accepted
}

func (e *Engine) finish(res *Result, s *UnrollState, seen Seen) (*Result, error) {
	res.Placements = s.Placements()
	res.Distinct = seen.Len()

	facets, err := e.canonicalFacets(res.Placements)
	if err != nil {
		return nil, err
	}
	res.State = fold.NewState(facets, fold.WithLogger(e.log))
	e.log.Info("search found tiling",
		zap.Int("facets", len(facets)), zap.Int("expanded", res.Expanded), zap.Int("distinct", res.Distinct))
	return res, nil
}

// canonicalFacets turns placements into facets, choosing among the eight
// symmetries of the square the one leaving the fewest mirrored facets and
// then the fewest facets that move at all.
func (e *Engine) canonicalFacets(placements []Placement) ([]fold.Facet, error) {
	var best []fold.Facet
	bestFlipped, bestMoved := -1, -1
	for _, sym := range squareSymmetries() {
		facets := make([]fold.Facet, 0, len(placements))
		flipped, moved := 0, 0
		for _, p := range placements {
			f, err := fold.NewFacet(sym.ApplyPolygon(p.Source), e.g.Faces[p.Face].Polygon)
			if err != nil {
				return nil, err
			}
			if f.Xf.Flipped {
				flipped++
			}
			if !f.Xf.IsIdentity() {
				moved++
			}
			facets = append(facets, f)
		}
		if best == nil || flipped < bestFlipped || (flipped == bestFlipped && moved < bestMoved) {
			best, bestFlipped, bestMoved = facets, flipped, moved
		}
	}
	return best, nil
}

// squareSymmetries lists the isometries of the unit square, identity first.
func squareSymmetries() []fold.Transform {
	sq := geom.UnitSquare()
	var out []fold.Transform
	for _, mirror := range []bool{false, true} {
		for r := 0; r < 4; r++ {
			dst := make(geom.Polygon, 4)
			for i := range dst {
				if mirror {
					dst[i] = sq[(r-i+4)%4]
				} else {
					dst[i] = sq[(i+r)%4]
				}
			}
			xf, err := fold.ComputeTransform(sq, dst)
			if err != nil {
				panic(err)
			}
			out = append(out, xf)
		}
	}
	return out
}
