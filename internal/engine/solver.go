package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/piwi3910/creasefit/internal/fold"
	"github.com/piwi3910/creasefit/internal/geom"
	"github.com/piwi3910/creasefit/internal/model"
	"github.com/piwi3910/creasefit/internal/search"
)

// ErrSolutionTooLarge is returned when the written solution exceeds
// SolveSettings.SizeLimit non-whitespace characters.
var ErrSolutionTooLarge = errors.New("solution exceeds the size limit")

// Solver turns a problem into a folding of the unit square.
type Solver struct {
	Settings model.SolveSettings

	log  *zap.Logger
	dirs fold.DirectionTable
}

type Option func(*Solver)

func WithLogger(l *zap.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.log = l
		}
	}
}

// WithDirections reuses a direction table built elsewhere. Building one
// costs time growing with its size, so callers running many solves share it.
func WithDirections(t fold.DirectionTable) Option {
	return func(s *Solver) { s.dirs = t }
}

func New(settings model.SolveSettings, opts ...Option) *Solver {
	s := &Solver{Settings: settings, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Solve runs the configured strategy. With StrategyAuto the exact search
// runs first; when it finds nothing or hits its state limit the hull wrap
// produces an approximate answer instead.
func (s *Solver) Solve(ctx context.Context, p model.Problem) (model.SolveResult, error) {
	start := time.Now()
	res := model.SolveResult{Strategy: s.Settings.Strategy}

	var state *fold.State
	var err error
	switch s.Settings.Strategy {
	case model.StrategySearch:
		state, err = s.runSearch(ctx, p, &res)
	case model.StrategyWrap:
		state, err = s.runWrap(p, &res)
	case model.StrategyAuto, "":
		state, err = s.runSearch(ctx, p, &res)
		if errors.Is(err, search.ErrNoSolution) || errors.Is(err, search.ErrSearchLimit) {
			s.log.Warn("search gave up, wrapping the hull instead", zap.Error(err))
			res.Warnings = append(res.Warnings, fmt.Sprintf("search: %v", err))
			state, err = s.runWrap(p, &res)
		}
	default:
		return res, errors.Errorf("unknown strategy %q", s.Settings.Strategy)
	}
	if err != nil {
		return res, err
	}

	if s.Settings.Normalize {
		stats, err := state.Normalize()
		if err != nil {
			return res, errors.Wrap(err, "normalizing")
		}
		res.Merges = stats.Merged
	}

	sol, err := state.Solution()
	if err != nil {
		return res, err
	}
	if err := sol.Validate(); err != nil {
		return res, errors.Wrap(err, "solver produced an invalid folding")
	}
	res.Solution = sol
	res.Facets = len(sol.Facets)
	res.Size = sol.Size()

	s.log.Info("solved",
		zap.String("problem", p.Name),
		zap.String("strategy", string(res.Strategy)),
		zap.Bool("exact", res.Exact),
		zap.Int("facets", res.Facets),
		zap.Int("size", res.Size),
		zap.Duration("took", time.Since(start)))

	if s.Settings.SizeLimit > 0 && res.Size > s.Settings.SizeLimit {
		return res, errors.Wrapf(ErrSolutionTooLarge, "%d characters, limit %d", res.Size, s.Settings.SizeLimit)
	}
	return res, nil
}

func (s *Solver) runSearch(ctx context.Context, p model.Problem, res *model.SolveResult) (*fold.State, error) {
	res.Strategy = model.StrategySearch
	g, err := search.Decompose(p)
	if err != nil {
		return nil, errors.Wrap(err, "decomposing silhouette")
	}

	opts := search.Options{MaxStates: s.Settings.MaxStates, Logger: s.log}
	if s.Settings.Memo == model.MemoBadger {
		seen, err := search.NewBadgerSeen(s.Settings.MemoDir)
		if err != nil {
			return nil, err
		}
		defer seen.Close()
		opts.Seen = seen
	}

	found, err := search.New(g, opts).Search(ctx)
	if err != nil {
		return nil, err
	}
	res.States = found.Expanded
	res.Exact = true
	return found.State, nil
}

func (s *Solver) runWrap(p model.Problem, res *model.SolveResult) (*fold.State, error) {
	res.Strategy = model.StrategyWrap
	if s.dirs == nil {
		s.dirs = fold.UnitDirections(s.Settings.Directions)
	}

	wrapped, err := fold.Wrap(p.Points(), s.dirs, s.Settings.FoldPasses, fold.WithLogger(s.log))
	if err != nil {
		return nil, errors.Wrap(err, "wrapping hull")
	}
	if !wrapped.Fits {
		res.Warnings = append(res.Warnings, "the silhouette's hull is larger than the square; the folding covers part of it")
	}
	if !wrapped.Contained {
		res.Warnings = append(res.Warnings, fmt.Sprintf("paper still sticks out of the hull after %d passes", wrapped.Passes))
	}
	res.Exact = wrapped.Fits && wrapped.Contained && silhouetteIsHull(p)
	return wrapped.State, nil
}

// silhouetteIsHull reports whether the silhouette is one convex polygon,
// in which case the wrapped hull is the silhouette itself.
func silhouetteIsHull(p model.Problem) bool {
	if len(p.Silhouette) != 1 {
		return false
	}
	poly := p.Silhouette[0]
	return poly.IsConvex() && poly.Area().Cmp(geom.ConvexHull(poly).Area()) == 0
}
