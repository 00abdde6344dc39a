package search

import (
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/piwi3910/creasefit/internal/fold"
	"github.com/piwi3910/creasefit/internal/geom"
)

// ActiveEdge is an open piece of the placed region's outline in the unit
// square. Placed paper lies to the left of Seg; Xf carries that paper to
// the folded shape, where Seg lands on graph edge Edge.
type ActiveEdge struct {
	Seg  geom.Segment
	Edge int
	Xf   fold.Transform
}

func (a ActiveEdge) key() string {
	return a.Seg.DirectedKey() + "@" + strconv.Itoa(a.Edge) + a.Xf.String()
}

// Placement is one face laid into the unit square. Xf maps Source onto
// the face's polygon in the folded shape.
type Placement struct {
	Face   int
	Source geom.Polygon
	Xf     fold.Transform
}

// UnrollState is a partial tiling of the unit square. States are never
// modified after creation; children copy what they change.
type UnrollState struct {
	Active        []ActiveEdge
	Unused        []bool
	RemainingArea *big.Rat
	UnusedArea    *big.Rat

	Key  string
	Hash uint64

	Parent    *UnrollState
	Placement Placement
	Depth     int
}

// Done reports whether the square is fully covered with nothing left open.
func (s *UnrollState) Done() bool {
	return len(s.Active) == 0 && s.RemainingArea.Sign() == 0
}

// seal computes the content key. The key covers the open outline with the
// binding of every piece and the set of faces still to be placed; how the
// state was reached does not enter it.
func (s *UnrollState) seal() {
	parts := make([]string, len(s.Active))
	for i, a := range s.Active {
		parts[i] = a.key()
	}
	sort.Strings(parts)

	var b strings.Builder
	for _, u := range s.Unused {
		if u {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	b.WriteByte('|')
	b.WriteString(strings.Join(parts, ";"))
	s.Key = b.String()
	s.Hash = xxhash.Sum64String(s.Key)
}

// Placements follows parent links back to the seed and returns the faces
// in the order they were laid down.
func (s *UnrollState) Placements() []Placement {
	var out []Placement
	for cur := s; cur != nil; cur = cur.Parent {
		out = append(out, cur.Placement)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
