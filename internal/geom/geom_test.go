package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRat_FormsAndErrors(t *testing.T) {
	r, err := ParseRat("3/6")
	require.NoError(t, err)
	assert.Equal(t, "1/2", FormatRat(r))

	r, err = ParseRat("-4")
	require.NoError(t, err)
	assert.Equal(t, "-4", FormatRat(r))

	_, err = ParseRat("1/0")
	assert.Error(t, err)
	_, err = ParseRat("")
	assert.Error(t, err)
}

func TestSqrtRat(t *testing.T) {
	s, ok := SqrtRat(R(9, 25))
	require.True(t, ok)
	assert.Equal(t, "3/5", FormatRat(s))

	_, ok = SqrtRat(R(1, 2))
	assert.False(t, ok)
}

func TestUnitDirection(t *testing.T) {
	u, ok := UnitDirection(PI(3, 4))
	require.True(t, ok)
	assert.True(t, u.Equal(PR(3, 5, 4, 5)))

	_, ok = UnitDirection(PI(1, 1))
	assert.False(t, ok, "length sqrt(2) is irrational")
}

func TestSegmentIntersect_Crossing(t *testing.T) {
	a := Seg(PI(0, 0), PI(2, 2))
	b := Seg(PI(0, 2), PI(2, 0))
	in := a.Intersect(b)
	require.Equal(t, PointIntersection, in.Kind)
	assert.True(t, in.P.Equal(PI(1, 1)))
	assert.True(t, a.Crosses(b))
}

func TestSegmentIntersect_SharedEndpoint(t *testing.T) {
	a := Seg(PI(0, 0), PI(1, 0))
	b := Seg(PI(1, 0), PI(1, 1))
	in := a.Intersect(b)
	require.Equal(t, PointIntersection, in.Kind)
	assert.False(t, a.Crosses(b))
}

func TestSegmentIntersect_Overlap(t *testing.T) {
	a := Seg(PI(0, 0), PI(4, 0))
	b := Seg(PI(6, 0), PI(2, 0))
	in := a.Intersect(b)
	require.Equal(t, OverlapIntersection, in.Kind)
	assert.True(t, in.P.Equal(PI(2, 0)))
	assert.True(t, in.Q.Equal(PI(4, 0)))
}

func TestSegmentIntersect_ParallelDisjoint(t *testing.T) {
	a := Seg(PI(0, 0), PI(1, 0))
	b := Seg(PI(0, 1), PI(1, 1))
	assert.Equal(t, NoIntersection, a.Intersect(b).Kind)
}

func TestSegmentDist2(t *testing.T) {
	s := Seg(PI(0, 0), PI(2, 0))
	assert.Equal(t, "1", FormatRat(s.Dist2(PI(1, 1))))
	assert.Equal(t, "2", FormatRat(s.Dist2(PI(3, 1))), "beyond B measures to the endpoint")
}

func TestPolygon_AreaAndOrientation(t *testing.T) {
	sq := UnitSquare()
	assert.Equal(t, "1", FormatRat(sq.SignedArea()))
	assert.True(t, sq.IsCCW())
	rev := sq.Reversed()
	assert.Equal(t, "-1", FormatRat(rev.SignedArea()))
	assert.True(t, rev[0].Equal(sq[0]))
	assert.True(t, rev.CCW().IsCCW())
}

func TestPolygon_Contains(t *testing.T) {
	sq := UnitSquare()
	assert.True(t, sq.Contains(PR(1, 2, 1, 2)))
	assert.False(t, sq.Contains(PR(1, 2, 0, 1)), "boundary is not strictly inside")
	assert.False(t, sq.Contains(PI(2, 0)))
}

func TestPolygon_IsSimple(t *testing.T) {
	assert.True(t, UnitSquare().IsSimple())
	bowtie := Polygon{PI(0, 0), PI(1, 1), PI(1, 0), PI(0, 1)}
	assert.False(t, bowtie.IsSimple())
	assert.False(t, Polygon{PI(0, 0), PI(0, 0), PI(1, 1)}.IsSimple())
}

func TestPolygon_IsConvex(t *testing.T) {
	assert.True(t, UnitSquare().IsConvex())
	lShape := Polygon{PI(0, 0), PI(2, 0), PI(2, 1), PI(1, 1), PI(1, 2), PI(0, 2)}
	assert.False(t, lShape.IsConvex())
}

func TestSplice_TwoSquares(t *testing.T) {
	left := Polygon{PI(0, 0), PI(1, 0), PI(1, 1), PI(0, 1)}
	right := Polygon{PI(1, 0), PI(2, 0), PI(2, 1), PI(1, 1)}
	i, j, ok := SharedEdge(left, right)
	require.True(t, ok)
	merged := Splice(left, i, right, j)
	assert.Len(t, merged, 6)
	assert.Equal(t, "2", FormatRat(merged.SignedArea()))
	assert.True(t, merged.IsSimple())
}

func TestCollapseSpikes(t *testing.T) {
	p := Polygon{PI(0, 0), PI(2, 0), PI(3, 0), PI(2, 0), PI(2, 2), PI(0, 2)}
	out := p.CollapseSpikes()
	assert.Len(t, out, 4)
	assert.True(t, out.IsSimple())
}

func TestClipHalfPlane_ConvexSquare(t *testing.T) {
	left, err := ClipHalfPlane(UnitSquare(), PR(1, 2, 0, 1), PR(1, 2, 1, 1), true)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "1/2", FormatRat(left[0].SignedArea()))
	for _, v := range left[0] {
		assert.True(t, v.X.Cmp(R(1, 2)) <= 0)
	}

	right, err := ClipHalfPlane(UnitSquare(), PR(1, 2, 0, 1), PR(1, 2, 1, 1), false)
	require.NoError(t, err)
	require.Len(t, right, 1)
	assert.Equal(t, "1/2", FormatRat(right[0].SignedArea()))
}

func TestClipHalfPlane_LineOutside(t *testing.T) {
	pieces, err := ClipHalfPlane(UnitSquare(), PI(2, 0), PI(2, 1), false)
	require.NoError(t, err)
	assert.Empty(t, pieces)

	pieces, err = ClipHalfPlane(UnitSquare(), PI(2, 0), PI(2, 1), true)
	require.NoError(t, err)
	require.Len(t, pieces, 1)
	assert.Equal(t, "1", FormatRat(pieces[0].Area()))
}

func TestClipHalfPlane_NonConvexSplitsInTwo(t *testing.T) {
	// A U shape cut below its opening leaves one piece; cutting through the
	// prongs leaves two.
	u := Polygon{PI(0, 0), PI(3, 0), PI(3, 3), PI(2, 3), PI(2, 1), PI(1, 1), PI(1, 3), PI(0, 3)}
	top, err := ClipHalfPlane(u, PI(3, 2), PI(0, 2), false)
	require.NoError(t, err)
	require.Len(t, top, 2)
	for _, piece := range top {
		assert.Equal(t, "1", FormatRat(piece.Area()))
	}

	bottom, err := ClipHalfPlane(u, PI(3, 2), PI(0, 2), true)
	require.NoError(t, err)
	require.Len(t, bottom, 1)
	assert.Equal(t, "5", FormatRat(bottom[0].Area()))
	assert.True(t, bottom[0].IsSimple())
}

func TestTriangulate_KeepsEveryVertex(t *testing.T) {
	ring := Polygon{PI(0, 0), PI(1, 0), PI(2, 0), PI(2, 2), PI(0, 2)}
	tris, err := Triangulate(ring)
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, tri := range tris {
		for _, v := range tri {
			seen[v.Key()] = true
		}
	}
	assert.True(t, seen[PI(1, 0).Key()], "collinear vertex must survive")
}

func TestConvexHull(t *testing.T) {
	pts := []Point{PI(0, 0), PI(2, 0), PI(1, 0), PI(2, 2), PI(0, 2), PI(1, 1)}
	hull := ConvexHull(pts)
	assert.Len(t, hull, 4)
	assert.True(t, hull.IsCCW())
}

func TestArrangement_SquareWithDiagonal(t *testing.T) {
	sq := UnitSquare()
	var segs []TaggedSegment
	for i := range sq {
		segs = append(segs, TaggedSegment{Segment: sq.Edge(i), Tag: 1})
	}
	segs = append(segs, TaggedSegment{Segment: Seg(PI(0, 0), PI(1, 1))})

	arr, err := BuildArrangement(segs)
	require.NoError(t, err)
	assert.Equal(t, 4, arr.VertexCount())
	assert.Len(t, arr.Faces, 3)
	assert.True(t, arr.Faces[arr.Unbounded].Unbounded)
	for f := 1; f < len(arr.Faces); f++ {
		assert.Equal(t, "1/2", FormatRat(arr.FacePolygon(f).SignedArea()))
	}
}

func TestArrangement_CrossingAddsVertex(t *testing.T) {
	segs := []TaggedSegment{
		{Segment: Seg(PI(0, 0), PI(2, 2))},
		{Segment: Seg(PI(0, 2), PI(2, 0))},
	}
	arr, err := BuildArrangement(segs)
	require.NoError(t, err)
	assert.Equal(t, 5, arr.VertexCount())
	assert.Len(t, arr.Faces, 1, "a cross encloses nothing")
}

func TestArrangement_OverlapTagsCombine(t *testing.T) {
	segs := []TaggedSegment{
		{Segment: Seg(PI(0, 0), PI(2, 0)), Tag: 1},
		{Segment: Seg(PI(1, 0), PI(3, 0)), Tag: 1},
	}
	arr, err := BuildArrangement(segs)
	require.NoError(t, err)
	assert.Equal(t, 4, arr.VertexCount())
	tags := map[string]int{}
	for h := 0; h < len(arr.HalfEdges); h += 2 {
		tags[arr.HalfEdgeSegment(h).Key()] = arr.HalfEdges[h].Tag
	}
	assert.Equal(t, 0, tags[Seg(PI(1, 0), PI(2, 0)).Key()])
	assert.Equal(t, 1, tags[Seg(PI(0, 0), PI(1, 0)).Key()])
}

func TestArrangement_NestedSquareBecomesHole(t *testing.T) {
	outer := Polygon{PI(0, 0), PI(4, 0), PI(4, 4), PI(0, 4)}
	inner := Polygon{PI(1, 1), PI(2, 1), PI(2, 2), PI(1, 2)}
	var segs []TaggedSegment
	for _, ring := range []Polygon{outer, inner} {
		for i := range ring {
			segs = append(segs, TaggedSegment{Segment: ring.Edge(i), Tag: 1})
		}
	}
	arr, err := BuildArrangement(segs)
	require.NoError(t, err)
	require.Len(t, arr.Faces, 3)

	var withHole int
	for _, f := range arr.Faces {
		if len(f.Holes) > 0 && !f.Unbounded {
			withHole++
			assert.Equal(t, "16", FormatRat(arr.FacePolygon(f.Index).SignedArea()))
		}
	}
	assert.Equal(t, 1, withHole)
}
