package geom

import (
	"fmt"
	"sort"
)

// TaggedSegment is an arrangement input carrying caller data. Where input
// segments overlap, the tags of the shared pieces are combined with XOR.
type TaggedSegment struct {
	Segment
	Tag int
}

// Arrangement is the planar subdivision induced by a set of segments,
// stored as a doubly connected edge list. Records reference each other by
// index. Half-edges 2k and 2k+1 are twins.
type Arrangement struct {
	Vertices  []Point
	HalfEdges []HalfEdge
	Faces     []Face
	Unbounded int
}

type HalfEdge struct {
	Origin int
	Target int
	Twin   int
	Next   int
	Face   int
	Tag    int
}

// Face is a region of the subdivision. The unbounded face has no outer
// boundary. Boundary cycles are lists of half-edge indices whose face lies
// on their left.
type Face struct {
	Index     int
	Outer     []int
	Holes     [][]int
	Unbounded bool
}

type arrangementEdge struct {
	seg Segment
	tag int
}

// BuildArrangement splits the segments at every mutual intersection,
// merges overlapping pieces and traces the resulting faces.
func BuildArrangement(input []TaggedSegment) (*Arrangement, error) {
	edges := splitSegments(input)

	arr := &Arrangement{}
	vertexIndex := make(map[string]int)
	vertexOf := func(p Point) int {
		if i, ok := vertexIndex[p.Key()]; ok {
			return i
		}
		vertexIndex[p.Key()] = len(arr.Vertices)
		arr.Vertices = append(arr.Vertices, p)
		return len(arr.Vertices) - 1
	}

	for k, e := range edges {
		u, v := vertexOf(e.seg.A), vertexOf(e.seg.B)
		arr.HalfEdges = append(arr.HalfEdges,
			HalfEdge{Origin: u, Target: v, Twin: 2*k + 1, Face: -1, Tag: e.tag},
			HalfEdge{Origin: v, Target: u, Twin: 2 * k, Face: -1, Tag: e.tag},
		)
	}

	arr.linkNext()
	if err := arr.traceFaces(); err != nil {
		return nil, err
	}
	return arr, nil
}

func splitSegments(input []TaggedSegment) []arrangementEdge {
	var segs []TaggedSegment
	for _, s := range input {
		if !s.IsDegenerate() {
			segs = append(segs, s)
		}
	}

	byKey := make(map[string]int)
	var edges []arrangementEdge
	for i, s := range segs {
		cuts := []Point{s.A, s.B}
		for j, o := range segs {
			if i == j {
				continue
			}
			in := s.Intersect(o.Segment)
			switch in.Kind {
			case PointIntersection:
				cuts = append(cuts, in.P)
			case OverlapIntersection:
				cuts = append(cuts, in.P, in.Q)
			}
		}

		d := s.Dir()
		sort.Slice(cuts, func(a, b int) bool {
			return cuts[a].Sub(s.A).Dot(d).Cmp(cuts[b].Sub(s.A).Dot(d)) < 0
		})
		for k := 1; k < len(cuts); k++ {
			if cuts[k].Equal(cuts[k-1]) {
				continue
			}
			piece := Segment{A: cuts[k-1], B: cuts[k]}.Canonical()
			key := piece.Key()
			if at, ok := byKey[key]; ok {
				edges[at].tag ^= s.Tag
				continue
			}
			byKey[key] = len(edges)
			edges = append(edges, arrangementEdge{seg: piece, tag: s.Tag})
		}
	}
	return edges
}

// angleLess orders direction vectors counter-clockwise starting from the
// positive x axis.
func angleLess(a, b Point) bool {
	ha, hb := halfOf(a), halfOf(b)
	if ha != hb {
		return ha < hb
	}
	return a.Cross(b).Sign() > 0
}

func halfOf(v Point) int {
	if v.Y.Sign() > 0 || (v.Y.Sign() == 0 && v.X.Sign() > 0) {
		return 0
	}
	return 1
}

func (a *Arrangement) linkNext() {
	outgoing := make([][]int, len(a.Vertices))
	for h, he := range a.HalfEdges {
		outgoing[he.Origin] = append(outgoing[he.Origin], h)
	}
	position := make([]int, len(a.HalfEdges))
	for v := range outgoing {
		out := outgoing[v]
		sort.Slice(out, func(i, j int) bool {
			return angleLess(a.direction(out[i]), a.direction(out[j]))
		})
		for i, h := range out {
			position[h] = i
		}
	}
	// The successor of u→v leaves v just clockwise of v→u, which keeps the
	// traced face on the left.
	for h := range a.HalfEdges {
		twin := a.HalfEdges[h].Twin
		v := a.HalfEdges[h].Target
		out := outgoing[v]
		a.HalfEdges[h].Next = out[(position[twin]+len(out)-1)%len(out)]
	}
}

func (a *Arrangement) direction(h int) Point {
	he := a.HalfEdges[h]
	return a.Vertices[he.Target].Sub(a.Vertices[he.Origin])
}

func (a *Arrangement) traceFaces() error {
	var cycles [][]int
	seen := make([]bool, len(a.HalfEdges))
	for h := range a.HalfEdges {
		if seen[h] {
			continue
		}
		var cycle []int
		for cur := h; !seen[cur]; cur = a.HalfEdges[cur].Next {
			seen[cur] = true
			cycle = append(cycle, cur)
		}
		cycles = append(cycles, cycle)
	}

	component := a.components()

	a.Faces = []Face{{Index: 0, Unbounded: true}}
	a.Unbounded = 0
	cycleFace := make([]int, len(cycles))
	var holes []int
	for c, cycle := range cycles {
		if a.CyclePolygon(cycle).SignedArea().Sign() > 0 {
			cycleFace[c] = len(a.Faces)
			a.Faces = append(a.Faces, Face{Index: len(a.Faces), Outer: cycle})
		} else {
			holes = append(holes, c)
		}
	}

	for _, c := range holes {
		probe := a.Vertices[a.HalfEdges[cycles[c][0]].Origin]
		comp := component[a.HalfEdges[cycles[c][0]].Origin]
		best := a.Unbounded
		var bestPoly Polygon
		for f := 1; f < len(a.Faces); f++ {
			outer := a.Faces[f].Outer
			if component[a.HalfEdges[outer[0]].Origin] == comp {
				continue
			}
			poly := a.CyclePolygon(outer)
			if !poly.Contains(probe) {
				continue
			}
			if bestPoly == nil || poly.Area().Cmp(bestPoly.Area()) < 0 {
				best, bestPoly = f, poly
			}
		}
		cycleFace[c] = best
		a.Faces[best].Holes = append(a.Faces[best].Holes, cycles[c])
	}

	for c, cycle := range cycles {
		for _, h := range cycle {
			a.HalfEdges[h].Face = cycleFace[c]
		}
	}
	for h, he := range a.HalfEdges {
		if he.Face < 0 {
			return fmt.Errorf("half-edge %d left without a face", h)
		}
	}
	return nil
}

func (a *Arrangement) components() []int {
	parent := make([]int, len(a.Vertices))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for _, he := range a.HalfEdges {
		parent[find(he.Origin)] = find(he.Target)
	}
	out := make([]int, len(a.Vertices))
	for i := range out {
		out[i] = find(i)
	}
	return out
}

// CyclePolygon lists the origins of a half-edge cycle.
func (a *Arrangement) CyclePolygon(cycle []int) Polygon {
	poly := make(Polygon, len(cycle))
	for i, h := range cycle {
		poly[i] = a.Vertices[a.HalfEdges[h].Origin]
	}
	return poly
}

// FacePolygon is the outer boundary of a bounded face.
func (a *Arrangement) FacePolygon(f int) Polygon {
	return a.CyclePolygon(a.Faces[f].Outer)
}

// HalfEdgeSegment returns the directed segment of half-edge h.
func (a *Arrangement) HalfEdgeSegment(h int) Segment {
	he := a.HalfEdges[h]
	return Segment{A: a.Vertices[he.Origin], B: a.Vertices[he.Target]}
}

// FaceHalfEdges lists every half-edge bounding face f, outer cycle first.
func (a *Arrangement) FaceHalfEdges(f int) []int {
	out := append([]int(nil), a.Faces[f].Outer...)
	for _, hole := range a.Faces[f].Holes {
		out = append(out, hole...)
	}
	return out
}

func (a *Arrangement) VertexCount() int { return len(a.Vertices) }
