// Package search looks for a crease pattern by tiling the unit square with
// copies of the faces a silhouette and its skeleton cut the plane into.
package search

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/piwi3910/creasefit/internal/geom"
	"github.com/piwi3910/creasefit/internal/model"
)

// Side records that an edge bounds Face as the face's Pos-th polygon edge.
type Side struct {
	Face int
	Pos  int
}

// Edge is one piece of the decomposition, shared by at most two faces.
// Boundary edges lie on the silhouette outline and have a single side.
type Edge struct {
	Index    int
	Segment  geom.Segment
	Boundary bool
	Sides    []Side
}

// Face is a counter-clockwise region inside the silhouette. Edges[k] is
// the edge running from Polygon[k] to Polygon[k+1].
type Face struct {
	Index   int
	Polygon geom.Polygon
	Area    *big.Rat
	Edges   []int
}

// Graph is the face/edge adjacency of a problem. It is read-only once built.
type Graph struct {
	Faces []Face
	Edges []Edge
	Area  *big.Rat
}

const (
	tagSkeleton = 0
	tagOutline  = 1
)

// Decompose arranges the silhouette outline together with the skeleton
// and keeps the faces lying inside the silhouette. Inside and outside are
// told apart by flooding out from the unbounded face: crossing an outline
// piece flips the side, crossing a skeleton piece does not.
func Decompose(p model.Problem) (*Graph, error) {
	var segs []geom.TaggedSegment
	for _, poly := range p.Silhouette {
		for i := range poly {
			e := poly.Edge(i)
			if e.IsDegenerate() {
				continue
			}
			segs = append(segs, geom.TaggedSegment{Segment: e, Tag: tagOutline})
		}
	}
	for _, s := range p.Skeleton {
		if s.IsDegenerate() {
			continue
		}
		segs = append(segs, geom.TaggedSegment{Segment: s, Tag: tagSkeleton})
	}
	if len(segs) == 0 {
		return nil, errors.New("problem has no outline")
	}

	arr, err := geom.BuildArrangement(segs)
	if err != nil {
		return nil, errors.Wrap(err, "arranging outline and skeleton")
	}

	inside, err := markInside(arr)
	if err != nil {
		return nil, err
	}

	g := &Graph{Area: new(big.Rat)}
	faceOf := make(map[int]int)
	outer := make(map[int][]int)
	for f := range arr.Faces {
		if !inside[f] {
			continue
		}
		for _, hole := range arr.Faces[f].Holes {
			if len(pruneSpikes(arr, f, hole)) > 0 {
				return nil, errors.Errorf("face around %s has a hole", arr.FacePolygon(f)[0])
			}
		}
		cycle := pruneSpikes(arr, f, arr.Faces[f].Outer)
		if len(cycle) < 3 {
			return nil, errors.Errorf("face around %s collapses to a skeleton tree", arr.FacePolygon(f)[0])
		}
		outer[f] = cycle
		poly := arr.CyclePolygon(cycle)
		face := Face{Index: len(g.Faces), Polygon: poly, Area: poly.Area()}
		faceOf[f] = face.Index
		g.Faces = append(g.Faces, face)
		g.Area.Add(g.Area, face.Area)
	}
	if len(g.Faces) == 0 {
		return nil, errors.New("silhouette encloses no area")
	}

	edgeIndex := make(map[string]int)
	for f := range arr.Faces {
		fi, ok := faceOf[f]
		if !ok {
			continue
		}
		face := &g.Faces[fi]
		face.Edges = make([]int, len(face.Polygon))
		for k, h := range outer[f] {
			seg := arr.HalfEdgeSegment(h)
			key := seg.Key()
			ei, ok := edgeIndex[key]
			if !ok {
				twin := arr.HalfEdges[arr.HalfEdges[h].Twin]
				ei = len(g.Edges)
				edgeIndex[key] = ei
				g.Edges = append(g.Edges, Edge{
					Index:    ei,
					Segment:  seg.Canonical(),
					Boundary: !inside[twin.Face],
				})
			}
			e := &g.Edges[ei]
			if len(e.Sides) == 2 {
				return nil, errors.Errorf("edge %s bounds more than two faces", key)
			}
			e.Sides = append(e.Sides, Side{Face: fi, Pos: k})
			face.Edges[k] = ei
		}
	}
	return g, nil
}

// pruneSpikes drops the half-edges of a cycle whose twin bounds the same
// face. Such pieces come from skeleton segments that end inside a face;
// they separate nothing, and walking them would leave a face polygon that
// doubles back on itself.
func pruneSpikes(arr *geom.Arrangement, f int, cycle []int) []int {
	out := make([]int, 0, len(cycle))
	for _, h := range cycle {
		if arr.HalfEdges[arr.HalfEdges[h].Twin].Face == f {
			continue
		}
		out = append(out, h)
	}
	return out
}

func markInside(arr *geom.Arrangement) ([]bool, error) {
	mark := make([]int, len(arr.Faces))
	mark[arr.Unbounded] = -1
	stack := []int{arr.Unbounded}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, h := range arr.FaceHalfEdges(f) {
			he := arr.HalfEdges[h]
			other := arr.HalfEdges[he.Twin].Face
			want := mark[f]
			if he.Tag&tagOutline != 0 {
				want = -want
			}
			switch mark[other] {
			case 0:
				mark[other] = want
				stack = append(stack, other)
			case want:
			default:
				return nil, errors.Errorf("face around %s is both inside and outside the silhouette",
					arr.HalfEdgeSegment(h).A)
			}
		}
	}

	inside := make([]bool, len(arr.Faces))
	for f, m := range mark {
		if m == 0 {
			return nil, errors.Errorf("face %d is unreachable from the outside", f)
		}
		inside[f] = m > 0
	}
	return inside, nil
}

// FaceCount and EdgeCount size the graph for logging.
func (g *Graph) FaceCount() int { return len(g.Faces) }
func (g *Graph) EdgeCount() int { return len(g.Edges) }
