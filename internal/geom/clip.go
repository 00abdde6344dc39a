package geom

import "fmt"

// ClipHalfPlane intersects poly with the closed half-plane on the left
// (left=true) or right of the directed line a→b. Pieces are returned
// counter-clockwise; zero-area results are dropped. Convex rings are
// clipped directly, other rings through a triangulation whose clipped
// triangles are glued back together.
func ClipHalfPlane(poly Polygon, a, b Point, left bool) ([]Polygon, error) {
	if a.Equal(b) {
		return nil, fmt.Errorf("clip line is degenerate at %s", a)
	}
	ring := poly.DropDuplicates().CCW()
	if len(ring) < 3 {
		return nil, nil
	}
	want := -1
	if left {
		want = 1
	}

	in, out := 0, 0
	for _, v := range ring {
		switch Orient(a, b, v) * want {
		case 1:
			in++
		case -1:
			out++
		}
	}
	if out == 0 {
		return []Polygon{ring}, nil
	}
	if in == 0 {
		return nil, nil
	}

	if ring.IsConvex() {
		if piece := clipConvex(ring, a, b, want); piece != nil {
			return []Polygon{piece}, nil
		}
		return nil, nil
	}

	tris, err := Triangulate(ring)
	if err != nil {
		return nil, err
	}
	var pieces []Polygon
	for _, t := range tris {
		if piece := clipConvex(t, a, b, want); piece != nil {
			pieces = append(pieces, piece)
		}
	}
	return Glue(pieces), nil
}

// clipConvex is Sutherland–Hodgman against a single closed half-plane.
// Vertices on the line count as inside.
func clipConvex(ring Polygon, a, b Point, want int) Polygon {
	n := len(ring)
	sides := make([]int, n)
	allIn := true
	for i, v := range ring {
		sides[i] = Orient(a, b, v) * want
		if sides[i] < 0 {
			allIn = false
		}
	}
	if allIn {
		return ring
	}

	out := make(Polygon, 0, n+2)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if sides[i] >= 0 {
			out = append(out, ring[i])
		}
		if sides[i]*sides[j] < 0 {
			out = append(out, lineCrossing(ring[i], ring[j], a, b))
		}
	}
	out = out.DropDuplicates()
	if len(out) < 3 || out.SignedArea().Sign() == 0 {
		return nil
	}
	return out
}

// Glue repeatedly merges pieces that share an edge walked in opposite
// directions until no such pair remains.
func Glue(pieces []Polygon) []Polygon {
	work := append([]Polygon(nil), pieces...)
	for {
		merged := false
		for i := 0; i < len(work) && !merged; i++ {
			for j := i + 1; j < len(work); j++ {
				ei, ej, ok := SharedEdge(work[i], work[j])
				if !ok {
					continue
				}
				joined := Splice(work[i], ei, work[j], ej)
				next := make([]Polygon, 0, len(work)-1)
				for k, w := range work {
					if k != i && k != j {
						next = append(next, w)
					}
				}
				work = append(next, joined)
				merged = true
				break
			}
		}
		if !merged {
			return work
		}
	}
}

// Triangulate ear-clips a simple counter-clockwise ring. Every vertex of
// the ring, collinear ones included, appears in some triangle.
func Triangulate(ring Polygon) ([]Polygon, error) {
	idx := make([]int, len(ring))
	for i := range idx {
		idx[i] = i
	}
	var tris []Polygon
	for len(idx) > 3 {
		ear := -1
		n := len(idx)
		for k := 0; k < n && ear < 0; k++ {
			prev, cur, next := ring[idx[(k+n-1)%n]], ring[idx[k]], ring[idx[(k+1)%n]]
			if Orient(prev, cur, next) <= 0 {
				continue
			}
			tri := Polygon{prev, cur, next}
			blocked := false
			for m := 0; m < n; m++ {
				v := ring[idx[m]]
				if v.Equal(prev) || v.Equal(cur) || v.Equal(next) {
					continue
				}
				if tri.Contains(v) || tri.OnBoundary(v) {
					blocked = true
					break
				}
			}
			if !blocked {
				ear = k
			}
		}
		if ear < 0 {
			if collinearOnly(ring, idx) {
				return tris, nil
			}
			return nil, fmt.Errorf("triangulation failed on %d-vertex ring", len(ring))
		}
		tris = append(tris, Polygon{ring[idx[(ear+n-1)%n]], ring[idx[ear]], ring[idx[(ear+1)%n]]})
		idx = append(idx[:ear], idx[ear+1:]...)
	}
	last := Polygon{ring[idx[0]], ring[idx[1]], ring[idx[2]]}
	if last.SignedArea().Sign() > 0 {
		tris = append(tris, last)
	}
	return tris, nil
}

func collinearOnly(ring Polygon, idx []int) bool {
	n := len(idx)
	for k := 0; k < n; k++ {
		if Orient(ring[idx[(k+n-1)%n]], ring[idx[k]], ring[idx[(k+1)%n]]) != 0 {
			return false
		}
	}
	return true
}
