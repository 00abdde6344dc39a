// Package importer turns drawings made in CAD tools into problems.
package importer

import (
	"fmt"
	"math"
	"math/big"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/creasefit/internal/geom"
	"github.com/piwi3910/creasefit/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Problem  model.Problem
	Errors   []string
	Warnings []string
}

// OK reports whether the import produced a usable problem.
func (r ImportResult) OK() bool { return len(r.Errors) == 0 }

// ImportDXF reads a problem from a DXF file. Every LWPOLYLINE with three or
// more vertices becomes a silhouette polygon; LINE entities and two-vertex
// polylines become skeleton segments. Coordinates are taken at their
// shortest decimal value, so 0.1 in the drawing is exactly 1/10.
//
// Polygon orientation is decided by nesting: a polygon inside an odd number
// of others is a hole and turns clockwise, every other one counter-clockwise.
func ImportDXF(path string) ImportResult {
	result := ImportResult{
		Problem: model.NewProblem(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))),
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var polygons []geom.Polygon
	curved := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			pts, err := vertices(e.Vertices)
			if err != nil {
				result.Errors = append(result.Errors, err.Error())
				continue
			}
			if hasBulge(e.Bulges) {
				result.Warnings = append(result.Warnings,
					"LWPOLYLINE arc segments were replaced by their chords")
			}
			switch {
			case len(pts) == 2:
				result.addSegment(geom.Seg(pts[0], pts[1]))
			case len(pts) >= 3:
				poly := geom.Polygon(pts).DropDuplicates()
				if len(poly) < 3 || poly.Area().Sign() == 0 || !poly.IsSimple() {
					result.Warnings = append(result.Warnings,
						fmt.Sprintf("Skipped self-intersecting or degenerate LWPOLYLINE with %d vertices", len(pts)))
					continue
				}
				polygons = append(polygons, poly)
			default:
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 2 vertices")
			}

		case *entity.Line:
			pts, err := vertices([][]float64{e.Start, e.End})
			if err != nil {
				result.Errors = append(result.Errors, err.Error())
				continue
			}
			result.addSegment(geom.Seg(pts[0], pts[1]))

		case *entity.Circle, *entity.Arc:
			curved++

		default:
			// Unsupported entity types are silently skipped
		}
	}

	if curved > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d CIRCLE/ARC entities; curves have no exact rational form", curved))
	}
	if len(polygons) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	result.Problem.Silhouette = orientByNesting(polygons)
	if result.Problem.Area().Sign() <= 0 {
		result.Errors = append(result.Errors, "Silhouette has no positive area")
	}
	return result
}

func (r *ImportResult) addSegment(s geom.Segment) {
	if s.IsDegenerate() {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Skipped zero-length line at %s", s.A))
		return
	}
	r.Problem.Skeleton = append(r.Problem.Skeleton, s)
}

// vertices converts DXF coordinate tuples to exact points, ignoring Z.
func vertices(raw [][]float64) ([]geom.Point, error) {
	pts := make([]geom.Point, 0, len(raw))
	for _, v := range raw {
		if len(v) < 2 {
			return nil, fmt.Errorf("vertex with %d coordinates", len(v))
		}
		x, err := exact(v[0])
		if err != nil {
			return nil, err
		}
		y, err := exact(v[1])
		if err != nil {
			return nil, err
		}
		pts = append(pts, geom.P(x, y))
	}
	return pts, nil
}

// exact returns the rational with the shortest decimal form that rounds
// to v.
func exact(v float64) (*big.Rat, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("coordinate %v is not finite", v)
	}
	return geom.ParseRat(strconv.FormatFloat(v, 'f', -1, 64))
}

func hasBulge(bulges []float64) bool {
	for _, b := range bulges {
		if math.Abs(b) > 1e-9 {
			return true
		}
	}
	return false
}

func orientByNesting(polys []geom.Polygon) []geom.Polygon {
	out := make([]geom.Polygon, len(polys))
	for i, p := range polys {
		depth := 0
		for j, q := range polys {
			if i != j && q.Contains(p[0]) {
				depth++
			}
		}
		ccw := p.CCW()
		if depth%2 == 1 {
			ccw = ccw.Reversed()
		}
		out[i] = ccw
	}
	return out
}
