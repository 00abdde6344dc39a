package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/creasefit/internal/geom"
	"github.com/piwi3910/creasefit/internal/model"
)

// DXF layer names.
const (
	LayerPaper      = "PAPER"
	LayerCreases    = "CREASES"
	LayerFolded     = "FOLDED"
	LayerSilhouette = "SILHOUETTE"
	LayerSkeleton   = "SKELETON"
)

// ExportDXF writes a solution as a drawing: the paper edge, every crease
// once, and the folded facets on their own layer.
func ExportDXF(path string, sol model.Solution) error {
	if len(sol.Facets) == 0 {
		return fmt.Errorf("no facets to export")
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(LayerPaper, color.White, dxf.DefaultLineType, true); err != nil {
		return err
	}
	if err := polyline(d, geom.UnitSquare()); err != nil {
		return err
	}

	if _, err := d.AddLayer(LayerCreases, color.Red, dxf.DefaultLineType, true); err != nil {
		return err
	}
	for _, s := range sol.Creases() {
		if err := line(d, s); err != nil {
			return err
		}
	}

	if _, err := d.AddLayer(LayerFolded, color.Blue, dxf.DefaultLineType, true); err != nil {
		return err
	}
	for i := range sol.Facets {
		if err := polyline(d, sol.FacetDestination(i)); err != nil {
			return err
		}
	}

	return d.SaveAs(path)
}

// ExportProblemDXF writes a problem so that importer.ImportDXF reads it
// back: silhouette polygons as closed polylines and skeleton segments as
// lines.
func ExportProblemDXF(path string, p model.Problem) error {
	d := dxf.NewDrawing()

	if _, err := d.AddLayer(LayerSilhouette, color.Red, dxf.DefaultLineType, true); err != nil {
		return err
	}
	for _, poly := range p.Silhouette {
		if err := polyline(d, poly); err != nil {
			return err
		}
	}

	if _, err := d.AddLayer(LayerSkeleton, color.Green, dxf.DefaultLineType, true); err != nil {
		return err
	}
	for _, s := range p.Skeleton {
		if err := line(d, s); err != nil {
			return err
		}
	}

	return d.SaveAs(path)
}

func line(d *drawing.Drawing, s geom.Segment) error {
	ax, ay := s.A.Float()
	bx, by := s.B.Float()
	_, err := d.Line(ax, ay, 0, bx, by, 0)
	return err
}

func polyline(d *drawing.Drawing, poly geom.Polygon) error {
	vs := make([][]float64, len(poly))
	for i, pt := range poly {
		x, y := pt.Float()
		vs[i] = []float64{x, y}
	}
	_, err := d.LwPolyline(true, vs...)
	return err
}
