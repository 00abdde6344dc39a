package importer

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"

	"github.com/piwi3910/creasefit/internal/export"
	"github.com/piwi3910/creasefit/internal/geom"
	"github.com/piwi3910/creasefit/internal/model"
)

func TestImportDXF_RoundTripsExportedProblem(t *testing.T) {
	p := model.NewProblem("boat")
	p.Silhouette = []geom.Polygon{{
		geom.PI(0, 0), geom.PI(1, 0), geom.PR(1, 1, 1, 2), geom.PR(0, 1, 1, 2),
	}}
	p.Skeleton = []geom.Segment{geom.Seg(geom.PI(0, 0), geom.PR(1, 1, 1, 2))}

	path := filepath.Join(t.TempDir(), "boat.dxf")
	require.NoError(t, export.ExportProblemDXF(path, p))

	res := ImportDXF(path)
	require.True(t, res.OK(), "errors: %v", res.Errors)
	assert.Equal(t, "boat", res.Problem.Name)
	require.Len(t, res.Problem.Silhouette, 1)
	assert.True(t, res.Problem.Silhouette[0].Equal(p.Silhouette[0]))
	require.Len(t, res.Problem.Skeleton, 1)
	assert.True(t, res.Problem.Skeleton[0].SameUndirected(p.Skeleton[0]))
	assert.Equal(t, 0, res.Problem.Area().Cmp(geom.R(1, 2)))
}

func TestImportDXF_DecimalsBecomeExactRationals(t *testing.T) {
	d := dxf.NewDrawing()
	_, err := d.LwPolyline(true, []float64{0, 0}, []float64{0.1, 0}, []float64{0.1, 0.3}, []float64{0, 0.3})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "tenths.dxf")
	require.NoError(t, d.SaveAs(path))

	res := ImportDXF(path)
	require.True(t, res.OK(), "errors: %v", res.Errors)
	assert.Equal(t, 0, res.Problem.Area().Cmp(geom.R(3, 100)))
}

func TestImportDXF_NestedPolygonBecomesHole(t *testing.T) {
	d := dxf.NewDrawing()
	// Outer drawn clockwise, inner counter-clockwise: both get reoriented
	_, err := d.LwPolyline(true, []float64{0, 0}, []float64{0, 1}, []float64{1, 1}, []float64{1, 0})
	require.NoError(t, err)
	_, err = d.LwPolyline(true, []float64{0.25, 0.25}, []float64{0.75, 0.25}, []float64{0.75, 0.75}, []float64{0.25, 0.75})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "frame.dxf")
	require.NoError(t, d.SaveAs(path))

	res := ImportDXF(path)
	require.True(t, res.OK(), "errors: %v", res.Errors)
	require.Len(t, res.Problem.Silhouette, 2)
	assert.True(t, res.Problem.Silhouette[0].IsCCW())
	assert.False(t, res.Problem.Silhouette[1].IsCCW())
	assert.Equal(t, 0, res.Problem.Area().Cmp(geom.R(3, 4)))
}

func TestImportDXF_WarnsAboutCurves(t *testing.T) {
	d := dxf.NewDrawing()
	_, err := d.LwPolyline(true, []float64{0, 0}, []float64{1, 0}, []float64{1, 1})
	require.NoError(t, err)
	_, err = d.Circle(0.5, 0.5, 0, 0.25)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "curvy.dxf")
	require.NoError(t, d.SaveAs(path))

	res := ImportDXF(path)
	require.True(t, res.OK(), "errors: %v", res.Errors)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "CIRCLE")
}

func TestImportDXF_LinesOnlyIsAnError(t *testing.T) {
	d := dxf.NewDrawing()
	_, err := d.Line(0, 0, 0, 1, 1, 0)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "lines.dxf")
	require.NoError(t, d.SaveAs(path))

	res := ImportDXF(path)
	assert.False(t, res.OK())
	assert.Len(t, res.Problem.Skeleton, 1)
}

func TestImportDXF_FileNotFound(t *testing.T) {
	res := ImportDXF(filepath.Join(t.TempDir(), "missing.dxf"))
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Cannot open")
}

func TestImportDXF_GarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.dxf")
	require.NoError(t, os.WriteFile(path, []byte("not a drawing"), 0644))
	res := ImportDXF(path)
	assert.False(t, res.OK())
}

func TestExact(t *testing.T) {
	r, err := exact(0.125)
	require.NoError(t, err)
	assert.Equal(t, "1/8", r.RatString())

	r, err = exact(-2)
	require.NoError(t, err)
	assert.Equal(t, "-2", r.RatString())

	_, err = exact(math.NaN())
	assert.Error(t, err)
}
