// Package export writes solver results to formats other tools can open.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/creasefit/internal/geom"
	"github.com/piwi3910/creasefit/internal/model"
)

// facetColor represents an RGB color for a facet.
type facetColor struct {
	R, G, B int
}

var (
	frontColor = facetColor{R: 187, G: 222, B: 251} // light blue
	backColor  = facetColor{R: 255, G: 204, B: 128} // light orange
	targetRed  = facetColor{R: 211, G: 47, B: 47}
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsWidth   = 90.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a two page report: the crease pattern on the unit
// square with facets shaded by the side that ends up facing up, and the
// folded shape drawn over the target silhouette.
func ExportPDF(path string, p model.Problem, result model.SolveResult) error {
	sol := result.Solution
	if len(sol.Facets) == 0 {
		return fmt.Errorf("no facets to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderCreasePage(pdf, p, result)

	pdf.AddPage()
	renderFoldedPage(pdf, p, sol)

	return pdf.OutputFileAndClose(path)
}

// viewport maps problem coordinates into a box on the page. Problem y grows
// upwards, page y grows downwards.
type viewport struct {
	minX, maxY float64
	scale      float64
	offsetX    float64
	offsetY    float64
}

func fitViewport(pts []geom.Point, x, y, w, h float64) viewport {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range pts {
		px, py := pt.Float()
		minX, maxX = math.Min(minX, px), math.Max(maxX, px)
		minY, maxY = math.Min(minY, py), math.Max(maxY, py)
	}
	spanX := math.Max(maxX-minX, 1e-9)
	spanY := math.Max(maxY-minY, 1e-9)
	scale := math.Min(w/spanX, h/spanY)
	return viewport{
		minX:    minX,
		maxY:    maxY,
		scale:   scale,
		offsetX: x + (w-spanX*scale)/2,
		offsetY: y + (h-spanY*scale)/2,
	}
}

func (v viewport) point(pt geom.Point) fpdf.PointType {
	px, py := pt.Float()
	return fpdf.PointType{
		X: v.offsetX + (px-v.minX)*v.scale,
		Y: v.offsetY + (v.maxY-py)*v.scale,
	}
}

func (v viewport) polygon(poly geom.Polygon) []fpdf.PointType {
	out := make([]fpdf.PointType, len(poly))
	for i, pt := range poly {
		out[i] = v.point(pt)
	}
	return out
}

// isFlipped reports whether facet i is mirrored by its fold, i.e. shows
// its back side.
func isFlipped(sol model.Solution, i int) bool {
	src := sol.FacetSource(i).SignedArea().Sign()
	dst := sol.FacetDestination(i).SignedArea().Sign()
	return src != dst
}

func renderCreasePage(pdf *fpdf.Fpdf, p model.Problem, result model.SolveResult) {
	sol := result.Solution

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Crease pattern: %s", p.Name)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight - statsWidth
	drawHeight := pageHeight - drawAreaTop - marginBottom
	vp := fitViewport(geom.UnitSquare(), marginLeft, drawAreaTop, drawWidth, drawHeight)

	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)
	for i := range sol.Facets {
		col := frontColor
		if isFlipped(sol, i) {
			col = backColor
		}
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Polygon(vp.polygon(sol.FacetSource(i)), "FD")
	}

	// Paper edge
	pdf.SetLineWidth(0.8)
	pdf.Polygon(vp.polygon(geom.UnitSquare()), "D")

	renderStats(pdf, result, marginLeft+drawWidth+5, drawAreaTop)
}

func renderStats(pdf *fpdf.Fpdf, result model.SolveResult, x, y float64) {
	flipped := 0
	for i := range result.Solution.Facets {
		if isFlipped(result.Solution, i) {
			flipped++
		}
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(x, y)
	pdf.CellFormat(statsWidth-5, 7, "Statistics", "", 0, "L", false, 0, "")
	y += 9

	items := []struct {
		label string
		value string
	}{
		{"Strategy", string(result.Strategy)},
		{"Exact", fmt.Sprintf("%t", result.Exact)},
		{"Facets", fmt.Sprintf("%d", result.Facets)},
		{"Flipped facets", fmt.Sprintf("%d", flipped)},
		{"Vertices", fmt.Sprintf("%d", len(result.Solution.Source))},
		{"Solution size", fmt.Sprintf("%d / %d", result.Size, model.SolutionSizeLimit)},
		{"States explored", fmt.Sprintf("%d", result.States)},
		{"Merged facets", fmt.Sprintf("%d", result.Merges)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range items {
		pdf.SetXY(x, y)
		pdf.CellFormat(40, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	if len(result.Warnings) == 0 {
		return
	}
	y += 5
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(targetRed.R, targetRed.G, targetRed.B)
	pdf.SetXY(x, y)
	pdf.CellFormat(statsWidth-5, 6, "Warnings", "", 0, "L", false, 0, "")
	y += 7
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for _, w := range result.Warnings {
		pdf.SetXY(x, y)
		pdf.MultiCell(statsWidth-5, 4, "- "+w, "", "L", false)
		y = pdf.GetY() + 1
	}
}

func renderFoldedPage(pdf *fpdf.Fpdf, p model.Problem, sol model.Solution) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Folded shape over the silhouette", "", 0, "L", false, 0, "")

	pts := append(p.Points(), sol.Destination...)
	vp := fitViewport(pts, marginLeft, drawAreaTop,
		pageWidth-marginLeft-marginRight, pageHeight-drawAreaTop-marginBottom)

	pdf.SetAlpha(0.35, "Normal")
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.2)
	for i := range sol.Facets {
		col := frontColor
		if isFlipped(sol, i) {
			col = backColor
		}
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Polygon(vp.polygon(sol.FacetDestination(i)), "FD")
	}
	pdf.SetAlpha(1, "Normal")

	pdf.SetDrawColor(targetRed.R, targetRed.G, targetRed.B)
	pdf.SetLineWidth(0.6)
	for _, poly := range p.Silhouette {
		pdf.Polygon(vp.polygon(poly), "D")
	}
}
