// Package gcode turns crease patterns into scoring toolpaths and reads
// toolpaths back for inspection.
package gcode

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/creasefit/internal/geom"
	"github.com/piwi3910/creasefit/internal/model"
)

// Generator produces GCode that scores every crease of a solution.
type Generator struct {
	Settings model.ScoreSettings
	profile  model.GCodeProfile
}

func New(settings model.ScoreSettings) *Generator {
	return &Generator{
		Settings: settings,
		profile:  model.GetProfile(settings.Profile),
	}
}

// stroke is one crease in machine coordinates.
type stroke struct {
	x0, y0, x1, y1 float64
}

func (s stroke) reversed() stroke { return stroke{s.x1, s.y1, s.x0, s.y0} }

// Generate produces the program for one sheet. Creases are scored in
// nearest-next order starting from the sheet origin, each from whichever
// end is closer to the tool.
func (g *Generator) Generate(name string, sol model.Solution) string {
	var b strings.Builder

	strokes := g.order(g.strokes(sol.Creases()))
	g.writeHeader(&b, name, len(strokes))

	for i, s := range strokes {
		b.WriteString(g.comment(fmt.Sprintf("Crease %d", i+1)))
		g.writeStroke(&b, s)
	}

	g.writeFooter(&b)
	return b.String()
}

func (g *Generator) strokes(creases []geom.Segment) []stroke {
	out := make([]stroke, len(creases))
	for i, c := range creases {
		ax, ay := c.A.Float()
		bx, by := c.B.Float()
		out[i] = stroke{
			x0: g.Settings.OriginX + ax*g.Settings.SheetSize,
			y0: g.Settings.OriginY + ay*g.Settings.SheetSize,
			x1: g.Settings.OriginX + bx*g.Settings.SheetSize,
			y1: g.Settings.OriginY + by*g.Settings.SheetSize,
		}
	}
	return out
}

func (g *Generator) order(strokes []stroke) []stroke {
	used := make([]bool, len(strokes))
	out := make([]stroke, 0, len(strokes))
	x, y := g.Settings.OriginX, g.Settings.OriginY

	for len(out) < len(strokes) {
		best, bestDist, flip := -1, math.Inf(1), false
		for i, s := range strokes {
			if used[i] {
				continue
			}
			if d := math.Hypot(s.x0-x, s.y0-y); d < bestDist {
				best, bestDist, flip = i, d, false
			}
			if d := math.Hypot(s.x1-x, s.y1-y); d < bestDist {
				best, bestDist, flip = i, d, true
			}
		}
		s := strokes[best]
		if flip {
			s = s.reversed()
		}
		used[best] = true
		out = append(out, s)
		x, y = s.x1, s.y1
	}
	return out
}

func (g *Generator) writeHeader(b *strings.Builder, name string, creases int) {
	p := g.profile

	b.WriteString(g.comment(fmt.Sprintf("creasefit score program: %s", name)))
	b.WriteString(g.comment(fmt.Sprintf("Sheet: %.1f x %.1f mm, creases: %d", g.Settings.SheetSize, g.Settings.SheetSize, creases)))
	b.WriteString(g.comment(fmt.Sprintf("Feed: %.0f mm/min, Plunge: %.0f mm/min, Depth: %.2f mm",
		g.Settings.FeedRate, g.Settings.PlungeRate, g.Settings.ScoreDepth)))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}

	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))
	b.WriteString("\n")
}

func (g *Generator) writeStroke(b *strings.Builder, s stroke) {
	p := g.profile

	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(s.x0), g.format(s.y0)))
	b.WriteString(fmt.Sprintf("%s Z%s F%s\n", p.FeedMove, g.format(-g.Settings.ScoreDepth), g.format(g.Settings.PlungeRate)))
	if p.ToolOn != "" {
		b.WriteString(p.ToolOn + "\n")
	}
	b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", p.FeedMove, g.format(s.x1), g.format(s.y1), g.format(g.Settings.FeedRate)))
	if p.ToolOff != "" {
		b.WriteString(p.ToolOff + "\n")
	}
	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))
}

func (g *Generator) writeFooter(b *strings.Builder) {
	b.WriteString("\n")
	b.WriteString(g.comment("=== Job complete ==="))

	for _, code := range g.profile.EndCode {
		code = strings.ReplaceAll(code, "[SafeZ]", g.format(g.Settings.SafeZ))
		b.WriteString(code + "\n")
	}
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	return fmt.Sprintf("%.*f", g.profile.DecimalPlaces, v)
}
