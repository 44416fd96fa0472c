// seehuhn.de/go/glyphfont - build font files from glyph images
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fontbuild

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// A Contour is a closed polygon.  The last point is implicitly connected to
// the first one.
type Contour []vec.Vec2

// Glyph is an editable glyph.
//
// Outlines are polygons in font design units, with y pointing up.  Outer
// contours should run counter-clockwise.
type Glyph struct {
	Rune     rune
	Name     string
	Width    float64
	Contours []Contour

	penOpen bool
}

// IsBlank reports whether the glyph has no outline.
func (g *Glyph) IsBlank() bool {
	return len(g.Contours) == 0
}

// Clear removes the outline of the glyph.  The width is not changed.
func (g *Glyph) Clear() {
	g.Contours = nil
	g.penOpen = false
}

// MoveTo starts a new contour.
func (g *Glyph) MoveTo(x, y float64) {
	g.ClosePath()
	g.Contours = append(g.Contours, Contour{{X: x, Y: y}})
	g.penOpen = true
}

// LineTo adds a straight line to the current contour.
func (g *Glyph) LineTo(x, y float64) {
	if !g.penOpen {
		g.MoveTo(x, y)
		return
	}
	k := len(g.Contours) - 1
	g.Contours[k] = append(g.Contours[k], vec.Vec2{X: x, Y: y})
}

// curveSegments is the number of line segments used to approximate a cubic
// Bézier curve.
const curveSegments = 8

// CurveTo adds a cubic Bézier curve to the current contour.
// The curve is approximated by straight line segments.
func (g *Glyph) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	if !g.penOpen {
		g.MoveTo(x3, y3)
		return
	}
	cur := g.Contours[len(g.Contours)-1]
	p0 := cur[len(cur)-1]
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		s := 1 - t
		b0, b1, b2, b3 := s*s*s, 3*s*s*t, 3*s*t*t, t*t*t
		g.LineTo(
			b0*p0.X+b1*x1+b2*x2+b3*x3,
			b0*p0.Y+b1*y1+b2*y2+b3*y3)
	}
}

// ClosePath finishes the current contour.  Contours with fewer than three
// points are discarded.
func (g *Glyph) ClosePath() {
	if !g.penOpen {
		return
	}
	g.penOpen = false

	k := len(g.Contours) - 1
	c := g.Contours[k]
	if len(c) > 1 && c[0] == c[len(c)-1] {
		c = c[:len(c)-1]
	}
	if len(c) < 3 {
		g.Contours = g.Contours[:k]
		return
	}
	g.Contours[k] = c
}

// Import adds the contours cc to the glyph, after transforming them by M.
func (g *Glyph) Import(cc [][]vec.Vec2, M matrix.Matrix) {
	g.ClosePath()
	for _, c := range cc {
		if len(c) < 3 {
			continue
		}
		tc := make(Contour, len(c))
		for i, p := range c {
			tc[i] = apply(M, p)
		}
		g.Contours = append(g.Contours, tc)
	}
}

// Transform applies M to the outline of the glyph.
// The advance width is not changed.
func (g *Glyph) Transform(M matrix.Matrix) {
	for _, c := range g.Contours {
		for i, p := range c {
			c[i] = apply(M, p)
		}
	}
}

// Translate moves the outline of the glyph.
func (g *Glyph) Translate(dx, dy float64) {
	g.Transform(matrix.Translate(dx, dy))
}

// ScaleX scales the outline horizontally by the factor f, keeping the center
// of the bounding box fixed.  The advance width is not changed.
func (g *Glyph) ScaleX(f float64) {
	if g.IsBlank() {
		return
	}
	bbox := g.BBox()
	cx := (bbox.LLx + bbox.URx) / 2
	g.Transform(matrix.Matrix{f, 0, 0, 1, cx - f*cx, 0})
}

// BBox returns the bounding box of the outline.
// The zero rectangle is returned for blank glyphs.
func (g *Glyph) BBox() rect.Rect {
	if g.IsBlank() {
		return rect.Rect{}
	}
	res := rect.Rect{
		LLx: math.Inf(1),
		LLy: math.Inf(1),
		URx: math.Inf(-1),
		URy: math.Inf(-1),
	}
	for _, c := range g.Contours {
		for _, p := range c {
			res.LLx = min(res.LLx, p.X)
			res.LLy = min(res.LLy, p.Y)
			res.URx = max(res.URx, p.X)
			res.URy = max(res.URy, p.Y)
		}
	}
	return res
}

// LeftSideBearing returns the distance between the origin and the left edge
// of the outline.
func (g *Glyph) LeftSideBearing() float64 {
	return g.BBox().LLx
}

// SetLeftSideBearing moves the outline horizontally so that the left side
// bearing becomes lsb.  The advance width changes by the same amount, so
// that the right side bearing is preserved.  Blank glyphs are not changed.
func (g *Glyph) SetLeftSideBearing(lsb float64) {
	if g.IsBlank() {
		return
	}
	delta := lsb - g.LeftSideBearing()
	g.Translate(delta, 0)
	g.Width += delta
}

// ErrOutOfRange indicates that a glyph does not fit into the 16-bit
// coordinate range of a font file.
var ErrOutOfRange = errors.New("glyph coordinates out of range")

// Check verifies that the rounded advance width and outline of the glyph
// can be stored in a font file.  The width must lie between 0 and 32767,
// all coordinates between -32768 and 32767.
func (g *Glyph) Check() error {
	inRange := func(x, lo float64) bool {
		x = math.Round(x)
		return x >= lo && x <= math.MaxInt16
	}
	if !inRange(g.Width, 0) {
		return fmt.Errorf("advance width %g: %w", g.Width, ErrOutOfRange)
	}
	if g.IsBlank() {
		return nil
	}
	bbox := g.BBox()
	for _, x := range []float64{bbox.LLx, bbox.LLy, bbox.URx, bbox.URy} {
		if !inRange(x, math.MinInt16) {
			return fmt.Errorf("bounding box %v: %w", bbox, ErrOutOfRange)
		}
	}
	return nil
}

// Round rounds all coordinates and the advance width to integers.
// Points which collapse onto their predecessor are removed, and so are
// contours which become degenerate.
func (g *Glyph) Round() {
	g.ClosePath()
	g.Width = math.Round(g.Width)

	var cc []Contour
	for _, c := range g.Contours {
		var rc Contour
		for _, p := range c {
			q := vec.Vec2{X: math.Round(p.X), Y: math.Round(p.Y)}
			if len(rc) > 0 && rc[len(rc)-1] == q {
				continue
			}
			rc = append(rc, q)
		}
		if len(rc) > 1 && rc[0] == rc[len(rc)-1] {
			rc = rc[:len(rc)-1]
		}
		if len(rc) < 3 || signedArea(rc) == 0 {
			continue
		}
		cc = append(cc, rc)
	}
	g.Contours = cc
}

// apply maps p through the affine transformation M, using the PostScript
// convention x' = a*x + c*y + e, y' = b*x + d*y + f.
func apply(M matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: M[0]*p.X + M[2]*p.Y + M[4],
		Y: M[1]*p.X + M[3]*p.Y + M[5],
	}
}

// signedArea is positive for counter-clockwise contours.
func signedArea(c Contour) float64 {
	var sum float64
	n := len(c)
	for i, p := range c {
		q := c[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}
