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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// square draws an axis-parallel square, counter-clockwise.
func square(g *Glyph, x, y, size float64) {
	g.MoveTo(x, y)
	g.LineTo(x+size, y)
	g.LineTo(x+size, y+size)
	g.LineTo(x, y+size)
	g.ClosePath()
}

func TestPen(t *testing.T) {
	g := &Glyph{Width: 500}
	if !g.IsBlank() {
		t.Error("new glyph is not blank")
	}

	square(g, 100, 0, 300)
	g.MoveTo(0, 0)
	g.LineTo(10, 10) // too short, discarded on close
	g.ClosePath()

	if len(g.Contours) != 1 {
		t.Fatalf("got %d contours", len(g.Contours))
	}
	if a := signedArea(g.Contours[0]); a != 90000 {
		t.Errorf("wrong area %g", a)
	}

	want := rect.Rect{LLx: 100, LLy: 0, URx: 400, URy: 300}
	if d := cmp.Diff(want, g.BBox()); d != "" {
		t.Error(d)
	}
}

func TestClosePathDropsDuplicate(t *testing.T) {
	g := &Glyph{}
	g.MoveTo(0, 0)
	g.LineTo(10, 0)
	g.LineTo(10, 10)
	g.LineTo(0, 0)
	g.ClosePath()
	if len(g.Contours) != 1 || len(g.Contours[0]) != 3 {
		t.Errorf("unexpected contours %v", g.Contours)
	}
}

func TestCurveTo(t *testing.T) {
	g := &Glyph{}
	g.MoveTo(0, 0)
	g.CurveTo(0, 100, 100, 100, 100, 0)
	g.ClosePath()

	c := g.Contours[0]
	if len(c) != curveSegments+1 {
		t.Fatalf("got %d points", len(c))
	}
	if c[len(c)-1] != (vec.Vec2{X: 100, Y: 0}) {
		t.Errorf("curve ends at %v", c[len(c)-1])
	}
	// the curve peaks at 3/4 of the control point height
	if top := g.BBox().URy; math.Abs(top-75) > 1e-9 {
		t.Errorf("wrong curve height %g", top)
	}
}

func TestSideBearings(t *testing.T) {
	g := &Glyph{Width: 600}
	square(g, 150, 0, 300)

	if lsb := g.LeftSideBearing(); lsb != 150 {
		t.Errorf("wrong left side bearing %g", lsb)
	}
	if rsb := g.Width - g.BBox().URx; rsb != 150 {
		t.Errorf("wrong right side bearing %g", rsb)
	}

	g.SetLeftSideBearing(50)
	if lsb := g.LeftSideBearing(); lsb != 50 {
		t.Errorf("wrong left side bearing %g", lsb)
	}
	if g.Width != 500 {
		t.Errorf("wrong width %g", g.Width)
	}
	if rsb := g.Width - g.BBox().URx; rsb != 150 {
		t.Errorf("right side bearing changed to %g", rsb)
	}

	blank := &Glyph{Width: 256}
	blank.SetLeftSideBearing(20)
	if blank.Width != 256 || !blank.IsBlank() {
		t.Error("blank glyph changed")
	}
}

func TestScaleX(t *testing.T) {
	g := &Glyph{Width: 600}
	square(g, 100, 0, 400)
	g.ScaleX(0.5)

	want := rect.Rect{LLx: 200, LLy: 0, URx: 400, URy: 400}
	if d := cmp.Diff(want, g.BBox()); d != "" {
		t.Error(d)
	}
	if g.Width != 600 {
		t.Errorf("width changed to %g", g.Width)
	}
}

func TestImport(t *testing.T) {
	cc := [][]vec.Vec2{
		{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}},
		{{X: 0, Y: 0}, {X: 1, Y: 1}}, // degenerate
	}
	g := &Glyph{}
	M := matrix.Matrix{10, 0, 0, 10, 5, -20}
	g.Import(cc, M)

	if len(g.Contours) != 1 {
		t.Fatalf("got %d contours", len(g.Contours))
	}
	want := rect.Rect{LLx: 5, LLy: -20, URx: 25, URy: 0}
	if d := cmp.Diff(want, g.BBox()); d != "" {
		t.Error(d)
	}
	if cc[0][1].X != 2 {
		t.Error("input modified")
	}
}

func TestRound(t *testing.T) {
	g := &Glyph{Width: 511.6}
	g.Contours = []Contour{
		{{X: 0.2, Y: 0}, {X: 100.4, Y: 0.1}, {X: 100.3, Y: 0.2}, {X: 99.6, Y: 100}, {X: 0, Y: 99.8}},
		{{X: 0, Y: 0}, {X: 0.3, Y: 0.2}, {X: 0.1, Y: 0.4}}, // collapses
	}
	g.Round()

	if g.Width != 512 {
		t.Errorf("wrong width %g", g.Width)
	}
	want := []Contour{
		{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}},
	}
	if d := cmp.Diff(want, g.Contours); d != "" {
		t.Error(d)
	}
}

func TestGlyphName(t *testing.T) {
	cases := []struct {
		r    rune
		want string
	}{
		{' ', "space"},
		{'A', "A"},
		{'z', "z"},
		{'~', "asciitilde"},
		{'0', "zero"},
		{'ä', "adieresis"},
		{'€', "Euro"},
		{0x4E00, "u4E00"},
		{0x1F600, "u1F600"},
	}
	for _, c := range cases {
		if got := GlyphName(c.r); got != c.want {
			t.Errorf("%q: got %q, want %q", c.r, got, c.want)
		}
	}
}

func TestCheck(t *testing.T) {
	// each glyph is a square of size 100 with lower left corner (0, y)
	cases := []struct {
		width float64
		y     float64
		ok    bool
	}{
		{500, 0, true},
		{32767, 32667, true},
		{500, 32667.4, true},
		{500, -32768, true},
		{500, 32668, false},
		{500, -32769, false},
		{-1, 0, false},
		{32768, 0, false},
		{math.NaN(), 0, false},
		{500, math.Inf(1), false},
	}
	for i, c := range cases {
		g := &Glyph{Width: c.width}
		square(g, 0, c.y, 100)
		err := g.Check()
		if c.ok && err != nil {
			t.Errorf("%d: %v", i, err)
		} else if !c.ok && !errors.Is(err, ErrOutOfRange) {
			t.Errorf("%d: wrong error %v", i, err)
		}
	}

	blank := &Glyph{Width: 256}
	if err := blank.Check(); err != nil {
		t.Error(err)
	}
}
