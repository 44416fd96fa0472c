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
	"math"

	"golang.org/x/text/language"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/type1"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/maxp"
	"seehuhn.de/go/sfnt/opentype/gtab"
	"seehuhn.de/go/sfnt/os2"
)

// notdefWidth is the advance width of the ".notdef" glyph, as a fraction of
// the em size.
const notdefWidth = 0.5

// glyphOrder returns the glyphs in the order used in the font file,
// together with the map from characters to glyph IDs.
// Glyph ID 0 is reserved for ".notdef", so the glyph at index i gets
// glyph ID i+1.
func (f *Font) glyphOrder() ([]*Glyph, map[rune]glyph.ID) {
	runes := f.Runes()
	order := make([]*Glyph, len(runes))
	gid := make(map[rune]glyph.ID, len(runes))
	for i, r := range runes {
		order[i] = f.glyphs[r]
		gid[r] = glyph.ID(i + 1)
	}
	return order, gid
}

// makeSFNT converts f into an sfnt.Font.  If trueType is set, the outlines
// are stored in "glyf" format, otherwise as CFF data.
func (f *Font) makeSFNT(order []*Glyph, gid map[rune]glyph.ID, trueType bool) *sfnt.Font {
	q := 1 / float64(f.UnitsPerEm)
	fontMatrix := matrix.Matrix{q, 0, 0, q, 0, 0}

	em := float64(f.UnitsPerEm)
	info := &sfnt.Font{
		FamilyName:         f.FamilyName,
		Version:            1 << 16, // 1.0
		CreationTime:       f.CreationTime,
		ModificationTime:   f.CreationTime,
		Copyright:          f.Copyright,
		Width:              os2.WidthNormal,
		Weight:             os2.WeightNormal,
		IsRegular:          true,
		PermUse:            os2.PermInstall,
		UnitsPerEm:         f.UnitsPerEm,
		FontMatrix:         fontMatrix,
		Ascent:             f.Ascent,
		Descent:            f.Descent,
		CapHeight:          f.heightOf('H', 0.7*em),
		XHeight:            f.heightOf('x', 0.5*em),
		UnderlinePosition:  funit.Float64(-0.1 * em),
		UnderlineThickness: funit.Float64(0.05 * em),
		Gpos:               f.makeGpos(gid),
	}
	if trueType {
		info.Outlines = f.glyfOutlines(order)
	} else {
		info.Outlines = f.cffOutlines(order)
	}

	var high rune
	for r := range gid {
		high = max(high, r)
	}
	if high > 0xFFFF {
		sub := cmap.Format12{}
		for r, id := range gid {
			sub[uint32(r)] = id
		}
		info.InstallCMap(sub)
	} else {
		sub := cmap.Format4{}
		for r, id := range gid {
			sub[uint16(r)] = id
		}
		info.InstallCMap(sub)
	}

	return info
}

// cffOutlines returns the glyphs in order as CFF outlines, preceded by
// ".notdef".
func (f *Font) cffOutlines(order []*Glyph) *cff.Outlines {
	glyphs := make([]*cff.Glyph, 0, len(order)+1)
	glyphs = append(glyphs, f.makeNotdef())
	encoding := make([]glyph.ID, 256)
	for i, g := range order {
		glyphs = append(glyphs, g.cffGlyph())
		if g.Rune >= 0x20 && g.Rune < 0x7F {
			encoding[g.Rune] = glyph.ID(i + 1)
		}
	}
	return &cff.Outlines{
		Glyphs:   glyphs,
		Private:  []*type1.PrivateDict{f.privateDict()},
		FDSelect: func(glyph.ID) int { return 0 },
		Encoding: encoding,
	}
}

// glyfOutlines returns the glyphs in order as TrueType outlines, preceded
// by ".notdef".
func (f *Font) glyfOutlines(order []*Glyph) *glyf.Outlines {
	n := len(order) + 1
	res := &glyf.Outlines{
		Glyphs: make(glyf.Glyphs, 0, n),
		Widths: make([]funit.Int16, 0, n),
		Names:  make([]string, 0, n),
		Maxp:   &maxp.TTFInfo{MaxZones: 2},
	}
	add := func(name string, width float64, cc []Contour) {
		var g *glyf.Glyph
		if tc := ttContours(cc); len(tc) > 0 {
			simple := &glyf.SimpleUnpacked{Contours: tc}
			packed := simple.AsGlyph()
			g = &packed

			numPoints := 0
			for _, c := range tc {
				numPoints += len(c)
			}
			res.Maxp.MaxPoints = max(res.Maxp.MaxPoints, uint16(numPoints))
			res.Maxp.MaxContours = max(res.Maxp.MaxContours, uint16(len(tc)))
		}
		res.Glyphs = append(res.Glyphs, g)
		res.Widths = append(res.Widths, funit.Int16(math.Round(width)))
		res.Names = append(res.Names, name)
	}
	add(".notdef", notdefWidth*float64(f.UnitsPerEm), f.notdefContours())
	for _, g := range order {
		add(g.Name, g.Width, g.Contours)
	}
	return res
}

// makeGpos returns a "GPOS" table which implements the kerning pairs as a
// "kern" feature, or nil if the font has no kerning.
func (f *Font) makeGpos(gid map[rune]glyph.ID) *gtab.Info {
	if len(f.kern) == 0 {
		return nil
	}

	kern := gtab.Gpos2_1{}
	for p, v := range f.kern {
		kern[glyph.Pair{Left: gid[p.Left], Right: gid[p.Right]}] = &gtab.PairAdjust{
			First: &gtab.GposValueRecord{XAdvance: v},
		}
	}

	features := &gtab.Features{
		Required: 0xFFFF,
		Optional: []gtab.FeatureIndex{0},
	}
	return &gtab.Info{
		ScriptList: gtab.ScriptListInfo{
			language.MustParse("und-Zzzz"): features,
			language.MustParse("und-Latn"): features,
		},
		FeatureList: gtab.FeatureListInfo{
			{Tag: "kern", Lookups: []gtab.LookupIndex{0}},
		},
		LookupList: gtab.LookupList{
			{
				Meta:      &gtab.LookupMetaInfo{LookupType: 2},
				Subtables: []gtab.Subtable{kern},
			},
		},
	}
}

// heightOf returns the top of the glyph for r, or def if r has no outline.
func (f *Font) heightOf(r rune, def float64) funit.Int16 {
	h := def
	if g := f.glyphs[r]; g != nil && !g.IsBlank() {
		h = g.BBox().URy
	}
	return funit.Int16(math.Round(h))
}

// makeNotdef returns a hollow box, the customary shape for ".notdef".
func (f *Font) makeNotdef() *cff.Glyph {
	width := math.Round(notdefWidth * float64(f.UnitsPerEm))
	g := cff.NewGlyph(".notdef", width)
	for _, c := range f.notdefContours() {
		g.MoveTo(c[0].X, c[0].Y)
		for _, p := range c[1:] {
			g.LineTo(p.X, p.Y)
		}
	}
	return g
}

// notdefBox returns llx, lly, urx, ury of the ".notdef" box.
func notdefBox(f *Font) [4]float64 {
	em := float64(f.UnitsPerEm)
	w := math.Round(notdefWidth * em)
	return [4]float64{
		math.Round(0.05 * em), 0,
		w - math.Round(0.05*em), math.Round(0.7 * em),
	}
}

// notdefHole returns the counter of the ".notdef" box.
func notdefHole(f *Font) [4]float64 {
	stroke := math.Round(0.05 * float64(f.UnitsPerEm))
	b := notdefBox(f)
	return [4]float64{b[0] + stroke, b[1] + stroke, b[2] - stroke, b[3] - stroke}
}

// notdefContours returns the ".notdef" outline in the same form as the
// contours of a [Glyph].
func (f *Font) notdefContours() []Contour {
	b := notdefBox(f)
	h := notdefHole(f)
	return []Contour{
		{{X: b[0], Y: b[1]}, {X: b[2], Y: b[1]}, {X: b[2], Y: b[3]}, {X: b[0], Y: b[3]}},
		{{X: h[0], Y: h[1]}, {X: h[0], Y: h[3]}, {X: h[2], Y: h[3]}, {X: h[2], Y: h[1]}},
	}
}

// cffGlyph converts the outline of g into a CFF glyph.
func (g *Glyph) cffGlyph() *cff.Glyph {
	res := cff.NewGlyph(g.Name, math.Round(g.Width))
	for _, c := range g.Contours {
		res.MoveTo(math.Round(c[0].X), math.Round(c[0].Y))
		for _, p := range c[1:] {
			res.LineTo(math.Round(p.X), math.Round(p.Y))
		}
	}
	return res
}

// ttContours converts an outline into TrueType form.  TrueType outer
// contours run clockwise, so all contours are reversed.
func ttContours(cc []Contour) []glyf.Contour {
	res := make([]glyf.Contour, 0, len(cc))
	for _, c := range cc {
		tc := make(glyf.Contour, 0, len(c))
		for i := len(c) - 1; i >= 0; i-- {
			p := glyf.Point{
				X:       funit.Int16(math.Round(c[i].X)),
				Y:       funit.Int16(math.Round(c[i].Y)),
				OnCurve: true,
			}
			if len(tc) > 0 && tc[len(tc)-1] == p {
				continue
			}
			tc = append(tc, p)
		}
		if len(tc) > 1 && tc[0] == tc[len(tc)-1] {
			tc = tc[:len(tc)-1]
		}
		if len(tc) >= 3 {
			res = append(res, tc)
		}
	}
	return res
}
