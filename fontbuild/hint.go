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
	"slices"
	"strings"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/type1"
)

// Hints holds the font-wide hinting information for CFF outlines.
type Hints struct {
	// BlueValues lists the alignment zones as pairs of bottom and top
	// coordinates.  The first pair is the baseline zone.
	BlueValues []funit.Int16

	// OtherBlues lists the descender zones.
	OtherBlues []funit.Int16

	// StdHW and StdVW are the dominant horizontal and vertical stem widths.
	StdHW, StdVW float64
}

// Characters used to find the alignment zones.
const (
	capChars     = "ABDEFHIKLMNPRTUVWXYZ"
	xHeightChars = "acemnorsuvwxz"
	descChars    = "gjpqy"
)

// maxZoneHeight limits the height of an alignment zone.  Zones with a
// larger spread of glyph extents are not useful.
const maxZoneHeight = 60

// AutoHint computes alignment zones and standard stem widths from the glyph
// outlines.  The result is stored in f.Hints.
func (f *Font) AutoHint() {
	var bottoms, tops, capTops, xTops, descBottoms []float64
	var hStems, vStems []float64
	for r, g := range f.glyphs {
		if g.IsBlank() {
			continue
		}
		bbox := g.BBox()
		switch {
		case strings.ContainsRune(descChars, r):
			descBottoms = append(descBottoms, bbox.LLy)
		case math.Abs(bbox.LLy) <= float64(f.UnitsPerEm)/10:
			bottoms = append(bottoms, bbox.LLy)
		}
		switch {
		case strings.ContainsRune(capChars, r):
			capTops = append(capTops, bbox.URy)
		case strings.ContainsRune(xHeightChars, r):
			xTops = append(xTops, bbox.URy)
		}
		tops = append(tops, bbox.URy)

		vStems = append(vStems, g.runs(true)...)
		hStems = append(hStems, g.runs(false)...)
	}

	h := &Hints{}
	if lo, hi, ok := zone(bottoms); ok {
		h.BlueValues = append(h.BlueValues, min(lo, 0), max(hi, 0))
	} else {
		h.BlueValues = append(h.BlueValues, 0, 0)
	}
	topGroups := [][]float64{xTops, capTops}
	if len(xTops) == 0 && len(capTops) == 0 {
		topGroups = [][]float64{tops}
	}
	for _, group := range topGroups {
		if lo, hi, ok := zone(group); ok {
			h.BlueValues = addZone(h.BlueValues, lo, hi)
		}
	}
	if lo, hi, ok := zone(descBottoms); ok && hi < h.BlueValues[0] {
		h.OtherBlues = []funit.Int16{lo, hi}
	}
	h.StdHW = median(hStems)
	h.StdVW = median(vStems)

	f.Hints = h
}

// zone returns the range of the values in vv, provided this range is
// narrow enough to form an alignment zone.
func zone(vv []float64) (lo, hi funit.Int16, ok bool) {
	if len(vv) == 0 {
		return 0, 0, false
	}
	a := slices.Min(vv)
	b := slices.Max(vv)
	if b-a > maxZoneHeight {
		// use the central half of the values
		s := slices.Clone(vv)
		slices.Sort(s)
		a = s[len(s)/4]
		b = s[(3*len(s))/4]
		if b-a > maxZoneHeight {
			return 0, 0, false
		}
	}
	return funit.Int16(math.Floor(a)), funit.Int16(math.Ceil(b)), true
}

// addZone adds the zone [lo, hi] to the sorted list of zones zz.
// Overlapping zones are merged.
func addZone(zz []funit.Int16, lo, hi funit.Int16) []funit.Int16 {
	for i := 0; i < len(zz); i += 2 {
		if lo <= zz[i+1] && hi >= zz[i] {
			zz[i] = min(zz[i], lo)
			zz[i+1] = max(zz[i+1], hi)
			return zz
		}
	}
	zz = append(zz, lo, hi)
	pairs := make([][2]funit.Int16, 0, len(zz)/2)
	for i := 0; i < len(zz); i += 2 {
		pairs = append(pairs, [2]funit.Int16{zz[i], zz[i+1]})
	}
	// the baseline zone stays first
	slices.SortFunc(pairs[1:], func(a, b [2]funit.Int16) int {
		return int(a[0]) - int(b[0])
	})
	zz = zz[:0]
	for _, p := range pairs {
		zz = append(zz, p[0], p[1])
	}
	return zz
}

// runs measures the stems of the glyph along a line through the center of
// the bounding box.  If vertical is true, a horizontal line is used and the
// widths of vertical stems are returned.  Otherwise the heights of
// horizontal stems are returned.
func (g *Glyph) runs(vertical bool) []float64 {
	bbox := g.BBox()
	var crossings []float64
	for _, c := range g.Contours {
		n := len(c)
		for i, p := range c {
			q := c[(i+1)%n]
			if vertical {
				y := (bbox.LLy + bbox.URy) / 2
				if (p.Y <= y) != (q.Y <= y) {
					crossings = append(crossings, p.X+(y-p.Y)*(q.X-p.X)/(q.Y-p.Y))
				}
			} else {
				x := (bbox.LLx + bbox.URx) / 2
				if (p.X <= x) != (q.X <= x) {
					crossings = append(crossings, p.Y+(x-p.X)*(q.Y-p.Y)/(q.X-p.X))
				}
			}
		}
	}
	slices.Sort(crossings)

	var res []float64
	for i := 0; i+1 < len(crossings); i += 2 {
		if w := crossings[i+1] - crossings[i]; w > 0 {
			res = append(res, w)
		}
	}
	return res
}

func median(vv []float64) float64 {
	if len(vv) == 0 {
		return 0
	}
	s := slices.Clone(vv)
	slices.Sort(s)
	return math.Round(s[len(s)/2])
}

// privateDict returns the CFF private dictionary for the font.
func (f *Font) privateDict() *type1.PrivateDict {
	h := f.Hints
	if h == nil {
		h = &Hints{BlueValues: []funit.Int16{0, 0}}
	}
	return &type1.PrivateDict{
		BlueValues: h.BlueValues,
		OtherBlues: h.OtherBlues,
		BlueScale:  0.039625,
		BlueShift:  7,
		BlueFuzz:   1,
		StdHW:      h.StdHW,
		StdVW:      h.StdVW,
	}
}
