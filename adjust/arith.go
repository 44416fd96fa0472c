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

package adjust

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"unicode/utf8"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/postscript/funit"
)

// Metrics in font design units.
const (
	DefaultWidth = 512 // advance width of a glyph at 100% width
	SpaceWidth   = 256 // advance width of the space glyph
)

// Conversion factors from adjustment steps to font design units.
const (
	LetterSpacingFactor = 20
	BaselineFactor      = 40
	KerningFactor       = 20
	PositionFactorY     = 40
	PositionFactorX     = 0.4
)

// EffectiveWidth returns the glyph width, in design units, for the given
// width percentage.
func EffectiveWidth(percent float64) float64 {
	return DefaultWidth * percent / 100
}

// AdvanceWidth returns the advance width every glyph gets after the
// adjustments are applied.
func (s *Set) AdvanceWidth() float64 {
	return EffectiveWidth(s.CharWidth) + s.LetterSpacing*LetterSpacingFactor
}

// Placement describes how the outline of a glyph is moved.
type Placement struct {
	// Dx is the change of the left side bearing, in design units.
	Dx float64

	// Dy is the vertical translation, in design units.
	Dy float64

	// PerChar is true if the placement comes from a per-character position.
	// If this is false, Dy is the global baseline offset and Dx is zero.
	PerChar bool
}

// Placement returns the placement for the glyph of r.
func (s *Set) Placement(r rune) Placement {
	if pos, ok := s.Positions[r]; ok {
		return Placement{
			Dx:      pos.X * PositionFactorX,
			Dy:      pos.Y * PositionFactorY,
			PerChar: true,
		}
	}
	return Placement{Dy: s.BaselineOffset * BaselineFactor}
}

// WidthScale returns the horizontal scale factor for glyph outlines.
// The second return value is false if no scaling is required.
func (s *Set) WidthScale() (float64, bool) {
	if s.CharWidth == 100 {
		return 1, false
	}
	return s.CharWidth / 100, true
}

// Pair is a kerning adjustment between two characters.
type Pair struct {
	Left, Right rune
	Value       funit.Int16
}

// KerningValue converts a kerning weight into design units.
// Positive weights move the glyphs closer together.
func KerningValue(weight float64) funit.Int16 {
	v := math.Round(-weight * KerningFactor)
	v = max(v, math.MinInt16)
	v = min(v, math.MaxInt16)
	return funit.Int16(v)
}

// Kerning returns the kerning pairs of the set, ordered by left and then by
// right character.  Keys which do not consist of exactly two characters are
// reported in the error slice and are left out.
func (s *Set) Kerning() ([]Pair, []error) {
	var res []Pair
	var errs []error
	keys := maps.Keys(s.KerningPairs)
	slices.Sort(keys)
	for _, key := range keys {
		if utf8.RuneCountInString(key) != 2 || !utf8.ValidString(key) {
			errs = append(errs, fmt.Errorf("kerning pair %q: need exactly two characters", key))
			continue
		}
		left, n := utf8.DecodeRuneInString(key)
		right, _ := utf8.DecodeRuneInString(key[n:])
		res = append(res, Pair{
			Left:  left,
			Right: right,
			Value: KerningValue(s.KerningPairs[key]),
		})
	}
	slices.SortFunc(res, func(a, b Pair) int {
		if c := cmp.Compare(a.Left, b.Left); c != 0 {
			return c
		}
		return cmp.Compare(a.Right, b.Right)
	})
	return res, errs
}
