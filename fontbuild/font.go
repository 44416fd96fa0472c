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

// Package fontbuild implements an editable in-memory font.
//
// A [Font] holds one [Glyph] per character, together with kerning
// information and the font-wide metadata.  Glyph outlines can be drawn with
// a pen interface or imported from traced images.  When editing is
// finished, [Font.Encode] converts the font to one of the supported font
// file formats.
package fontbuild

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/postscript/funit"
)

// Default metrics, in font design units.
const (
	UnitsPerEm = 1000
	Ascent     = 800
	Descent    = -200
)

// Font is an editable font.
type Font struct {
	FamilyName string
	Copyright  string

	UnitsPerEm uint16
	Ascent     funit.Int16
	Descent    funit.Int16

	// CreationTime is stored in the font file.  For reproducible output,
	// set this to a fixed value.
	CreationTime time.Time

	// Hints is set by [Font.AutoHint].
	Hints *Hints

	glyphs map[rune]*Glyph
	kern   map[Pair]funit.Int16
}

// Pair identifies a kerning pair.
type Pair struct {
	Left, Right rune
}

// New allocates a new, empty font.
func New(familyName string, now time.Time) *Font {
	return &Font{
		FamilyName:   familyName,
		Copyright:    fmt.Sprintf("Copyright (c) %d", now.Year()),
		UnitsPerEm:   UnitsPerEm,
		Ascent:       Ascent,
		Descent:      Descent,
		CreationTime: now,
		glyphs:       make(map[rune]*Glyph),
		kern:         make(map[Pair]funit.Int16),
	}
}

// CreateChar returns the glyph for r, creating an empty glyph if needed.
func (f *Font) CreateChar(r rune) *Glyph {
	if g, ok := f.glyphs[r]; ok {
		return g
	}
	g := &Glyph{
		Rune: r,
		Name: GlyphName(r),
	}
	f.glyphs[r] = g
	return g
}

// Glyph returns the glyph for r, or nil if r is not in the font.
func (f *Font) Glyph(r rune) *Glyph {
	return f.glyphs[r]
}

// Contains reports whether the font has a glyph for r.
func (f *Font) Contains(r rune) bool {
	_, ok := f.glyphs[r]
	return ok
}

// Remove deletes the glyph for r, together with all kerning pairs which
// involve r.
func (f *Font) Remove(r rune) {
	delete(f.glyphs, r)
	for p := range f.kern {
		if p.Left == r || p.Right == r {
			delete(f.kern, p)
		}
	}
}

// Runes returns the characters in the font, in increasing order.
func (f *Font) Runes() []rune {
	runes := maps.Keys(f.glyphs)
	slices.Sort(runes)
	return runes
}

// NumGlyphs returns the number of glyphs in the generated font file,
// including the ".notdef" glyph.
func (f *Font) NumGlyphs() int {
	return len(f.glyphs) + 1
}

// ErrMissingGlyph is returned when kerning refers to a glyph which is not
// in the font.
var ErrMissingGlyph = errors.New("glyph not in font")

// SetKern sets the kerning adjustment between left and right.
// Negative values move the glyphs closer together.  A value of zero
// removes the pair.
func (f *Font) SetKern(left, right rune, value funit.Int16) error {
	for _, r := range []rune{left, right} {
		if !f.Contains(r) {
			return fmt.Errorf("kerning '%c%c': %w: %q", left, right, ErrMissingGlyph, r)
		}
	}
	p := Pair{Left: left, Right: right}
	if value == 0 {
		delete(f.kern, p)
		return nil
	}
	f.kern[p] = value
	return nil
}

// KernPair is a kerning pair together with its adjustment.
type KernPair struct {
	Pair
	Value funit.Int16
}

// Kerning returns all kerning pairs, ordered by left and then by right
// character.
func (f *Font) Kerning() []KernPair {
	res := make([]KernPair, 0, len(f.kern))
	for p, v := range f.kern {
		res = append(res, KernPair{Pair: p, Value: v})
	}
	slices.SortFunc(res, func(a, b KernPair) int {
		if c := cmp.Compare(a.Left, b.Left); c != 0 {
			return c
		}
		return cmp.Compare(a.Right, b.Right)
	})
	return res
}
