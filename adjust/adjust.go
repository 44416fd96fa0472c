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

// Package adjust reads typographic adjustment files and implements the
// arithmetic which turns adjustment values into font units.
//
// All values in an adjustment file are given in abstract steps.  The
// functions in this package convert these steps into font design units,
// using a fixed factor per kind of adjustment.
package adjust

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// Position is a per-character offset, in steps.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Set describes the adjustments applied to a generated font.
// The zero value is not neutral, use [Neutral] or [Decode] to get a Set.
type Set struct {
	// LetterSpacing is added to the advance width of every glyph.
	LetterSpacing float64

	// BaselineOffset moves all glyphs without a per-character position
	// vertically.
	BaselineOffset float64

	// CharWidth is the glyph width as a percentage of the default width.
	CharWidth float64

	// KerningPairs maps two-character strings to kerning weights.
	KerningPairs map[string]float64

	// Positions gives per-character offsets.
	Positions map[rune]Position
}

// Neutral returns a Set which leaves all glyphs unchanged.
func Neutral() *Set {
	return &Set{CharWidth: 100}
}

// jsonSet is the on-disk form of a Set.
type jsonSet struct {
	LetterSpacing  float64             `json:"letterSpacing"`
	BaselineOffset float64             `json:"baselineOffset"`
	CharWidth      *float64            `json:"charWidth"`
	KerningPairs   map[string]float64  `json:"kerningPairs"`
	CharPositions  map[string]Position `json:"charPositions"`
}

// Decode reads an adjustment set in JSON format.
// Fields which are absent take their neutral values.
func Decode(r io.Reader) (*Set, error) {
	var raw jsonSet
	dec := json.NewDecoder(r)
	err := dec.Decode(&raw)
	if err != nil {
		return nil, &FormatError{Reason: "invalid JSON", Err: err}
	}

	res := Neutral()
	res.LetterSpacing = raw.LetterSpacing
	res.BaselineOffset = raw.BaselineOffset
	if raw.CharWidth != nil {
		if *raw.CharWidth <= 0 {
			return nil, &FormatError{
				Reason: fmt.Sprintf("charWidth must be positive, got %g", *raw.CharWidth),
			}
		}
		res.CharWidth = *raw.CharWidth
	}
	if len(raw.KerningPairs) > 0 {
		res.KerningPairs = raw.KerningPairs
	}
	if len(raw.CharPositions) > 0 {
		res.Positions = make(map[rune]Position, len(raw.CharPositions))
		for key, pos := range raw.CharPositions {
			r, size := utf8.DecodeRuneInString(key)
			if size == 0 || size != len(key) || r == utf8.RuneError {
				return nil, &FormatError{
					Reason: fmt.Sprintf("charPositions key %q is not a single character", key),
				}
			}
			res.Positions[r] = pos
		}
	}
	return res, nil
}

// Load reads an adjustment set from a file.
func Load(fname string) (*Set, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	return Decode(fd)
}

// FormatError indicates an invalid adjustment file.
type FormatError struct {
	Reason string
	Err    error
}

func (err *FormatError) Error() string {
	msg := "adjust: " + err.Reason
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *FormatError) Unwrap() error {
	return err.Err
}
