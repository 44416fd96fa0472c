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

package glyphfont

import (
	"errors"
	"fmt"
)

var (
	// ErrImageNotFound indicates that the image for a character does not
	// exist.
	ErrImageNotFound = errors.New("image not found")

	// ErrEmptyOutput indicates that the generated font file is missing or
	// too short to be a font.
	ErrEmptyOutput = errors.New("output file is empty")
)

// InputError indicates that the character map or the adjustments file
// could not be read.
type InputError struct {
	Path string
	Err  error
}

func (err *InputError) Error() string {
	return fmt.Sprintf("cannot use input file %q: %v", err.Path, err.Err)
}

func (err *InputError) Unwrap() error {
	return err.Err
}

// GlyphError reports a problem with a single glyph.  Glyph errors are not
// fatal: the glyph is left out of the font and the run continues.
type GlyphError struct {
	Char rune
	Path string

	// Op is the pipeline stage, either "import" or "adjust".
	Op string

	Err error
}

func (err *GlyphError) Error() string {
	switch {
	case errors.Is(err.Err, ErrImageNotFound):
		return fmt.Sprintf("Image for '%c' not found at %s", err.Char, err.Path)
	case err.Op == "import":
		return fmt.Sprintf("Error importing '%c' from %s: %v", err.Char, err.Path, err.Err)
	default:
		return fmt.Sprintf("Error adjusting '%c': %v", err.Char, err.Err)
	}
}

func (err *GlyphError) Unwrap() error {
	return err.Err
}

// OutputError indicates that the font file could not be written, or that
// the written file failed verification.
type OutputError struct {
	Path string
	Err  error
}

func (err *OutputError) Error() string {
	return fmt.Sprintf("font file %q: %v", err.Path, err.Err)
}

func (err *OutputError) Unwrap() error {
	return err.Err
}
