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

// Package charmap reads the files which map characters to glyph images.
//
// A character map is a JSON array of objects, each giving one character and
// the path of an image file:
//
//	[
//	  {"char": "A", "path": "glyphs/A.png"},
//	  {"char": "ß", "path": "glyphs/eszett.png"}
//	]
//
// The keys "character" and "imagePath" are accepted in place of "char" and
// "path".
package charmap

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Mapping assigns a glyph image to a character.
type Mapping struct {
	Char      rune
	ImagePath string
}

func (m Mapping) String() string {
	return fmt.Sprintf("%q -> %s", m.Char, m.ImagePath)
}

type jsonMapping struct {
	Char      string `json:"char"`
	Character string `json:"character"`
	Path      string `json:"path"`
	ImagePath string `json:"imagePath"`
}

// Decode reads a character map in JSON format.
//
// Characters are converted to Unicode normalization form NFC before they are
// checked, so that decomposed input like "a" followed by a combining ring
// is accepted as "å".  If a character occurs more than once, the last entry
// is used and a warning is included in the second return value.
func Decode(r io.Reader) ([]Mapping, []string, error) {
	var raw []jsonMapping
	dec := json.NewDecoder(r)
	err := dec.Decode(&raw)
	if err != nil {
		return nil, nil, &FormatError{Reason: "invalid JSON", Err: err}
	}

	var warnings []string
	res := make([]Mapping, 0, len(raw))
	pos := make(map[rune]int, len(raw))
	for i, entry := range raw {
		s := entry.Char
		if s == "" {
			s = entry.Character
		}
		path := entry.Path
		if path == "" {
			path = entry.ImagePath
		}

		s = norm.NFC.String(s)
		c, size := utf8.DecodeRuneInString(s)
		if size == 0 || size != len(s) || c == utf8.RuneError {
			return nil, nil, &FormatError{
				Entry:  i,
				Reason: fmt.Sprintf("%q is not a single character", s),
			}
		}
		if path == "" {
			return nil, nil, &FormatError{
				Entry:  i,
				Reason: fmt.Sprintf("missing image path for %q", c),
			}
		}

		m := Mapping{Char: c, ImagePath: path}
		if j, seen := pos[c]; seen {
			warnings = append(warnings,
				fmt.Sprintf("duplicate entry for '%c', using %s", c, path))
			res[j] = m
			continue
		}
		pos[c] = len(res)
		res = append(res, m)
	}
	return res, warnings, nil
}

// Load reads a character map from a file.  Relative image paths which do
// not exist relative to the current directory are looked up relative to the
// directory containing the map file.
func Load(fname string) ([]Mapping, []string, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, nil, err
	}
	defer fd.Close()

	mm, warnings, err := Decode(fd)
	if err != nil {
		return nil, nil, err
	}

	base := filepath.Dir(fname)
	for i := range mm {
		mm[i].ImagePath = resolve(base, mm[i].ImagePath)
	}
	return mm, warnings, nil
}

// resolve returns p unchanged if it is absolute or names an existing file.
// Otherwise, p is taken relative to base.
func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	if _, err := os.Stat(p); err == nil {
		return p
	}
	alt := filepath.Join(base, p)
	if _, err := os.Stat(alt); err == nil {
		return alt
	}
	return p
}

// FormatError indicates an invalid character map.
type FormatError struct {
	Entry  int // index of the offending entry, or 0
	Reason string
	Err    error
}

func (err *FormatError) Error() string {
	msg := "charmap: "
	if err.Err == nil {
		msg += fmt.Sprintf("entry %d: ", err.Entry)
	}
	msg += err.Reason
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *FormatError) Unwrap() error {
	return err.Err
}
