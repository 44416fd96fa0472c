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
	"bytes"
	"fmt"
	"io"

	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/kern"

	"seehuhn.de/go/glyphfont/sfntfile"
)

// Encode writes the font to w in the given format.
func (f *Font) Encode(w io.Writer, format sfntfile.Format) (int64, error) {
	file, err := f.tables(format.TrueType())
	if err != nil {
		return 0, err
	}
	return file.Encode(w, format)
}

// tables converts the font into sfnt tables.  If trueType is set, the
// outlines are stored in "glyf" format, otherwise as CFF data.
// Kerning is stored both in a "kern" table and as a "kern" feature in
// the "GPOS" table.
//
// An error wrapping [ErrOutOfRange] is returned if a glyph does not fit
// into the coordinate range of the font file.
func (f *Font) tables(trueType bool) (*sfntfile.File, error) {
	order, gid := f.glyphOrder()
	for _, g := range order {
		err := g.Check()
		if err != nil {
			return nil, fmt.Errorf("glyph %q: %w", g.Name, err)
		}
	}

	buf := &bytes.Buffer{}
	_, err := f.makeSFNT(order, gid, trueType).Write(buf)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", f.FamilyName, err)
	}
	file, err := sfntfile.Decode(buf.Bytes())
	if err != nil {
		return nil, err
	}

	if len(f.kern) > 0 {
		info := make(kern.Info, len(f.kern))
		for p, v := range f.kern {
			info[glyph.Pair{Left: gid[p.Left], Right: gid[p.Right]}] = v
		}
		file.Tables["kern"] = info.Encode()
	}

	return file, nil
}
