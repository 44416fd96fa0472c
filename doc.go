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

// Package glyphfont converts a set of glyph images into a font file.
//
// The input is a JSON character map, which assigns an image file to each
// character, and an optional JSON file with typographic adjustments:
//
//	[
//	    {"char": "A", "path": "glyphs/A.png"},
//	    {"char": "B", "path": "glyphs/B.png"}
//	]
//
//	{
//	    "letterSpacing": 0.5,
//	    "baselineOffset": 0,
//	    "charWidth": 90,
//	    "kerningPairs": {"AV": 1},
//	    "charPositions": {"g": {"x": 0, "y": -1}}
//	}
//
// [Generate] traces every image, applies the adjustments and writes the
// font as TrueType, OpenType/CFF, WOFF or WOFF2 file.  Images which are
// missing or cannot be traced are skipped with a warning.
//
// A run looks like this:
//
//	res, err := glyphfont.Generate(&glyphfont.Options{
//	    CharMap:  "charmap.json",
//	    Output:   "out/MyHand",
//	    FontName: "My Hand",
//	    Format:   "woff2",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("wrote", res.Path)
package glyphfont
