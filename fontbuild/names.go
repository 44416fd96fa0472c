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

import "seehuhn.de/go/postscript/type1/names"

// GlyphName returns the glyph name for r.
//
// Characters listed in the Adobe Glyph List For New Fonts use the names
// from that list.  All other characters use names of the form "uXXXX".
func GlyphName(r rune) string {
	return names.FromUnicode(string(r))
}
