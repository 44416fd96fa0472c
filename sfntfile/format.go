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

package sfntfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// Format is an output file format for fonts.
type Format int

// These are the supported font file formats.
const (
	TTF Format = iota + 1
	OTF
	WOFF
	WOFF2
)

// ParseFormat converts a format name like "ttf" or "woff2" into a Format.
// The name is not case sensitive.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "ttf":
		return TTF, nil
	case "otf":
		return OTF, nil
	case "woff":
		return WOFF, nil
	case "woff2":
		return WOFF2, nil
	default:
		return 0, &NotSupportedError{
			SubSystem: "sfntfile",
			Feature:   fmt.Sprintf("format %q", name),
		}
	}
}

func (f Format) String() string {
	switch f {
	case TTF:
		return "ttf"
	case OTF:
		return "otf"
	case WOFF:
		return "woff"
	case WOFF2:
		return "woff2"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Ext returns the customary file name extension, including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// TrueType reports whether fonts in this format are stored with TrueType
// outlines.  Only OTF files keep the CFF outlines.
func (f Format) TrueType() bool {
	return f != OTF
}

// Encode writes the font in the given format.
// The caller is responsible for using outlines which match [Format.TrueType].
func (f *File) Encode(w io.Writer, format Format) (int64, error) {
	switch format {
	case TTF, OTF:
		return f.Write(w)
	case WOFF:
		return f.WriteWOFF(w)
	case WOFF2:
		return f.WriteWOFF2(w)
	default:
		return 0, &NotSupportedError{
			SubSystem: "sfntfile",
			Feature:   format.String(),
		}
	}
}

// Parse reads a font file in any of the supported formats.
func Parse(data []byte) (*File, error) {
	if len(data) < 4 {
		return nil, errMalformed("file too short")
	}
	switch binary.BigEndian.Uint32(data) {
	case woffSignature:
		return decodeWOFF(data)
	case woff2Signature:
		return decodeWOFF2(data)
	default:
		return Decode(data)
	}
}

// Unwrap returns the plain sfnt data for a font file.
// WOFF and WOFF2 files are decompressed, other data is returned unchanged.
func Unwrap(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, errMalformed("file too short")
	}
	switch binary.BigEndian.Uint32(data) {
	case woffSignature, woff2Signature:
		f, err := Parse(data)
		if err != nil {
			return nil, err
		}
		return f.Bytes()
	default:
		return data, nil
	}
}
