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

// Package sfntfile reads and writes the container formats used for
// OpenType and TrueType fonts.
//
// A font is handled as a collection of binary tables.  The plain sfnt
// container is read and written using [seehuhn.de/go/sfnt/header]; this
// package adds the compressed WOFF and WOFF2 wrappers on top.
package sfntfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"slices"

	"seehuhn.de/go/sfnt/header"
)

// File is an sfnt font file, split into its tables.
type File struct {
	ScalerType uint32
	Tables     map[string][]byte
}

// IsCFF reports whether the font uses CFF outlines.
func (f *File) IsCFF() bool {
	return f.ScalerType == header.ScalerTypeCFF
}

// TableNames returns the names of all tables, in alphabetical order.
func (f *File) TableNames() []string {
	var res []string
	for name, data := range f.Tables {
		if data != nil {
			res = append(res, name)
		}
	}
	slices.Sort(res)
	return res
}

// maxTables limits the number of tables in a font file.
const maxTables = 280

// headLen is the size of a version 1.0 "head" table.
const headLen = 54

// Decode splits an sfnt file into its tables.
func Decode(data []byte) (*File, error) {
	r := bytes.NewReader(data)
	info, err := header.Read(r)
	if err != nil {
		return nil, err
	}

	res := &File{
		ScalerType: info.ScalerType,
		Tables:     make(map[string][]byte, len(info.Toc)),
	}
	for name := range info.Toc {
		body, err := info.ReadTableBytes(r, name)
		if err != nil {
			return nil, err
		}
		res.Tables[name] = body
	}
	err = res.check()
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Write writes the font as an sfnt file.
// Tables where the data is nil are not written.
// This updates the checksum adjustment in the "head" table in place.
func (f *File) Write(w io.Writer) (int64, error) {
	err := f.check()
	if err != nil {
		return 0, err
	}
	tables := make(map[string][]byte, len(f.Tables))
	for name, data := range f.Tables {
		if data != nil {
			tables[name] = data
		}
	}
	return header.Write(w, f.ScalerType, tables)
}

// Bytes returns the font as an sfnt file.
func (f *File) Bytes() ([]byte, error) {
	buf := &bytes.Buffer{}
	_, err := f.Write(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// check verifies the invariants needed to write the file.
func (f *File) check() error {
	switch f.ScalerType {
	case header.ScalerTypeTrueType, header.ScalerTypeCFF, header.ScalerTypeApple:
		// pass
	default:
		return &NotSupportedError{
			SubSystem: "sfntfile",
			Feature:   fmt.Sprintf("scaler type 0x%08x", f.ScalerType),
		}
	}
	if len(f.Tables) == 0 {
		return errMalformed("no tables found")
	}
	if len(f.Tables) > maxTables {
		return errMalformed("too many tables")
	}
	for name := range f.Tables {
		if !validTag(name) {
			return errMalformed("invalid table name")
		}
	}
	if head, ok := f.Tables["head"]; ok && len(head) < headLen {
		return errMalformed("\"head\" table too short")
	}
	return nil
}

func validTag(name string) bool {
	if len(name) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if name[i] < 0x20 || name[i] > 0x7E {
			return false
		}
	}
	return true
}

// A dirEntry describes one table of an encoded sfnt file.
type dirEntry struct {
	Name     string
	CheckSum uint32
	Data     []byte
}

// directory encodes the font as an sfnt file and returns the tables in
// the order of the table directory, together with their checksums.
// The WOFF encoders copy this information so that decoding restores the
// original sfnt file.
func (f *File) directory() ([]dirEntry, int, error) {
	data, err := f.Bytes()
	if err != nil {
		return nil, 0, err
	}
	numTables := int(binary.BigEndian.Uint16(data[4:6]))
	res := make([]dirEntry, numTables)
	for i := range res {
		rec := data[12+16*i : 12+16*(i+1)]
		offset := binary.BigEndian.Uint32(rec[8:12])
		length := binary.BigEndian.Uint32(rec[12:16])
		res[i] = dirEntry{
			Name:     string(rec[:4]),
			CheckSum: binary.BigEndian.Uint32(rec[4:8]),
			Data:     data[offset : offset+length],
		}
	}
	return res, len(data), nil
}
