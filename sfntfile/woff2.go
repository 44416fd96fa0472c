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
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/andybalholm/brotli"
)

// woff2KnownTags lists the tags which can be stored in a WOFF2 directory
// entry as a 6-bit index.
var woff2KnownTags = [63]string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca", "prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern", "LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS", "GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL", "SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar", "fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar", "mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat", "Gloc", "Feat", "Sill",
}

const woff2ArbitraryTag = 63

// WriteWOFF2 writes the font in WOFF2 format.
// All tables are stored without transformation in a single Brotli stream.
// https://www.w3.org/TR/WOFF2/
func (f *File) WriteWOFF2(w io.Writer) (int64, error) {
	entries, totalSfntSize, err := f.directory()
	if err != nil {
		return 0, err
	}
	// "loca" must immediately follow "glyf"
	isLoca := func(e dirEntry) bool { return e.Name == "loca" }
	if i := slices.IndexFunc(entries, isLoca); i >= 0 {
		loca := entries[i]
		entries = slices.Delete(entries, i, i+1)
		if j := slices.IndexFunc(entries, func(e dirEntry) bool { return e.Name == "glyf" }); j >= 0 {
			entries = slices.Insert(entries, j+1, loca)
		} else {
			entries = slices.Insert(entries, i, loca)
		}
	}
	numTables := len(entries)

	var dir []byte
	comp := &bytes.Buffer{}
	bw := brotli.NewWriterLevel(comp, brotli.BestCompression)
	for _, e := range entries {
		var flags byte
		if idx := slices.Index(woff2KnownTags[:], e.Name); idx >= 0 {
			flags = byte(idx)
		} else {
			flags = woff2ArbitraryTag
		}
		if e.Name == "glyf" || e.Name == "loca" {
			flags |= 3 << 6 // null transform
		}
		dir = append(dir, flags)
		if flags&0x3F == woff2ArbitraryTag {
			dir = append(dir, e.Name...)
		}
		dir = appendUIntBase128(dir, uint32(len(e.Data)))

		if _, err := bw.Write(e.Data); err != nil {
			return 0, err
		}
	}
	if err := bw.Close(); err != nil {
		return 0, err
	}

	const headerLen = 48
	length := headerLen + len(dir) + comp.Len()
	padded := padLen(length)

	header := make([]byte, headerLen)
	binary.BigEndian.PutUint32(header[0:], woff2Signature)
	binary.BigEndian.PutUint32(header[4:], f.ScalerType)
	binary.BigEndian.PutUint32(header[8:], uint32(padded))
	binary.BigEndian.PutUint16(header[12:], uint16(numTables))
	binary.BigEndian.PutUint32(header[16:], uint32(totalSfntSize))
	binary.BigEndian.PutUint32(header[20:], uint32(comp.Len()))
	binary.BigEndian.PutUint16(header[24:], 1) // majorVersion
	// minor version, metadata and private data are all zero

	out := &bytes.Buffer{}
	out.Grow(padded)
	out.Write(header)
	out.Write(dir)
	out.Write(comp.Bytes())
	out.Write(make([]byte, padded-length))
	return out.WriteTo(w)
}

// decodeWOFF2 reads a font in WOFF2 format.
// Only fonts where all tables are stored untransformed are supported.
func decodeWOFF2(data []byte) (*File, error) {
	const headerLen = 48
	if len(data) < headerLen {
		return nil, errWOFF2("file too short")
	}
	if binary.BigEndian.Uint32(data) != woff2Signature {
		return nil, errWOFF2("wrong signature")
	}
	flavor := binary.BigEndian.Uint32(data[4:])
	if int(binary.BigEndian.Uint32(data[8:])) != len(data) {
		return nil, errWOFF2("wrong file length")
	}
	numTables := int(binary.BigEndian.Uint16(data[12:]))
	if numTables == 0 || numTables > maxTables {
		return nil, errWOFF2("invalid number of tables")
	}
	if flavor == 0x74746366 { // "ttcf"
		return nil, &NotSupportedError{
			SubSystem: "sfntfile/woff2",
			Feature:   "font collections",
		}
	}
	totalCompressedSize := int(binary.BigEndian.Uint32(data[20:]))

	type dirEntry struct {
		name   string
		length uint32
	}
	entries := make([]dirEntry, 0, numTables)
	pos := headerLen
	var total uint64
	for i := 0; i < numTables; i++ {
		if pos >= len(data) {
			return nil, errWOFF2("truncated table directory")
		}
		flags := data[pos]
		pos++

		var name string
		if idx := flags & 0x3F; idx == woff2ArbitraryTag {
			if pos+4 > len(data) {
				return nil, errWOFF2("truncated table directory")
			}
			name = string(data[pos : pos+4])
			pos += 4
		} else {
			name = woff2KnownTags[idx]
		}

		origLength, n, err := readUIntBase128(data[pos:])
		if err != nil {
			return nil, errWOFF2(err.Error())
		}
		pos += n

		version := flags >> 6
		transformed := version != 0
		if name == "glyf" || name == "loca" {
			transformed = version != 3
		}
		if transformed {
			return nil, &NotSupportedError{
				SubSystem: "sfntfile/woff2",
				Feature:   fmt.Sprintf("transformed %q table", name),
			}
		}
		if origLength > maxTableSize {
			return nil, errWOFF2(fmt.Sprintf("table %q too large", name))
		}
		total += uint64(origLength)
		entries = append(entries, dirEntry{name: name, length: origLength})
	}
	if pos+totalCompressedSize > len(data) {
		return nil, errWOFF2("truncated compressed data")
	}

	br := brotli.NewReader(bytes.NewReader(data[pos : pos+totalCompressedSize]))
	stream, err := io.ReadAll(io.LimitReader(br, int64(total)+1))
	if err != nil {
		return nil, errWOFF2(err.Error())
	}
	if uint64(len(stream)) != total {
		return nil, errWOFF2("wrong decompressed length")
	}

	res := &File{
		ScalerType: flavor,
		Tables:     make(map[string][]byte, numTables),
	}
	for _, e := range entries {
		if _, dup := res.Tables[e.name]; dup {
			return nil, errWOFF2(fmt.Sprintf("duplicate table %q", e.name))
		}
		res.Tables[e.name] = stream[:e.length:e.length]
		stream = stream[e.length:]
	}
	err = res.check()
	if err != nil {
		return nil, err
	}
	return res, nil
}

// appendUIntBase128 appends x in the variable-length encoding used by
// WOFF2.
func appendUIntBase128(buf []byte, x uint32) []byte {
	var tmp [5]byte
	i := len(tmp) - 1
	tmp[i] = byte(x & 0x7F)
	for x >>= 7; x != 0; x >>= 7 {
		i--
		tmp[i] = byte(x&0x7F) | 0x80
	}
	return append(buf, tmp[i:]...)
}

// readUIntBase128 decodes a UIntBase128 value and returns the value and the
// number of bytes used.
func readUIntBase128(data []byte) (uint32, int, error) {
	var res uint32
	for i := 0; i < 5; i++ {
		if i >= len(data) {
			return 0, 0, errUIntBase128
		}
		b := data[i]
		if i == 0 && b == 0x80 {
			return 0, 0, errUIntBase128 // leading zeros
		}
		if res&0xFE000000 != 0 {
			return 0, 0, errUIntBase128 // overflow
		}
		res = res<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return res, i + 1, nil
		}
	}
	return 0, 0, errUIntBase128
}

var errUIntBase128 = errors.New("invalid UIntBase128 value")

func errWOFF2(reason string) error {
	return &InvalidFontError{
		SubSystem: "sfntfile/woff2",
		Reason:    reason,
	}
}
