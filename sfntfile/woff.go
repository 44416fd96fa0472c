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
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	woffSignature  = 0x774F4646 // "wOFF"
	woff2Signature = 0x774F4632 // "wOF2"
)

// maxTableSize limits the decompressed size of a single table.
const maxTableSize = 64 << 20

// WriteWOFF writes the font in WOFF 1.0 format.
// Each table is compressed with zlib, unless this does not make the
// table smaller.
// https://www.w3.org/TR/WOFF/
func (f *File) WriteWOFF(w io.Writer) (int64, error) {
	dir, totalSfntSize, err := f.directory()
	if err != nil {
		return 0, err
	}
	numTables := len(dir)

	type entry struct {
		data       []byte
		origLength int
		origSum    uint32
	}
	entries := make([]entry, numTables)
	names := make([]string, numTables)
	for i, e := range dir {
		names[i] = e.Name
		entries[i] = entry{
			data:       e.Data,
			origLength: len(e.Data),
			origSum:    e.CheckSum,
		}

		buf := &bytes.Buffer{}
		zw, err := zlib.NewWriterLevel(buf, zlib.BestCompression)
		if err != nil {
			return 0, err
		}
		_, err = zw.Write(e.Data)
		if err == nil {
			err = zw.Close()
		}
		if err != nil {
			return 0, err
		}
		if buf.Len() < len(e.Data) {
			entries[i].data = buf.Bytes()
		}
	}

	const headerLen = 44
	pos := headerLen + 20*numTables
	records := make([]byte, 0, 20*numTables)
	for i, name := range names {
		e := entries[i]
		records = append(records, name...)
		records = binary.BigEndian.AppendUint32(records, uint32(pos))
		records = binary.BigEndian.AppendUint32(records, uint32(len(e.data)))
		records = binary.BigEndian.AppendUint32(records, uint32(e.origLength))
		records = binary.BigEndian.AppendUint32(records, e.origSum)
		pos += padLen(len(e.data))
	}
	length := pos

	header := make([]byte, headerLen)
	binary.BigEndian.PutUint32(header[0:], woffSignature)
	binary.BigEndian.PutUint32(header[4:], f.ScalerType)
	binary.BigEndian.PutUint32(header[8:], uint32(length))
	binary.BigEndian.PutUint16(header[12:], uint16(numTables))
	binary.BigEndian.PutUint32(header[16:], uint32(totalSfntSize))
	binary.BigEndian.PutUint16(header[20:], 1) // majorVersion
	// minor version, metadata and private data are all zero

	out := &bytes.Buffer{}
	out.Grow(length)
	out.Write(header)
	out.Write(records)
	for _, e := range entries {
		out.Write(e.data)
		out.Write(make([]byte, padLen(len(e.data))-len(e.data)))
	}
	return out.WriteTo(w)
}

// decodeWOFF reads a font in WOFF 1.0 format.
func decodeWOFF(data []byte) (*File, error) {
	const headerLen = 44
	if len(data) < headerLen {
		return nil, errWOFF("file too short")
	}
	if binary.BigEndian.Uint32(data) != woffSignature {
		return nil, errWOFF("wrong signature")
	}
	flavor := binary.BigEndian.Uint32(data[4:])
	if int(binary.BigEndian.Uint32(data[8:])) != len(data) {
		return nil, errWOFF("wrong file length")
	}
	numTables := int(binary.BigEndian.Uint16(data[12:]))
	if numTables == 0 || numTables > maxTables {
		return nil, errWOFF("invalid number of tables")
	}
	if len(data) < headerLen+20*numTables {
		return nil, errWOFF("truncated table directory")
	}

	res := &File{
		ScalerType: flavor,
		Tables:     make(map[string][]byte, numTables),
	}
	for i := 0; i < numTables; i++ {
		rec := data[headerLen+20*i:]
		name := string(rec[:4])
		offset := uint64(binary.BigEndian.Uint32(rec[4:]))
		compLength := uint64(binary.BigEndian.Uint32(rec[8:]))
		origLength := uint64(binary.BigEndian.Uint32(rec[12:]))
		if offset+compLength > uint64(len(data)) {
			return nil, errWOFF(fmt.Sprintf("table %q outside the file", name))
		}
		if compLength > origLength || origLength > maxTableSize {
			return nil, errWOFF(fmt.Sprintf("invalid length for table %q", name))
		}
		if _, dup := res.Tables[name]; dup {
			return nil, errWOFF(fmt.Sprintf("duplicate table %q", name))
		}

		comp := data[offset : offset+compLength]
		var body []byte
		if compLength == origLength {
			body = bytes.Clone(comp)
		} else {
			zr, err := zlib.NewReader(bytes.NewReader(comp))
			if err != nil {
				return nil, errWOFF(fmt.Sprintf("table %q: %v", name, err))
			}
			body, err = io.ReadAll(io.LimitReader(zr, int64(origLength)+1))
			if err != nil {
				return nil, errWOFF(fmt.Sprintf("table %q: %v", name, err))
			}
			if uint64(len(body)) != origLength {
				return nil, errWOFF(fmt.Sprintf("table %q has wrong length", name))
			}
		}
		res.Tables[name] = body
	}
	err := res.check()
	if err != nil {
		return nil, err
	}
	return res, nil
}

// padLen rounds n up to a multiple of four.
func padLen(n int) int {
	return (n + 3) &^ 3
}

func errWOFF(reason string) error {
	return &InvalidFontError{
		SubSystem: "sfntfile/woff",
		Reason:    reason,
	}
}
