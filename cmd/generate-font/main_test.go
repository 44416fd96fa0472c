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

package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"strings"
	"testing"
	"time"
)

func TestBuildTime(t *testing.T) {
	t.Setenv("SOURCE_DATE_EPOCH", "1700000000")
	got, err := buildTime()
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Unix(1700000000, 0).UTC(); !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}

	t.Setenv("SOURCE_DATE_EPOCH", "yesterday")
	if _, err := buildTime(); err == nil {
		t.Error("invalid SOURCE_DATE_EPOCH accepted")
	}
}

func TestUsageErrors(t *testing.T) {
	cases := [][]string{
		nil,
		{"charmap.json", "out"},
		{"charmap.json", "out", "Name", "ttf", "adjust.json", "extra"},
		{"charmap.json", "out", "bad\u0007name"},
		{"charmap.json", "out", ""},
	}
	for _, args := range cases {
		err := run(args)
		if !errors.Is(err, errUsage) {
			t.Errorf("%q: wrong error %v", args, err)
		}
	}
}

func TestUsage(t *testing.T) {
	buf := &bytes.Buffer{}
	flag.CommandLine.SetOutput(buf)
	defer flag.CommandLine.SetOutput(os.Stderr)

	usage()
	text := buf.String()
	if !strings.HasPrefix(text, "generate-font - build a font file") {
		t.Errorf("wrong usage banner %q", strings.SplitN(text, "\n", 2)[0])
	}
	for i, r := range text {
		if r >= 0x80 {
			t.Errorf("non-ASCII character %q at offset %d", r, i)
			break
		}
	}
	if !strings.Contains(text, "<charmap_file>") {
		t.Error("arguments missing from usage message")
	}
}
