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

package adjust

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeDefaults(t *testing.T) {
	s, err := Decode(strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(Neutral(), s); d != "" {
		t.Errorf("unexpected defaults (-want +got):\n%s", d)
	}
	if w := s.AdvanceWidth(); w != DefaultWidth {
		t.Errorf("got width %g, want %d", w, DefaultWidth)
	}
	if _, ok := s.WidthScale(); ok {
		t.Error("neutral set requests outline scaling")
	}
}

func TestDecode(t *testing.T) {
	in := `{
		"letterSpacing": 1.5,
		"baselineOffset": -0.5,
		"charWidth": 80,
		"kerningPairs": {"AV": 1, "To": 0.5},
		"charPositions": {"g": {"x": 10, "y": -1}},
		"somethingElse": true
	}`
	s, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := &Set{
		LetterSpacing:  1.5,
		BaselineOffset: -0.5,
		CharWidth:      80,
		KerningPairs:   map[string]float64{"AV": 1, "To": 0.5},
		Positions:      map[rune]Position{'g': {X: 10, Y: -1}},
	}
	if d := cmp.Diff(want, s); d != "" {
		t.Errorf("unexpected result (-want +got):\n%s", d)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"syntax", `{"letterSpacing": }`},
		{"type", `{"letterSpacing": "wide"}`},
		{"zero width", `{"charWidth": 0}`},
		{"long position key", `{"charPositions": {"ab": {"x": 1}}}`},
		{"empty position key", `{"charPositions": {"": {"x": 1}}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.in))
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Errorf("got %v, want a *FormatError", err)
			}
		})
	}
}

func TestEffectiveWidth(t *testing.T) {
	cases := []struct {
		percent float64
		want    float64
	}{
		{100, 512},
		{50, 256},
		{150, 768},
		{12.5, 64},
	}
	for _, tc := range cases {
		got := EffectiveWidth(tc.percent)
		if got != tc.want {
			t.Errorf("EffectiveWidth(%g) = %g, want %g", tc.percent, got, tc.want)
		}
	}
}

func TestAdvanceWidth(t *testing.T) {
	s := Neutral()
	s.LetterSpacing = 2
	s.CharWidth = 50
	if got := s.AdvanceWidth(); got != 256+40 {
		t.Errorf("got %g, want %d", got, 256+40)
	}
}

func TestPlacement(t *testing.T) {
	s := Neutral()
	s.BaselineOffset = 0.5
	s.Positions = map[rune]Position{
		'a': {X: 0, Y: 1},
		'b': {X: 10, Y: 0},
		'c': {},
	}

	cases := []struct {
		r    rune
		want Placement
	}{
		{'a', Placement{Dx: 0, Dy: 40, PerChar: true}},
		{'b', Placement{Dx: 4, Dy: 0, PerChar: true}},
		{'c', Placement{PerChar: true}},
		{'d', Placement{Dy: 20}},
	}
	for _, tc := range cases {
		got := s.Placement(tc.r)
		if d := cmp.Diff(tc.want, got); d != "" {
			t.Errorf("placement of %q (-want +got):\n%s", tc.r, d)
		}
	}
}

func TestWidthScale(t *testing.T) {
	s := Neutral()
	s.CharWidth = 75
	f, ok := s.WidthScale()
	if !ok || f != 0.75 {
		t.Errorf("got (%g, %t), want (0.75, true)", f, ok)
	}
}

func TestKerning(t *testing.T) {
	s := Neutral()
	s.KerningPairs = map[string]float64{
		"VA":  1,
		"AV":  1,
		"To":  -0.5,
		"x":   3,
		"abc": 1,
		"äö":  0.04,
	}
	pairs, errs := s.Kerning()

	want := []Pair{
		{'A', 'V', -20},
		{'T', 'o', 10},
		{'V', 'A', -20},
		{'ä', 'ö', -1},
	}
	if d := cmp.Diff(want, pairs); d != "" {
		t.Errorf("unexpected pairs (-want +got):\n%s", d)
	}
	if len(errs) != 2 {
		t.Errorf("got %d errors, want 2", len(errs))
	}
}

func TestKerningValueClamp(t *testing.T) {
	if v := KerningValue(1e6); v != -32768 {
		t.Errorf("got %d, want -32768", v)
	}
	if v := KerningValue(-1e6); v != 32767 {
		t.Errorf("got %d, want 32767", v)
	}
}
