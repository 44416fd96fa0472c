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

// Font-selftest checks that fonts can be built and read back.
//
// The program draws a single glyph, encodes the font in every supported
// format and parses the result with an independent font reader.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/term"

	"seehuhn.de/go/glyphfont/cmd/internal/buildinfo"
	"seehuhn.de/go/glyphfont/fontbuild"
	"seehuhn.de/go/glyphfont/sfntfile"
)

func main() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "font-selftest - check that fonts can be generated\n")
		fmt.Fprintf(out, "%s\n\n", buildinfo.Short("font-selftest"))
		fmt.Fprintf(out, "Usage:\n")
		fmt.Fprintf(out, "  font-selftest\n")
	}
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(1)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.DisableStyling()
	}

	err := run()
	if err != nil {
		pterm.Error.Println("Error testing font generation:", err)
		os.Exit(1)
	}
	pterm.Success.Println("FontForge is working correctly!")
}

func run() error {
	f := fontbuild.New("Self Test", time.Now())

	g := f.CreateChar('A')
	g.Width = 1000
	g.MoveTo(0, 0)
	g.LineTo(500, 1000)
	g.LineTo(1000, 0)
	g.ClosePath()
	if len(g.Contours) != 1 || len(g.Contours[0]) != 3 {
		return fmt.Errorf("pen produced %d contours", len(g.Contours))
	}

	for _, format := range []sfntfile.Format{sfntfile.TTF, sfntfile.OTF, sfntfile.WOFF, sfntfile.WOFF2} {
		err := check(f, format)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
	}
	return nil
}

// check encodes f in the given format and reads the result back.
func check(f *fontbuild.Font, format sfntfile.Format) error {
	buf := &bytes.Buffer{}
	_, err := f.Encode(buf, format)
	if err != nil {
		return err
	}

	data, err := sfntfile.Unwrap(buf.Bytes())
	if err != nil {
		return err
	}
	font, err := sfnt.Parse(data)
	if err != nil {
		return err
	}
	if n := font.NumGlyphs(); n != f.NumGlyphs() {
		return fmt.Errorf("expected %d glyphs, found %d", f.NumGlyphs(), n)
	}
	gid, err := font.GlyphIndex(nil, 'A')
	if err != nil {
		return err
	}
	if gid == 0 {
		return fmt.Errorf("glyph for 'A' not found")
	}
	return nil
}
