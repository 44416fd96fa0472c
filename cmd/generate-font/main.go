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

// Generate-font converts a set of glyph images into a font file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/xdg-go/stringprep"
	"golang.org/x/term"
	"golang.org/x/text/unicode/runenames"

	"seehuhn.de/go/glyphfont"
	"seehuhn.de/go/glyphfont/cmd/internal/buildinfo"
	"seehuhn.de/go/glyphfont/cmd/internal/profile"
	"seehuhn.de/go/glyphfont/fontbuild"
)

var (
	quiet      = flag.Bool("q", false, "only print warnings and errors")
	verbose    = flag.Bool("v", false, "list the glyphs in the generated font")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
)

// errUsage indicates invalid command line arguments.
var errUsage = errors.New("invalid arguments")

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "generate-font - build a font file from glyph images\n")
	fmt.Fprintf(out, "%s\n\n", buildinfo.Short("generate-font"))
	fmt.Fprintf(out, "Usage:\n")
	fmt.Fprintf(out, "  generate-font [options] <charmap_file> <output_file> <font_name> [<format>] [<adjustments_file>]\n\n")
	fmt.Fprintf(out, "Arguments:\n")
	fmt.Fprintf(out, "  charmap_file      JSON list of {\"char\": ..., \"path\": ...} entries\n")
	fmt.Fprintf(out, "  output_file       output file name, without extension\n")
	fmt.Fprintf(out, "  font_name         family name of the font\n")
	fmt.Fprintf(out, "  format            ttf, otf, woff or woff2 (default ttf)\n")
	fmt.Fprintf(out, "  adjustments_file  optional JSON file with spacing and kerning\n\n")
	fmt.Fprintf(out, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(out, "\nExamples:\n")
	fmt.Fprintf(out, "  generate-font charmap.json out/MyHand \"My Hand\"\n")
	fmt.Fprintf(out, "  generate-font charmap.json out/MyHand \"My Hand\" woff2 adjust.json\n")
}

func main() {
	flag.Usage = usage
	flag.CommandLine.SetOutput(os.Stdout)
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.DisableStyling()
	}

	err := run(flag.Args())
	if errors.Is(err, errUsage) {
		pterm.Error.Println(err)
		flag.Usage()
		os.Exit(1)
	} else if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 3 || len(args) > 5 {
		return fmt.Errorf("%w: expected 3 to 5 arguments, got %d", errUsage, len(args))
	}

	fontName, err := stringprep.SASLprep.Prepare(args[2])
	if err != nil || fontName == "" {
		return fmt.Errorf("%w: font name %q: not a valid name", errUsage, args[2])
	}

	now, err := buildTime()
	if err != nil {
		return err
	}

	opt := &glyphfont.Options{
		CharMap:  args[0],
		Output:   args[1],
		FontName: fontName,
		Time:     now,
		Warn: func(msg string) {
			pterm.Warning.Println(msg)
		},
	}
	if len(args) > 3 {
		opt.Format = args[3]
	}
	if len(args) > 4 {
		opt.Adjustments = args[4]
	}
	if !*quiet {
		opt.Info = func(msg string) {
			pterm.Info.Println(msg)
		}
	}

	stop, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	res, err := glyphfont.Generate(opt)
	if stopErr := stop(); err == nil {
		err = stopErr
	}
	if err != nil {
		return err
	}

	if *verbose {
		err = listGlyphs(res)
		if err != nil {
			return err
		}
	}
	if !*quiet {
		pterm.Success.Printf("%d glyphs, %d bytes\n", len(res.Imported), res.Size)
	}
	return nil
}

// buildTime returns the creation time for the font.  The environment
// variable SOURCE_DATE_EPOCH can be used to make the output reproducible.
func buildTime() (time.Time, error) {
	epoch := os.Getenv("SOURCE_DATE_EPOCH")
	if epoch == "" {
		return time.Now(), nil
	}
	sec, err := strconv.ParseInt(epoch, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid SOURCE_DATE_EPOCH %q", epoch)
	}
	return time.Unix(sec, 0).UTC(), nil
}

func listGlyphs(res *glyphfont.Result) error {
	data := pterm.TableData{
		{"char", "code", "glyph", "name"},
	}
	for _, r := range res.Imported {
		data = append(data, []string{
			string(r),
			fmt.Sprintf("U+%04X", r),
			fontbuild.GlyphName(r),
			runenames.Name(r),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
