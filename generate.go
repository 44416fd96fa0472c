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

package glyphfont

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/glyphfont/adjust"
	"seehuhn.de/go/glyphfont/charmap"
	"seehuhn.de/go/glyphfont/fontbuild"
	"seehuhn.de/go/glyphfont/sfntfile"
	"seehuhn.de/go/glyphfont/trace"
)

// MinOutputSize is the smallest file size accepted as a valid font.
const MinOutputSize = 128

// Options describes a font generation run.
type Options struct {
	// CharMap is the path of the JSON character map.
	CharMap string

	// Output is the name of the font file, without extension.
	Output string

	// FontName is the family name of the font.
	FontName string

	// Format is one of "ttf", "otf", "woff" or "woff2".  The empty string
	// selects "ttf".  Unknown formats fall back to "ttf" with a warning.
	Format string

	// Adjustments optionally gives the path of a JSON adjustments file.
	Adjustments string

	// Time is stored as creation time in the font.  If this is zero, the
	// current time is used.
	Time time.Time

	// Trace controls the conversion of images into outlines.
	// If this is nil, default values are used.
	Trace *trace.Options

	// Info and Warn, if set, receive progress messages and warnings.
	Info func(string)
	Warn func(string)
}

// Result summarizes a successful run.
type Result struct {
	// Path is the name of the generated font file.
	Path string

	// Size is the size of the font file in bytes.
	Size int64

	Format sfntfile.Format

	// Imported lists the characters which were included in the font.
	// Skipped lists the characters which were left out because of errors.
	Imported []rune
	Skipped  []rune

	// KernApplied and KernSkipped list the kerning pairs which were
	// included in the font and those which were left out.
	KernApplied []adjust.Pair
	KernSkipped []adjust.Pair

	// Problems lists all non-fatal errors, in the order they occurred.
	Problems []error
}

// generator holds the state of a single run.
type generator struct {
	opt  *Options
	font *fontbuild.Font
	adj  *adjust.Set
	res  *Result
}

// Generate builds a font file from glyph images.
//
// Problems with individual glyphs or kerning pairs are reported through
// opt.Warn and listed in the result; the run then continues without the
// affected glyph or pair.  Errors reading the input files or writing the
// output are returned as [*InputError] or [*OutputError].
func Generate(opt *Options) (*Result, error) {
	now := opt.Time
	if now.IsZero() {
		now = time.Now()
	}
	g := &generator{
		opt:  opt,
		font: fontbuild.New(opt.FontName, now),
		res:  &Result{},
	}

	mappings, warnings, err := charmap.Load(opt.CharMap)
	if err != nil {
		return nil, &InputError{Path: opt.CharMap, Err: err}
	}
	for _, msg := range warnings {
		g.warn(msg)
	}

	g.adj = adjust.Neutral()
	if opt.Adjustments != "" {
		g.adj, err = adjust.Load(opt.Adjustments)
		if err != nil {
			return nil, &InputError{Path: opt.Adjustments, Err: err}
		}
	}

	for _, m := range mappings {
		g.createGlyph(m)
	}
	g.applyAdjustments()
	g.applyKerning()
	g.res.Imported = g.font.Runes()

	if !g.font.Contains(' ') {
		space := g.font.CreateChar(' ')
		space.Width = adjust.SpaceWidth
	}
	g.font.AutoHint()

	format := sfntfile.TTF
	if opt.Format != "" {
		format, err = sfntfile.ParseFormat(opt.Format)
		if err != nil {
			g.warn(fmt.Sprintf("Unsupported format: %s, using ttf instead", opt.Format))
			format = sfntfile.TTF
		}
	}
	g.res.Format = format
	g.res.Path = opt.Output + format.Ext()

	err = g.write()
	if err != nil {
		return nil, &OutputError{Path: g.res.Path, Err: err}
	}
	g.res.Size, err = Verify(g.res.Path, g.font.NumGlyphs())
	if err != nil {
		return nil, err
	}

	g.info("Generated font at " + g.res.Path)
	return g.res, nil
}

// createGlyph traces the image for m and stores the outline in the font.
func (g *generator) createGlyph(m charmap.Mapping) {
	if _, err := os.Stat(m.ImagePath); err != nil {
		g.skip(&GlyphError{
			Char: m.Char,
			Path: m.ImagePath,
			Op:   "import",
			Err:  fmt.Errorf("%w: %w", ErrImageNotFound, err),
		})
		return
	}

	outline, err := trace.File(m.ImagePath, g.opt.Trace)
	if err == nil && outline.Height <= 0 {
		err = trace.ErrEmptyImage
	}
	if err != nil {
		g.font.Remove(m.Char)
		g.skip(&GlyphError{Char: m.Char, Path: m.ImagePath, Op: "import", Err: err})
		return
	}

	// The image height spans the em box, from descender to ascender.
	f := g.font
	s := float64(f.Ascent-f.Descent) / float64(outline.Height)
	M := matrix.Matrix{s, 0, 0, s, 0, float64(f.Descent)}

	glyph := f.CreateChar(m.Char)
	glyph.Width = adjust.DefaultWidth
	glyph.Clear()
	glyph.Import(outline.Contours, M)
	glyph.Round()

	g.info(fmt.Sprintf("Successfully imported '%c' from %s", m.Char, m.ImagePath))
}

// applyAdjustments applies the spacing, baseline, position and width
// settings to every glyph.
func (g *generator) applyAdjustments() {
	width := g.adj.AdvanceWidth()
	scale, needScale := g.adj.WidthScale()
	for _, r := range g.font.Runes() {
		glyph := g.font.Glyph(r)
		p := g.adj.Placement(r)
		glyph.Translate(0, p.Dy)
		if p.PerChar && p.Dx != 0 {
			glyph.SetLeftSideBearing(glyph.LeftSideBearing() + p.Dx)
		}
		glyph.Width = width
		if needScale {
			glyph.ScaleX(scale)
		}
		glyph.Round()

		err := glyph.Check()
		if err != nil {
			g.font.Remove(r)
			g.skip(&GlyphError{Char: r, Op: "adjust", Err: err})
		}
	}
}

// applyKerning adds the kerning pairs for which both glyphs exist.
func (g *generator) applyKerning() {
	pairs, errs := g.adj.Kerning()
	for _, err := range errs {
		g.res.Problems = append(g.res.Problems, err)
		g.warn(err.Error())
	}
	for _, p := range pairs {
		err := g.font.SetKern(p.Left, p.Right, p.Value)
		if err != nil {
			g.res.KernSkipped = append(g.res.KernSkipped, p)
			g.res.Problems = append(g.res.Problems, err)
			g.warn(fmt.Sprintf("Skipping kerning pair '%c%c': %v", p.Left, p.Right, err))
			continue
		}
		g.res.KernApplied = append(g.res.KernApplied, p)
	}
}

// write stores the font in a temporary file next to the output file and
// then moves it into place.
func (g *generator) write() error {
	path := g.res.Path
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	_, err = g.font.Encode(tmp, g.res.Format)
	if err != nil {
		tmp.Close()
		return err
	}
	err = tmp.Close()
	if err != nil {
		return err
	}
	err = os.Chmod(tmp.Name(), 0o644)
	if err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Verify checks that the file at path is a font with numGlyphs glyphs,
// and returns the file size.
func Verify(path string, numGlyphs int) (int64, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, &OutputError{Path: path, Err: ErrEmptyOutput}
	} else if err != nil {
		return 0, &OutputError{Path: path, Err: err}
	}
	if len(data) < MinOutputSize {
		return 0, &OutputError{Path: path, Err: ErrEmptyOutput}
	}

	plain, err := sfntfile.Unwrap(data)
	if err != nil {
		return 0, &OutputError{Path: path, Err: err}
	}
	info, err := sfnt.Read(bytes.NewReader(plain))
	if err != nil {
		return 0, &OutputError{Path: path, Err: err}
	}
	if n := info.NumGlyphs(); n != numGlyphs {
		return 0, &OutputError{
			Path: path,
			Err:  fmt.Errorf("expected %d glyphs, found %d", numGlyphs, n),
		}
	}
	return int64(len(data)), nil
}

// skip records a glyph which is left out of the font.
func (g *generator) skip(err *GlyphError) {
	g.res.Skipped = append(g.res.Skipped, err.Char)
	g.res.Problems = append(g.res.Problems, err)
	g.warn(err.Error())
}

func (g *generator) info(msg string) {
	if g.opt.Info != nil {
		g.opt.Info(msg)
	}
}

func (g *generator) warn(msg string) {
	if g.opt.Warn != nil {
		g.opt.Warn(msg)
	}
}
