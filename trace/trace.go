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

// Package trace converts raster images of glyphs into polygon outlines.
//
// The tracer follows the boundaries between ink and background pixels.
// Each boundary becomes a closed polygon, which is then smoothed and
// simplified.  The
// resulting contours use the PostScript orientation: outer boundaries run
// counter-clockwise and holes run clockwise, in a coordinate system where y
// points up.
package trace

import (
	"image"
	"math/bits"

	"seehuhn.de/go/geom/vec"
)

// Options control the conversion from images to outlines.
// Zero fields are replaced by their default values.
type Options struct {
	// Threshold is the gray level below which a pixel counts as ink.
	// The default is 128.
	Threshold uint8

	// MaxSize is the maximal width and height of the traced bitmap, in
	// pixels.  Larger images are scaled down.  The default is 1024.
	MaxSize int

	// Tolerance is the maximal distance, in pixels, by which a simplified
	// contour may deviate from the smoothed pixel boundary.
	// The default is 0.75.
	Tolerance float64

	// MinArea is the area, in square pixels, below which contours are
	// dropped.  The default is 2.
	MinArea float64
}

func (opt *Options) withDefaults() *Options {
	res := Options{}
	if opt != nil {
		res = *opt
	}
	if res.Threshold == 0 {
		res.Threshold = 128
	}
	if res.MaxSize <= 0 {
		res.MaxSize = 1024
	}
	if res.Tolerance <= 0 {
		res.Tolerance = 0.75
	}
	if res.MinArea <= 0 {
		res.MinArea = 2
	}
	return &res
}

// Outline is the result of tracing an image.
//
// Coordinates are in pixels of the traced bitmap.  The origin is the
// bottom-left corner of the image and y points up.
type Outline struct {
	Contours      [][]vec.Vec2
	Width, Height int
}

// File loads and traces an image file.
func File(fname string, opt *Options) (*Outline, error) {
	img, err := Load(fname)
	if err != nil {
		return nil, err
	}
	return Image(img, opt)
}

// Image traces an image.
func Image(img image.Image, opt *Options) (*Outline, error) {
	opt = opt.withDefaults()
	bm, err := NewBitmap(img, opt)
	if err != nil {
		return nil, err
	}
	return bm.Trace(opt), nil
}

// directions, with y pointing down
const (
	east = iota
	south
	west
	north
)

var (
	stepX = [4]int{1, 0, -1, 0}
	stepY = [4]int{0, 1, 0, -1}
)

// Trace finds the boundaries of the ink regions in b.
func (b *Bitmap) Trace(opt *Options) *Outline {
	opt = opt.withDefaults()

	// Every boundary between an ink pixel and a background pixel is a unit
	// edge between two lattice points.  Edges are oriented so that the ink
	// is on the right-hand side.  out[v] records the directions of the
	// unused edges leaving lattice point v.
	cols := b.Width + 1
	out := make([]uint8, cols*(b.Height+1))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if !b.At(x, y) {
				continue
			}
			if !b.At(x, y-1) {
				out[y*cols+x] |= 1 << east
			}
			if !b.At(x+1, y) {
				out[y*cols+x+1] |= 1 << south
			}
			if !b.At(x, y+1) {
				out[(y+1)*cols+x+1] |= 1 << west
			}
			if !b.At(x-1, y) {
				out[(y+1)*cols+x] |= 1 << north
			}
		}
	}

	res := &Outline{
		Width:  b.Width,
		Height: b.Height,
	}
	h := float64(b.Height)

	addLoop := func(start int) {
		corners := followLoop(out, cols, start)

		// Convert to y-up coordinates.  Reversing the order restores
		// counter-clockwise orientation for the outer boundaries.
		n := len(corners)
		pts := make([]vec.Vec2, n)
		for i, v := range corners {
			pts[n-1-i] = vec.Vec2{
				X: float64(v % cols),
				Y: h - float64(v/cols),
			}
		}

		pts = simplify(smooth(pts), opt.Tolerance)
		if len(pts) < 3 {
			return
		}
		if a := area(pts); a < opt.MinArea && -a < opt.MinArea {
			return
		}
		res.Contours = append(res.Contours, pts)
	}

	// Starting at a lattice point with a single unused edge avoids
	// joining two touching loops into one.
	for v := range out {
		if out[v] != 0 && bits.OnesCount8(out[v]) == 1 {
			addLoop(v)
		}
	}
	for v := range out {
		for out[v] != 0 {
			addLoop(v)
		}
	}

	return res
}

// followLoop walks the closed loop starting with the lowest unused edge at
// lattice point start.  The edges are marked as used.  The return value
// lists the lattice points where the direction changes.
func followLoop(out []uint8, cols, start int) []int {
	startDir := bits.TrailingZeros8(out[start])

	var corners []int
	cur, dir := start, startDir
	for {
		out[cur] &^= 1 << dir
		cur += stepY[dir]*cols + stepX[dir]

		// Turning right keeps diagonally touching ink pixels apart.
		next := -1
		closed := false
		for _, d := range [3]int{(dir + 1) % 4, dir, (dir + 3) % 4} {
			if cur == start && d == startDir {
				closed = true
				break
			}
			if out[cur]&(1<<d) != 0 {
				next = d
				break
			}
		}
		if closed {
			if dir != startDir {
				corners = append(corners, start)
			}
			break
		}
		if next < 0 {
			// unreachable for boundaries of a bitmap
			break
		}
		if next != dir {
			corners = append(corners, cur)
		}
		dir = next
	}
	return corners
}

// area returns the signed area of a closed polygon.  The area is positive
// for counter-clockwise polygons in a y-up coordinate system.
func area(pts []vec.Vec2) float64 {
	var sum float64
	n := len(pts)
	for i, p := range pts {
		q := pts[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}
