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

package trace

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/vec"
)

// whiteImage returns a white gray-scale image of the given size.
func whiteImage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func fillRect(img *image.Gray, r image.Rectangle, c uint8) {
	draw.Draw(img, r, image.NewUniform(color.Gray{Y: c}), image.Point{}, draw.Src)
}

func bbox(pts []vec.Vec2) (llx, lly, urx, ury float64) {
	llx, lly = math.Inf(1), math.Inf(1)
	urx, ury = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		llx = min(llx, p.X)
		lly = min(lly, p.Y)
		urx = max(urx, p.X)
		ury = max(ury, p.Y)
	}
	return
}

func TestSquareWithHole(t *testing.T) {
	img := whiteImage(10, 10)
	fillRect(img, image.Rect(2, 2, 8, 8), 0)
	fillRect(img, image.Rect(4, 4, 6, 6), 255)

	out, err := Image(img, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Width != 10 || out.Height != 10 {
		t.Errorf("got size %dx%d, want 10x10", out.Width, out.Height)
	}
	if len(out.Contours) != 2 {
		t.Fatalf("got %d contours, want 2", len(out.Contours))
	}

	var areas []float64
	for _, c := range out.Contours {
		if len(c) != 4 {
			t.Errorf("got %d corners, want 4: %v", len(c), c)
		}
		areas = append(areas, area(c))
	}
	slices.Sort(areas)
	if d := cmp.Diff([]float64{-4, 36}, areas); d != "" {
		t.Errorf("unexpected areas (-want +got):\n%s", d)
	}

	for _, c := range out.Contours {
		if area(c) < 0 {
			continue
		}
		llx, lly, urx, ury := bbox(c)
		got := []float64{llx, lly, urx, ury}
		if d := cmp.Diff([]float64{2, 2, 8, 8}, got); d != "" {
			t.Errorf("unexpected outer box (-want +got):\n%s", d)
		}
	}
}

func TestYAxisPointsUp(t *testing.T) {
	// ink in the top rows of the image must end up with large y values
	img := whiteImage(8, 20)
	fillRect(img, image.Rect(0, 0, 8, 5), 0)

	out, err := Image(img, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(out.Contours))
	}
	_, lly, _, ury := bbox(out.Contours[0])
	if lly != 15 || ury != 20 {
		t.Errorf("got y range [%g, %g], want [15, 20]", lly, ury)
	}
}

func TestTriangle(t *testing.T) {
	const size = 100
	img := whiteImage(size, size)
	z := vector.NewRasterizer(size, size)
	z.MoveTo(10, 90)
	z.LineTo(50, 10)
	z.LineTo(90, 90)
	z.ClosePath()
	z.Draw(img, img.Bounds(), image.Black, image.Point{})

	out, err := Image(img, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(out.Contours))
	}
	c := out.Contours[0]
	a := area(c)
	if math.Abs(a-3200) > 100 {
		t.Errorf("got area %g, want approximately 3200", a)
	}
	if len(c) > 20 {
		t.Errorf("simplified triangle still has %d vertices", len(c))
	}
}

func TestDiagonalPixels(t *testing.T) {
	bm := &Bitmap{
		Width:  2,
		Height: 2,
		Ink:    []bool{true, false, false, true},
	}
	out := bm.Trace(&Options{MinArea: 0.5})
	if len(out.Contours) != 2 {
		t.Fatalf("got %d contours, want 2", len(out.Contours))
	}
	for _, c := range out.Contours {
		if a := area(c); a != 1 {
			t.Errorf("got area %g, want 1", a)
		}
	}
}

func TestSpeckles(t *testing.T) {
	img := whiteImage(20, 20)
	fillRect(img, image.Rect(3, 3, 4, 4), 0)
	fillRect(img, image.Rect(10, 10, 15, 15), 0)

	out, err := Image(img, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Contours) != 1 {
		t.Errorf("got %d contours, want 1", len(out.Contours))
	}
}

func TestTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	out, err := Image(img, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Contours) != 0 {
		t.Errorf("transparent image gave %d contours", len(out.Contours))
	}

	// opaque black with alpha is ink
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	out, err = Image(img, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Contours) != 1 || area(out.Contours[0]) != 256 {
		t.Errorf("opaque image gave %v", out.Contours)
	}
}

func TestThreshold(t *testing.T) {
	img := whiteImage(10, 10)
	fillRect(img, image.Rect(0, 0, 10, 10), 100)

	out, err := Image(img, &Options{Threshold: 50})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Contours) != 0 {
		t.Errorf("got %d contours, want 0", len(out.Contours))
	}
	out, err = Image(img, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Contours) != 1 {
		t.Errorf("got %d contours, want 1", len(out.Contours))
	}
}

func TestDownscale(t *testing.T) {
	img := whiteImage(400, 200)
	fillRect(img, image.Rect(100, 48, 300, 152), 0)

	out, err := Image(img, &Options{MaxSize: 100})
	if err != nil {
		t.Fatal(err)
	}
	if out.Width != 100 || out.Height != 50 {
		t.Errorf("got size %dx%d, want 100x50", out.Width, out.Height)
	}
	if len(out.Contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(out.Contours))
	}
	if a := area(out.Contours[0]); math.Abs(a-1300) > 60 {
		t.Errorf("got area %g, want approximately 1300", a)
	}
}

func TestFile(t *testing.T) {
	img := whiteImage(12, 12)
	fillRect(img, image.Rect(2, 2, 10, 10), 0)

	fname := filepath.Join(t.TempDir(), "glyph.png")
	fd, err := os.Create(fname)
	if err != nil {
		t.Fatal(err)
	}
	err = png.Encode(fd, img)
	if err != nil {
		t.Fatal(err)
	}
	err = fd.Close()
	if err != nil {
		t.Fatal(err)
	}

	out, err := File(fname, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Contours) != 1 || area(out.Contours[0]) != 64 {
		t.Errorf("unexpected outline %v", out.Contours)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.png"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want os.ErrNotExist", err)
	}

	junk := filepath.Join(dir, "junk.png")
	err = os.WriteFile(junk, []byte("this is not an image"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Load(junk)
	if err == nil {
		t.Error("junk file decoded without error")
	}
}

func TestSimplifyStraightLine(t *testing.T) {
	var pts []vec.Vec2
	for x := 0; x <= 10; x++ {
		pts = append(pts, vec.Vec2{X: float64(x), Y: 0})
	}
	for x := 10; x >= 0; x-- {
		pts = append(pts, vec.Vec2{X: float64(x), Y: 5})
	}
	res := simplify(pts, 0.5)
	if len(res) != 4 {
		t.Errorf("got %d vertices, want 4: %v", len(res), res)
	}
	if a := area(res); a != 50 {
		t.Errorf("got area %g, want 50", a)
	}
}

func TestSmoothStaircase(t *testing.T) {
	// a slope 2 staircase with a long base
	pts := []vec.Vec2{{X: 0, Y: 0}, {X: 20, Y: 0}}
	x, y := 20.0, 0.0
	for range 10 {
		y += 2
		pts = append(pts, vec.Vec2{X: x, Y: y})
		x--
		pts = append(pts, vec.Vec2{X: x, Y: y})
	}
	pts = append(pts, vec.Vec2{X: 0, Y: y})

	res := simplify(smooth(pts), 0.75)
	if len(res) > 6 {
		t.Errorf("smoothed staircase has %d vertices: %v", len(res), res)
	}
	if a := area(res); math.Abs(a-area(pts)) > 10 {
		t.Errorf("got area %g, want approximately %g", a, area(pts))
	}

	// the corners of the base are kept
	for _, want := range []vec.Vec2{{X: 0, Y: 0}, {X: 20, Y: 0}} {
		if !slices.Contains(res, want) {
			t.Errorf("corner %v lost", want)
		}
	}
}

func TestSmoothRectangles(t *testing.T) {
	rect := []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	if d := cmp.Diff(rect, smooth(rect)); d != "" {
		t.Error(d)
	}

	// L-shape with long edges
	ell := []vec.Vec2{
		{X: 0, Y: 0}, {X: 6, Y: 0}, {X: 6, Y: 2},
		{X: 2, Y: 2}, {X: 2, Y: 6}, {X: 0, Y: 6},
	}
	res := simplify(smooth(ell), 0.5)
	if len(res) != 6 || area(res) != area(ell) {
		t.Errorf("L-shape changed to %v", res)
	}
}
