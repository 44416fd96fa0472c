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
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Bitmap is a black and white image.  Pixel (x, y) is at index y*Width+x,
// with y pointing down.
type Bitmap struct {
	Width, Height int
	Ink           []bool
}

// At reports whether the pixel at (x, y) is ink.
// Pixels outside the bitmap are never ink.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.Ink[y*b.Width+x]
}

// Load reads an image file.  Supported formats are PNG, JPEG, GIF, BMP,
// TIFF and WebP.
func Load(fname string) (image.Image, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	img, format, err := image.Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", fname, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%s image %s: %w", format, fname, ErrEmptyImage)
	}
	return img, nil
}

// NewBitmap converts img into a bitmap.
//
// Transparent parts of the image are treated as white.  Images larger than
// opt.MaxSize pixels in either direction are scaled down, keeping the
// aspect ratio.  A pixel is ink if its gray level is below opt.Threshold.
func NewBitmap(img image.Image, opt *Options) (*Bitmap, error) {
	opt = opt.withDefaults()

	src := img.Bounds()
	w, h := src.Dx(), src.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}
	if long := max(w, h); long > opt.MaxSize {
		w = max(1, (w*opt.MaxSize+long/2)/long)
		h = max(1, (h*opt.MaxSize+long/2)/long)
	}

	gray := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(gray, gray.Bounds(), image.White, image.Point{}, draw.Src)
	if w == src.Dx() && h == src.Dy() {
		draw.Draw(gray, gray.Bounds(), img, src.Min, draw.Over)
	} else {
		draw.ApproxBiLinear.Scale(gray, gray.Bounds(), img, src, draw.Over, nil)
	}

	res := &Bitmap{
		Width:  w,
		Height: h,
		Ink:    make([]bool, w*h),
	}
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for x, v := range row {
			res.Ink[y*w+x] = v < opt.Threshold
		}
	}
	return res, nil
}

// ErrEmptyImage is returned for images without pixels.
var ErrEmptyImage = errors.New("empty image")
