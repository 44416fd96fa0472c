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
	"math"

	"seehuhn.de/go/geom/vec"
)

// minCornerEdge is the length, in pixels, which both edges next to a
// corner of a traced boundary need for the corner to be kept by smooth.
const minCornerEdge = 2

// smooth replaces the staircases of a traced pixel boundary by the
// midpoints of their edges.  Along a regular staircase these midpoints are
// collinear.  Corners between two edges of length at least minCornerEdge
// are kept, and axis-parallel rectangles are returned unchanged.
func smooth(pts []vec.Vec2) []vec.Vec2 {
	n := len(pts)
	if n <= 4 {
		return pts
	}

	res := make([]vec.Vec2, 0, 2*n)
	for i, a := range pts {
		prev := pts[(i+n-1)%n]
		b := pts[(i+1)%n]
		if dist(prev, a) >= minCornerEdge && dist(a, b) >= minCornerEdge {
			res = append(res, a)
		}
		res = append(res, vec.Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2})
	}
	return res
}

// simplify reduces the number of vertices of a closed polygon, using the
// Ramer-Douglas-Peucker algorithm.  No removed vertex is further than tol
// from the simplified polygon.
func simplify(pts []vec.Vec2, tol float64) []vec.Vec2 {
	n := len(pts)
	if n <= 4 {
		return pts
	}

	// split the loop at the vertex furthest from pts[0]
	far := 0
	var farDist float64
	for i, p := range pts {
		if d := dist(p, pts[0]); d > farDist {
			far, farDist = i, d
		}
	}
	if far == 0 {
		return pts[:1]
	}

	first := rdp(pts[:far+1], tol)
	tail := make([]vec.Vec2, 0, n-far+1)
	tail = append(tail, pts[far:]...)
	tail = append(tail, pts[0])
	second := rdp(tail, tol)

	res := make([]vec.Vec2, 0, len(first)+len(second)-2)
	res = append(res, first[:len(first)-1]...)
	res = append(res, second[:len(second)-1]...)
	return res
}

// rdp simplifies an open polyline.  The end points are always kept.
func rdp(pts []vec.Vec2, tol float64) []vec.Vec2 {
	n := len(pts)
	if n <= 2 {
		return pts
	}

	a, b := pts[0], pts[n-1]
	split := 0
	var maxDist float64
	for i := 1; i < n-1; i++ {
		if d := segmentDist(pts[i], a, b); d > maxDist {
			split, maxDist = i, d
		}
	}
	if maxDist <= tol {
		return []vec.Vec2{a, b}
	}

	left := rdp(pts[:split+1], tol)
	right := rdp(pts[split:], tol)
	res := make([]vec.Vec2, 0, len(left)+len(right)-1)
	res = append(res, left...)
	res = append(res, right[1:]...)
	return res
}

func dist(p, q vec.Vec2) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// segmentDist returns the distance between p and the segment from a to b.
func segmentDist(p, a, b vec.Vec2) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return dist(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = max(0, min(1, t))
	return dist(p, vec.Vec2{X: a.X + t*dx, Y: a.Y + t*dy})
}
