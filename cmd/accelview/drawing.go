// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

type subImager interface {
	draw.Image
	SubImage(image.Rectangle) image.Image
}

func subDrawImage(img subImager, rect image.Rectangle) draw.Image {
	return drawOffset{
		Image:  img.SubImage(rect).(draw.Image),
		offset: rect.Min,
	}
}

// drawOffset translates a sub-image so that its origin is at (0, 0).
type drawOffset struct {
	draw.Image
	offset image.Point
}

func (i drawOffset) Bounds() image.Rectangle {
	return i.Image.Bounds().Sub(i.offset)
}

func (i drawOffset) Set(x, y int, c color.Color) {
	i.Image.Set(x+i.offset.X, y+i.offset.Y, c)
}

func (i drawOffset) At(x, y int) color.Color {
	return i.Image.At(x+i.offset.X, y+i.offset.Y)
}

type number interface{ int32 | uint16 | float64 }

func scale[T number](v, min, max, minRange T, height int) int {
	v -= min
	spread := max - min
	var offset T = 0
	if spread < minRange {
		offset = (minRange - spread) / 2
		spread = minRange
	}
	return int(float64(v+offset) / float64(spread) * float64(height))
}

func line(img draw.Image, x0, y0, x1, y1 int, c color.Color) {
	switch {
	case x0 == x1:
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		for ; y0 <= y1; y0++ {
			img.Set(x0, y0, c)
		}
	case y0 == y1:
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		for ; x0 <= x1; x0++ {
			img.Set(x0, y0, c)
		}
	default:
		bresenham(img, x0, y0, x1, y1, c)
	}
}

func bresenham(img draw.Image, x0, y0, x1, y1 int, c color.Color) {
	dx, sx := absSign(x1 - x0)
	dy, sy := absSign(y1 - y0)
	dy = -dy
	err := dx + dy
	for {
		img.Set(x0, y0, c)
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				return
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				return
			}
			err += dx
			y0 += sy
		}
	}
}

func absSign(a int) (abs, sign int) {
	if a < 0 {
		return -a, -1
	}
	return a, 1
}

func blank(img draw.Image) {
	b := img.Bounds()
	dx := b.Dx()
	dy := b.Dy()
	for x := range dx {
		for y := range dy {
			img.Set(x, y, color.White)
		}
	}
}

// dot draws a filled square of side 2r+1 centred on (x, y).
func dot(img draw.Image, x, y, r int, c color.Color) {
	for i := -r; i <= r; i++ {
		for j := -r; j <= r; j++ {
			img.Set(x+i, y+j, c)
		}
	}
}

// projection maps 3D points onto a 2D image plane as seen by a camera
// at the given azimuth and elevation, looking at the origin.
type projection struct {
	right, up [3]float64
	scale     float64 // pixels per unit
	origin    image.Point
}

// newProjection returns a projection centred in bounds with fullScale
// units mapping to the largest radius that fits within bounds less
// margin pixels. Angles are in degrees.
func newProjection(azimuth, elevation, fullScale float64, bounds image.Rectangle, margin int) projection {
	az := azimuth * math.Pi / 180
	el := elevation * math.Pi / 180
	radius := min(bounds.Dx(), bounds.Dy())/2 - margin
	return projection{
		right:  [3]float64{-math.Sin(az), math.Cos(az), 0},
		up:     [3]float64{-math.Sin(el) * math.Cos(az), -math.Sin(el) * math.Sin(az), math.Cos(el)},
		scale:  float64(max(radius, 1)) / fullScale,
		origin: image.Point{X: bounds.Min.X + bounds.Dx()/2, Y: bounds.Min.Y + bounds.Dy()/2},
	}
}

// point returns the image coordinates of (x, y, z) as floating point
// values.
func (p projection) point(x, y, z float64) (px, py float64) {
	sx := x*p.right[0] + y*p.right[1] + z*p.right[2]
	sy := x*p.up[0] + y*p.up[1] + z*p.up[2]
	return float64(p.origin.X) + sx*p.scale, float64(p.origin.Y) - sy*p.scale
}

// arrow draws a line from (x0, y0) to (x1, y1) with a head at (x1, y1).
// A zero length arrow is drawn as a dot.
func arrow(img draw.Image, x0, y0, x1, y1 float64, headLen float64, c color.Color) {
	dx := x1 - x0
	dy := y1 - y0
	l := math.Hypot(dx, dy)
	if l < 1 {
		dot(img, round(x0), round(y0), 1, c)
		return
	}
	line(img, round(x0), round(y0), round(x1), round(y1), c)

	headLen = min(headLen, l/3)
	ux, uy := -dx/l, -dy/l
	const angle = 25 * math.Pi / 180
	sin, cos := math.Sincos(angle)
	for _, s := range []float64{sin, -sin} {
		hx := x1 + headLen*(ux*cos-uy*s)
		hy := y1 + headLen*(ux*s+uy*cos)
		line(img, round(x1), round(y1), round(hx), round(hy), c)
	}
}

func round(v float64) int {
	return int(math.Round(v))
}

type displayShim struct {
	// ¯\_(ツ)_/¯
	img draw.Image
}

func (d displayShim) SetPixel(x, y int16, c color.RGBA) {
	d.img.Set(int(x), int(y), c)
}

func (d displayShim) Size() (x, y int16) {
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d displayShim) Display() error { return nil }
