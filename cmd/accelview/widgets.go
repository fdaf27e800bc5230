// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image/color"
	"image/draw"
	"strconv"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"

	"github.com/kortschak/nusaccel/cmd/internal/ring"
	"github.com/kortschak/nusaccel/nus"
)

var (
	black     = color.RGBA{A: 0xff}
	gridColor = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}

	axisColors = [3]color.RGBA{
		{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, // x
		{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, // y
		{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, // z
	}
)

// Camera angles match the default matplotlib 3D view.
const (
	azimuth   = -60 // degrees
	elevation = 30  // degrees
)

// maxReach is the longest arrow drawn, as a multiple of the full scale.
const maxReach = 1.5

type arrowPlot struct {
	img  draw.Image
	proj projection
	full float64
}

func newArrowPlot(img draw.Image, fullScale float64) *arrowPlot {
	return &arrowPlot{
		img:  img,
		proj: newProjection(azimuth, elevation, fullScale, img.Bounds(), 16),
		full: fullScale,
	}
}

func (p *arrowPlot) draw(a nus.Acc) {
	blank(p.img)

	ox, oy := p.proj.point(0, 0, 0)
	font := &freesans.Regular9pt7b
	for i, name := range [3]string{"x", "y", "z"} {
		var axis [3]float64
		axis[i] = p.full
		nx, ny := p.proj.point(-axis[0], -axis[1], -axis[2])
		px, py := p.proj.point(axis[0], axis[1], axis[2])
		line(p.img, round(nx), round(ny), round(ox), round(oy), gridColor)
		line(p.img, round(ox), round(oy), round(px), round(py), axisColors[i])
		tinyfont.WriteLine(
			displayShim{p.img},
			font,
			int16(round(px)+2), int16(round(py)), name,
			axisColors[i],
		)
	}

	if n := a.Norm(); n > maxReach*p.full {
		f := maxReach * p.full / n
		a = nus.Acc{X: a.X * f, Y: a.Y * f, Z: a.Z * f}
	}
	tx, ty := p.proj.point(a.X, a.Y, a.Z)
	arrow(p.img, ox, oy, tx, ty, 10, black)
}

type readout struct {
	img draw.Image
}

func newReadout(img draw.Image) *readout {
	return &readout{img: img}
}

func (r *readout) draw(a nus.Acc, dropped uint64) {
	blank(r.img)

	font := &freesans.Regular9pt7b
	lines := [...]struct {
		text string
		c    color.RGBA
	}{
		{text: "X  " + formatAcc(a.X), c: axisColors[0]},
		{text: "Y  " + formatAcc(a.Y), c: axisColors[1]},
		{text: "Z  " + formatAcc(a.Z), c: axisColors[2]},
		{text: "|a|  " + formatAcc(a.Norm()), c: black},
		{text: "dropped  " + strconv.FormatUint(dropped, 10), c: black},
	}
	for i, l := range lines {
		tinyfont.WriteLine(
			displayShim{r.img},
			font,
			4, int16((i+1)*int(font.YAdvance)), l.text,
			l.c,
		)
	}
}

func formatAcc(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

type normHistory struct {
	ring *ring.Buffer[float64]
	img  draw.Image
	buf  []float64
}

func newNormHistory(img draw.Image) *normHistory {
	return &normHistory{
		ring: ring.NewBuffer[float64](img.Bounds().Dx()),
		img:  img,
		buf:  make([]float64, img.Bounds().Dx()),
	}
}

func (h *normHistory) add(v float64) {
	h.ring.Write([]float64{v})
	h.plot()
}

func (h *normHistory) plot() {
	blank(h.img)

	n := h.ring.CopyTo(h.buf)
	if n < 2 {
		return
	}
	trace := h.buf[:n]
	for i, v := range trace {
		trace[i] = -v
	}
	min := trace[0]
	max := min
	for _, v := range trace[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	const minRange = 1 // m/s²
	height := h.img.Bounds().Dy() - 1
	for i, v := range trace[1:] {
		line(h.img, i, scale(trace[i], min, max, minRange, height), i+1, scale(v, min, max, minRange, height), black)
	}
}
