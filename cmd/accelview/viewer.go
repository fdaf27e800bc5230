// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"image"
	"time"

	"github.com/kortschak/nusaccel/cmd/internal/latest"
	"github.com/kortschak/nusaccel/nus"
)

const (
	cardWidth  = 480
	cardHeight = 320
)

// viewer renders the most recent acceleration vector onto a card image.
type viewer struct {
	card *image.RGBA

	arrow   *arrowPlot
	readout *readout
	history *normHistory

	dropped func() uint64
}

func newViewer(fullScale float64, dropped func() uint64) *viewer {
	card := image.NewRGBA(image.Rectangle{Max: image.Point{X: cardWidth, Y: cardHeight}})
	blank(card)
	if dropped == nil {
		dropped = func() uint64 { return 0 }
	}
	return &viewer{
		card: card,
		arrow: newArrowPlot(subDrawImage(card, image.Rectangle{
			Min: image.Point{X: 0, Y: 0},
			Max: image.Point{X: 320, Y: 320},
		}), fullScale),
		readout: newReadout(subDrawImage(card, image.Rectangle{
			Min: image.Point{X: 320, Y: 0},
			Max: image.Point{X: 480, Y: 110},
		})),
		history: newNormHistory(subDrawImage(card, image.Rectangle{
			Min: image.Point{X: 320, Y: 110},
			Max: image.Point{X: 480, Y: 320},
		})),
		dropped: dropped,
	}
}

// draw redraws the card for the acceleration a.
func (v *viewer) draw(a nus.Acc) {
	v.arrow.draw(a)
	v.readout.draw(a, v.dropped())
	v.history.add(a.Norm())
}

// snapshot returns a copy of the current card.
func (v *viewer) snapshot() *image.RGBA {
	img := image.NewRGBA(v.card.Rect)
	copy(img.Pix, v.card.Pix)
	return img
}

// run redraws the card every interval using the latest value held by acc
// and sends a snapshot of each redrawn card to update. If no new value has
// been stored since the previous tick, the previous value is redrawn.
// run returns when ctx is done.
func (v *viewer) run(ctx context.Context, interval time.Duration, acc *latest.Value[nus.Acc], update chan<- image.Image) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	var cur nus.Acc
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}
		select {
		case cur = <-acc.C():
		default:
		}
		v.draw(cur)
		select {
		case update <- v.snapshot():
		case <-ctx.Done():
			return
		}
	}
}
