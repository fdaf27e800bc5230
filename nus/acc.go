// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nus

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrNoMatch is returned when a message does not hold an
// accelerometer reading.
var ErrNoMatch = errors.New("no accelerometer reading")

var accPattern = regexp.MustCompile(`X: ([0-9.-]+), Y: ([0-9.-]+), Z: ([0-9.-]+)`)

// Acc is an acceleration measurement. The firmware reports values
// in m/s².
type Acc struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the acceleration vector.
func (m Acc) Norm() float64 {
	return math.Hypot(math.Hypot(m.X, m.Y), m.Z)
}

func (m Acc) String() string {
	return fmt.Sprintf("X: %g, Y: %g, Z: %g", m.X, m.Y, m.Z)
}

// UnmarshalText parses the first "X: <x>, Y: <y>, Z: <z>" reading in
// text. Any text before or after the reading is ignored. If no reading
// is present, the returned error is ErrNoMatch and m is not altered.
func (m *Acc) UnmarshalText(text []byte) error {
	sub := accPattern.FindSubmatch(text)
	if sub == nil {
		return ErrNoMatch
	}
	var v [3]float64
	for i, f := range sub[1:] {
		var err error
		v[i], err = strconv.ParseFloat(string(f), 64)
		if err != nil {
			return fmt.Errorf("%w: invalid %c value: %q", ErrNoMatch, "XYZ"[i], f)
		}
	}
	*m = Acc{X: v[0], Y: v[1], Z: v[2]}
	return nil
}
