// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tinygo.org/x/bluetooth"

	"github.com/kortschak/nusaccel/internal/forkbeard"
)

// Sample is an accelerometer reading and the log line that carried it.
type Sample struct {
	Acc
	Line LogLine
}

// Listener implements NUS log notification listening.
type Listener struct {
	dev  *bluetooth.Device
	srv  bluetooth.DeviceService
	char bluetooth.DeviceCharacteristic

	handle func(Sample, error)

	closeOnce sync.Once
	closeErr  error
}

// NewListener returns a new Listener for the provided Bluetooth device,
// subscribed to notifications from the charID characteristic of the srvID
// service. Use Service and TXCharacteristic for a standard NUS device.
//
// The h function is called for each line received. Lines that do not hold
// an accelerometer reading are passed to h with an error wrapping
// ErrNoMatch and a zero Sample.
func NewListener(dev *bluetooth.Device, srvID, charID bluetooth.UUID, h func(Sample, error)) (*Listener, error) {
	srv, err := forkbeard.Service(dev, srvID)
	if err != nil {
		return nil, fmt.Errorf("failed to get nus service: %w", err)
	}
	char, err := forkbeard.Characteristic(srv, charID)
	if err != nil {
		return nil, fmt.Errorf("failed to get nus tx characteristic: %w", err)
	}
	l := &Listener{
		dev:    dev,
		srv:    srv,
		char:   char,
		handle: h,
	}
	err = char.EnableNotifications(l.dispatch)
	if err != nil {
		return nil, fmt.Errorf("failed to enable notifications: %w", err)
	}
	return l, nil
}

func (l *Listener) dispatch(buf []byte) {
	if len(buf) == 0 {
		return
	}
	for _, text := range splitLines(buf) {
		var acc Acc
		err := acc.UnmarshalText(text)
		if err != nil {
			if l.handle != nil {
				l.handle(Sample{}, fmt.Errorf("%w: %q", err, text))
			}
			continue
		}
		if l.handle != nil {
			l.handle(Sample{Acc: acc, Line: ParseLogLine(text)}, nil)
		}
	}
}

// Service returns the UUID of the subscribed service.
func (l *Listener) Service() bluetooth.UUID {
	return l.srv.UUID()
}

// Characteristic returns the UUID of the subscribed characteristic.
func (l *Listener) Characteristic() bluetooth.UUID {
	return l.char.UUID()
}

// Run holds the subscription open until ctx is done and then closes the
// Listener.
func (l *Listener) Run(ctx context.Context) error {
	<-ctx.Done()
	return l.Close()
}

// Close disables notifications and disconnects the device. It is safe
// to call Close more than once.
func (l *Listener) Close() error {
	l.closeOnce.Do(func() {
		l.closeErr = errors.Join(l.char.EnableNotifications(nil), l.dev.Disconnect())
	})
	return l.closeErr
}
