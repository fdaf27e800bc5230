// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package forkbeard provides helper functions for finding and interacting
// with Bluetooth devices.
package forkbeard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"tinygo.org/x/bluetooth"
)

var (
	// ErrNotFound is returned when a scan ends without finding
	// the requested device.
	ErrNotFound = errors.New("device not found")

	// ErrServiceNotFound is returned when a connected device does
	// not expose the requested service.
	ErrServiceNotFound = errors.New("service not found")

	// ErrCharacteristicNotFound is returned when a service does not
	// expose the requested characteristic.
	ErrCharacteristicNotFound = errors.New("characteristic not found")
)

// Scanner is the scanning part of a Bluetooth adapter.
type Scanner interface {
	Scan(func(*bluetooth.Adapter, bluetooth.ScanResult)) error
	StopScan() error
}

// FindByName scans for a device advertising the given local name and
// returns the first matching scan result. The scan is stopped when a
// device is found or ctx is done. If ctx is done before a device is
// found, the returned error wraps ErrNotFound and the context's error.
//
// If the scan cannot be stopped when ctx is done, FindByName returns
// without waiting for it. The scan is then stopped at the next
// advertisement it receives.
func FindByName(ctx context.Context, adapter Scanner, name string) (bluetooth.ScanResult, error) {
	found := make(chan bluetooth.ScanResult, 1)
	scanErr := make(chan error, 1)
	match := nameMatcher(name)

	// StopScan is not safe for concurrent use.
	var stopMu sync.Mutex
	stop := func() error {
		stopMu.Lock()
		defer stopMu.Unlock()
		return adapter.StopScan()
	}

	go func() {
		scanErr <- adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			if ctx.Err() != nil {
				stop()
				return
			}
			if !match(result.LocalName()) {
				return
			}
			select {
			case found <- result:
				stop()
			default:
			}
		})
	}()

	select {
	case result := <-found:
		return result, nil
	case err := <-scanErr:
		// Scan may return after a match was posted.
		select {
		case result := <-found:
			return result, nil
		default:
		}
		if err != nil {
			return bluetooth.ScanResult{}, fmt.Errorf("failed to scan for %q: %w", name, err)
		}
		return bluetooth.ScanResult{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	case <-ctx.Done():
		if stop() == nil {
			<-scanErr
		}
		select {
		case result := <-found:
			return result, nil
		default:
		}
		return bluetooth.ScanResult{}, fmt.Errorf("%w: %q: %w", ErrNotFound, name, ctx.Err())
	}
}

// nameMatcher returns a function reporting whether an advertised local
// name is the wanted name. Unnamed advertisements never match.
func nameMatcher(name string) func(string) bool {
	return func(local string) bool {
		return local != "" && local == name
	}
}

// Service returns the specified service from a connected Bluetooth device.
func Service(dev *bluetooth.Device, srvID bluetooth.UUID) (bluetooth.DeviceService, error) {
	srv, err := dev.DiscoverServices([]bluetooth.UUID{srvID})
	if err != nil {
		return bluetooth.DeviceService{}, fmt.Errorf("failed to discover service %s: %w", srvID, err)
	}
	for _, s := range srv {
		if s.UUID() == srvID {
			return s, nil
		}
	}
	return bluetooth.DeviceService{}, fmt.Errorf("%w: %s", ErrServiceNotFound, srvID)
}

// Characteristic returns the specified characteristic from a Bluetooth
// service.
func Characteristic(srv bluetooth.DeviceService, charID bluetooth.UUID) (bluetooth.DeviceCharacteristic, error) {
	char, err := srv.DiscoverCharacteristics([]bluetooth.UUID{charID})
	if err != nil {
		return bluetooth.DeviceCharacteristic{}, fmt.Errorf("failed to discover characteristic %s: %w", charID, err)
	}
	for _, c := range char {
		if c.UUID() == charID {
			return c, nil
		}
	}
	return bluetooth.DeviceCharacteristic{}, fmt.Errorf("%w: %s", ErrCharacteristicNotFound, charID)
}

// ReadCharacteristic reads data from a Bluetooth characteristic.
func ReadCharacteristic(char bluetooth.DeviceCharacteristic) ([]byte, error) {
	mtu, err := char.GetMTU()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain mtu of characteristic: %w", err)
	}
	buf := make([]byte, mtu)
	n, err := char.Read(buf)
	if err != nil && err != io.EOF {
		return buf[:n], fmt.Errorf("failed to read response from characteristic: %w", err)
	}
	return buf[:n], nil
}
