// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package battery implements reading of the standard 180f Bluetooth
// battery service characteristic.
package battery

import (
	"errors"
	"fmt"

	"tinygo.org/x/bluetooth"

	"github.com/kortschak/nusaccel/internal/forkbeard"
)

const (
	ServiceID             = "180f"
	LevelCharacteristicID = "2a19"
)

var (
	batteryService             = must(bluetooth.ParseUUID(ServiceID))
	batteryLevelCharacteristic = must(bluetooth.ParseUUID(LevelCharacteristicID))
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// ErrNotSupported is returned by Level when the device does not expose
// a battery service.
var ErrNotSupported = errors.New("battery service not supported")

// Level returns the battery level percentage for the provided Bluetooth
// device.
func Level(dev *bluetooth.Device) (int, error) {
	// https://www.bluetooth.com/specifications/specs/battery-service/

	srv, err := forkbeard.Service(dev, batteryService)
	if err != nil {
		if errors.Is(err, forkbeard.ErrServiceNotFound) {
			return 0, ErrNotSupported
		}
		return 0, fmt.Errorf("failed to get battery service: %w", err)
	}
	char, err := forkbeard.Characteristic(srv, batteryLevelCharacteristic)
	if err != nil {
		return 0, fmt.Errorf("failed to get battery level characteristic: %w", err)
	}
	resp, err := forkbeard.ReadCharacteristic(char)
	if err != nil {
		return 0, fmt.Errorf("failed read battery characteristic: %w", err)
	}
	return parseLevel(resp)
}

// parseLevel returns the percentage held in a battery level
// characteristic value.
func parseLevel(resp []byte) (int, error) {
	if len(resp) == 0 {
		return 0, errors.New("empty battery level")
	}
	if resp[0] > 100 {
		return 0, fmt.Errorf("invalid battery level: %d", resp[0])
	}
	return int(resp[0]), nil
}
