// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nus implements reception of accelerometer readings carried in
// log lines sent over the Nordic UART Service.
//
// Devices running the Zephyr BLE logger backend emit each log message as
// a notification on the NUS TX characteristic. Messages of the form
//
//	[00:01:06.553,161] <inf> main: X: -7.967232, Y: -0.689472, Z: 5.285952
//
// are parsed into Acc values; all other messages are ignored.
package nus

import "tinygo.org/x/bluetooth"

// Service and characteristic identifiers.
const (
	ServiceID          = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	RXCharacteristicID = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // write
	TXCharacteristicID = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // notify

	// DefaultDeviceName is the name advertised by the accelerometer
	// demonstration firmware.
	DefaultDeviceName = "Croxel Accel Demo"
)

var (
	Service          = must(bluetooth.ParseUUID(ServiceID))
	TXCharacteristic = must(bluetooth.ParseUUID(TXCharacteristicID))
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
