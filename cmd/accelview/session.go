// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"

	"github.com/kortschak/nusaccel/battery"
	"github.com/kortschak/nusaccel/cmd/internal/latest"
	"github.com/kortschak/nusaccel/internal/forkbeard"
	"github.com/kortschak/nusaccel/nus"
)

// subscription is a live notification subscription.
type subscription interface {
	Service() bluetooth.UUID
	Characteristic() bluetooth.UUID
	Run(context.Context) error
}

// session locates a device, connects to it and feeds parsed
// accelerometer readings into acc until its context is done.
type session struct {
	name        string
	scanTimeout time.Duration
	srvID       bluetooth.UUID
	charID      bluetooth.UUID
	readBattery bool

	find       func(ctx context.Context, name string) (bluetooth.ScanResult, error)
	connect    func(bluetooth.Address) (bluetooth.Device, error)
	disconnect func(*bluetooth.Device) error
	battery    func(*bluetooth.Device) (int, error)
	subscribe  func(dev *bluetooth.Device, srvID, charID bluetooth.UUID, h func(nus.Sample, error)) (subscription, error)

	acc     *latest.Value[nus.Acc]
	dropped atomic.Uint64
	log     *logrus.Logger
}

// newSession returns a session using the provided Bluetooth adapter.
func newSession(adapter *bluetooth.Adapter, cfg config, srvID, charID bluetooth.UUID, acc *latest.Value[nus.Acc], log *logrus.Logger) *session {
	return &session{
		name:        cfg.Name,
		scanTimeout: cfg.ScanTimeout,
		srvID:       srvID,
		charID:      charID,
		readBattery: cfg.Battery,
		find: func(ctx context.Context, name string) (bluetooth.ScanResult, error) {
			return forkbeard.FindByName(ctx, adapter, name)
		},
		connect: func(addr bluetooth.Address) (bluetooth.Device, error) {
			return adapter.Connect(addr, bluetooth.ConnectionParams{})
		},
		disconnect: (*bluetooth.Device).Disconnect,
		battery:    battery.Level,
		subscribe: func(dev *bluetooth.Device, srvID, charID bluetooth.UUID, h func(nus.Sample, error)) (subscription, error) {
			l, err := nus.NewListener(dev, srvID, charID, h)
			if err != nil {
				return nil, err
			}
			return l, nil
		},
		acc: acc,
		log: log,
	}
}

// run performs the device scan, connection and subscription, and then
// holds the subscription open until ctx is done. Failures are returned
// without retrying.
func (s *session) run(ctx context.Context) error {
	s.log.WithField("name", s.name).Info("scanning")
	scanCtx, cancel := context.WithTimeout(ctx, s.scanTimeout)
	found, err := s.find(scanCtx, s.name)
	cancel()
	if err != nil {
		return fmt.Errorf("%s not found: %w", s.name, err)
	}
	s.log.WithFields(logrus.Fields{
		"mac":  found.Address.String(),
		"rssi": found.RSSI,
	}).Infof("found %s", s.name)

	dev, err := s.connect(found.Address)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", s.name, err)
	}
	s.log.Infof("connected to %s", s.name)

	if s.readBattery {
		level, err := s.battery(&dev)
		switch {
		case err == nil:
			s.log.WithField("percent", level).Info("battery level")
		case errors.Is(err, battery.ErrNotSupported):
			s.log.Debug("device has no battery service")
		default:
			s.log.WithError(err).Warn("failed to read battery level")
		}
	}

	sub, err := s.subscribe(&dev, s.srvID, s.charID, s.handle)
	if err != nil {
		err = fmt.Errorf("failed to subscribe: %w", err)
		if derr := s.disconnect(&dev); derr != nil {
			err = errors.Join(err, fmt.Errorf("failed to disconnect from %s: %w", s.name, derr))
		}
		return err
	}
	s.log.WithField("uuid", sub.Service().String()).Info("found service")
	s.log.WithField("uuid", sub.Characteristic().String()).Info("subscribed to characteristic")

	err = sub.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to close subscription: %w", err)
	}
	return nil
}

// handle is the notification handler. Readings replace the shared value
// and are logged. Lines without a reading are counted and dropped.
func (s *session) handle(m nus.Sample, err error) {
	if err != nil {
		s.dropped.Add(1)
		s.log.WithError(err).Debug("dropped notification")
		return
	}
	s.acc.Store(m.Acc)
	entry := logrus.NewEntry(s.log)
	if m.Line.Module != "" {
		entry = entry.WithFields(logrus.Fields{
			"uptime": m.Line.Uptime,
			"module": m.Line.Module,
		})
	}
	entry.Info(m.Acc.String())
}
