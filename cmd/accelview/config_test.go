// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kortschak/nusaccel/nus"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config{
		Name:           nus.DefaultDeviceName,
		Service:        nus.ServiceID,
		Characteristic: nus.TXCharacteristicID,
		ScanTimeout:    10 * time.Second,
		Interval:       100 * time.Millisecond,
		Range:          10,
		LogLevel:       "info",
	}, cfg)

	srv, char, err := cfg.uuids()
	require.NoError(t, err)
	assert.Equal(t, nus.Service, srv)
	assert.Equal(t, nus.TXCharacteristic, char)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accelview.yaml")
	err := os.WriteFile(path, []byte(`
name: Other Board
scan_timeout: 30s
range: 20
headless: true
battery: true
`), 0o644)
	require.NoError(t, err)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Other Board", cfg.Name)
	assert.Equal(t, 30*time.Second, cfg.ScanTimeout)
	assert.Equal(t, 20.0, cfg.Range)
	assert.True(t, cfg.Headless)
	assert.True(t, cfg.Battery)
	assert.Equal(t, 100*time.Millisecond, cfg.Interval, "unset keys keep their defaults")
	assert.Equal(t, nus.ServiceID, cfg.Service, "unset keys keep their defaults")
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("range: [1, 2"), 0o644))
	_, err = loadConfig(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestApplyFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{
		"--name", "Flag Board",
		"--interval", "50ms",
		"--log-level", "debug",
		"--battery",
	}))

	cfg, err := loadConfig("")
	require.NoError(t, err)
	cfg.Range = 42 // as if from a file
	require.NoError(t, applyFlags(cmd, &cfg))

	assert.Equal(t, "Flag Board", cfg.Name)
	assert.Equal(t, 50*time.Millisecond, cfg.Interval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Battery)
	assert.Equal(t, 42.0, cfg.Range, "unset flags must not override file values")
	assert.Equal(t, 10*time.Second, cfg.ScanTimeout)
}

func TestConfigValidation(t *testing.T) {
	base, err := loadConfig("")
	require.NoError(t, err)

	tests := []struct {
		name   string
		modify func(*config)
		want   string
	}{
		{name: "empty_name", modify: func(c *config) { c.Name = "" }, want: "device name"},
		{name: "zero_interval", modify: func(c *config) { c.Interval = 0 }, want: "redraw interval"},
		{name: "zero_timeout", modify: func(c *config) { c.ScanTimeout = 0 }, want: "scan timeout"},
		{name: "negative_range", modify: func(c *config) { c.Range = -1 }, want: "invalid range"},
		{name: "bad_service", modify: func(c *config) { c.Service = "not-a-uuid" }, want: "invalid service uuid"},
		{name: "bad_char", modify: func(c *config) { c.Characteristic = "zz" }, want: "invalid characteristic uuid"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := base
			test.modify(&cfg)
			_, _, err := cfg.uuids()
			assert.ErrorContains(t, err, test.want)
		})
	}
}
