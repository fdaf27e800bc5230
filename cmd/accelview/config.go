// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mcuadros/go-defaults"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"tinygo.org/x/bluetooth"
)

// config holds the run configuration. Values are taken from defaults,
// then an optional YAML file and finally any explicitly set flags.
type config struct {
	Name           string        `yaml:"name" default:"Croxel Accel Demo"`
	Service        string        `yaml:"service" default:"6e400001-b5a3-f393-e0a9-e50e24dcca9e"`
	Characteristic string        `yaml:"characteristic" default:"6e400003-b5a3-f393-e0a9-e50e24dcca9e"`
	ScanTimeout    time.Duration `yaml:"scan_timeout" default:"10s"`
	Interval       time.Duration `yaml:"interval" default:"100ms"`
	Range          float64       `yaml:"range" default:"10"` // m/s²
	Headless       bool          `yaml:"headless"`
	Battery        bool          `yaml:"battery"`
	LogLevel       string        `yaml:"log_level" default:"info"`
}

// loadConfig returns the default configuration overlaid with the YAML
// configuration at path. If path is empty, only defaults are used.
func loadConfig(path string) (config, error) {
	var cfg config
	defaults.SetDefaults(&cfg)
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	err = yaml.Unmarshal(b, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyFlags overrides cfg fields with the values of flags that were
// set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config) error {
	f := cmd.Flags()
	var err error
	set := func(name string, fn func() error) {
		if err == nil && f.Changed(name) {
			err = fn()
		}
	}
	set("name", func() (err error) { cfg.Name, err = f.GetString("name"); return err })
	set("service", func() (err error) { cfg.Service, err = f.GetString("service"); return err })
	set("char", func() (err error) { cfg.Characteristic, err = f.GetString("char"); return err })
	set("scan-timeout", func() (err error) { cfg.ScanTimeout, err = f.GetDuration("scan-timeout"); return err })
	set("interval", func() (err error) { cfg.Interval, err = f.GetDuration("interval"); return err })
	set("range", func() (err error) { cfg.Range, err = f.GetFloat64("range"); return err })
	set("headless", func() (err error) { cfg.Headless, err = f.GetBool("headless"); return err })
	set("battery", func() (err error) { cfg.Battery, err = f.GetBool("battery"); return err })
	set("log-level", func() (err error) { cfg.LogLevel, err = f.GetString("log-level"); return err })
	return err
}

// uuids validates cfg and returns the parsed service and characteristic
// identifiers.
func (cfg config) uuids() (srv, char bluetooth.UUID, err error) {
	if cfg.Name == "" {
		return srv, char, errors.New("device name must not be empty")
	}
	if cfg.Interval <= 0 {
		return srv, char, fmt.Errorf("invalid redraw interval: %v", cfg.Interval)
	}
	if cfg.ScanTimeout <= 0 {
		return srv, char, fmt.Errorf("invalid scan timeout: %v", cfg.ScanTimeout)
	}
	if !(cfg.Range > 0) {
		return srv, char, fmt.Errorf("invalid range: %v", cfg.Range)
	}
	srv, err = bluetooth.ParseUUID(cfg.Service)
	if err != nil {
		return srv, char, fmt.Errorf("invalid service uuid %q: %w", cfg.Service, err)
	}
	char, err = bluetooth.ParseUUID(cfg.Characteristic)
	if err != nil {
		return srv, char, fmt.Errorf("invalid characteristic uuid %q: %w", cfg.Characteristic, err)
	}
	return srv, char, nil
}
