// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The accelview command connects to a Bluetooth LE device logging
// accelerometer readings over the Nordic UART Service and shows the
// acceleration vector as a live 3D arrow.
package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gioui.org/app"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"tinygo.org/x/bluetooth"

	"github.com/kortschak/nusaccel/cmd/internal/latest"
	"github.com/kortschak/nusaccel/nus"
)

var rootCmd = &cobra.Command{
	Use:   "accelview",
	Short: "Live view of accelerometer readings from a BLE NUS logger",
	Long: `accelview scans for a Bluetooth LE device by its advertised name,
subscribes to log notifications on the Nordic UART Service TX
characteristic and draws each "X: <x>, Y: <y>, Z: <z>" reading as a
3D arrow from the origin.

Without flags the defaults for the Croxel accelerometer demonstration
firmware are used. A YAML configuration file may be given with --config;
flags set on the command line take precedence over file values.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	// main prints errors.
	rootCmd.SilenceErrors = true

	addFlags(rootCmd)
}

func addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("config", "", "path to YAML configuration file")
	f.String("name", nus.DefaultDeviceName, "advertised name of the device")
	f.String("service", nus.ServiceID, "UUID of the UART service")
	f.String("char", nus.TXCharacteristicID, "UUID of the notifying characteristic")
	f.Duration("scan-timeout", 10*time.Second, "time to scan for the device")
	f.Duration("interval", 100*time.Millisecond, "redraw interval")
	f.Float64("range", 10, "acceleration drawn at full axis length (m/s²)")
	f.Bool("headless", false, "log readings without opening a window")
	f.Bool("battery", false, "read and log the device battery level after connecting")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	err = applyFlags(cmd, &cfg)
	if err != nil {
		return err
	}
	srvID, charID, err := cfg.uuids()
	if err != nil {
		return err
	}
	log, err := configureLogger(cfg.LogLevel, os.Stdout)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	adapter := bluetooth.DefaultAdapter
	err = adapter.Enable()
	if err != nil {
		return fmt.Errorf("failed to enable bluetooth: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	acc := latest.New[nus.Acc]()
	sess := newSession(adapter, cfg, srvID, charID, acc, log)
	sessDone := make(chan struct{})
	go func() {
		defer close(sessDone)
		err := sess.run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			// The view continues with the last known vector.
			log.Error(err)
		}
	}()

	if cfg.Headless {
		<-ctx.Done()
		waitFor(sessDone, time.Second, log)
		return nil
	}

	update := make(chan image.Image)
	v := newViewer(cfg.Range, sess.dropped.Load)
	go v.run(ctx, cfg.Interval, acc, update)

	go func() {
		<-ctx.Done()
		waitFor(sessDone, time.Second, log)
		os.Exit(0)
	}()

	go func() {
		w := new(app.Window)
		w.Option(app.Title("Accelerometer"), app.Size(cardWidth, cardHeight+48))
		if err := loop(w, update, log); err != nil {
			log.Fatal(err)
		}
		stop()
	}()
	app.Main()
	return nil
}

// waitFor waits up to timeout for done to be closed.
func waitFor(done <-chan struct{}, timeout time.Duration, log *logrus.Logger) {
	select {
	case <-done:
	case <-time.After(timeout):
		log.Warn("timed out waiting for bluetooth session to close")
	}
}
