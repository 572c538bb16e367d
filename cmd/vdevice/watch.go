package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tamzrod/vdevice/internal/mirror"
	"github.com/tamzrod/vdevice/internal/monitor"
)

var watchCmd = &cobra.Command{
	Use:   "watch <config.yaml>",
	Short: "Run periodic alarm checks until interrupted.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args[0])
		if err != nil {
			return err
		}
		if cfg.Sensor.Kind == "" {
			return fmt.Errorf("watch requires a sensor")
		}

		d, closeSensor, err := buildDevice(cfg)
		if err != nil {
			return err
		}
		defer closeSensor()

		var pub monitor.Publisher
		if cfg.Mirror != nil {
			w, closeMirror, err := mirror.Build(*cfg.Mirror, cfg.Device.Name)
			if err != nil {
				return fmt.Errorf("mirror build failed: %w", err)
			}
			defer closeMirror()
			pub = w
		}

		m, err := monitor.New(monitor.Config{
			Name:     cfg.Device.Name,
			Interval: time.Duration(cfg.Monitor.IntervalMs) * time.Millisecond,
		}, d, pub)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		m.Run(ctx, nil)
		return nil
	},
}
