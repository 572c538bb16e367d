package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tamzrod/vdevice/internal/config"
	"github.com/tamzrod/vdevice/internal/device"
	"github.com/tamzrod/vdevice/internal/events"
	"github.com/tamzrod/vdevice/internal/sensor"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vdevice",
	Short: "Virtual memory-mapped device for exercising firmware-adjacent logic.",
	Long: `vdevice simulates a small memory-mapped device: a 10-slot data ` +
		`buffer, a 32-bit status register and a temperature alarm fed by ` +
		`a configurable sensor source.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log every device operation")

	rootCmd.AddCommand(validateCmd, runCmd, watchCmd)
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig loads, validates and normalizes a config file.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	config.Normalize(cfg)
	return cfg, nil
}

// buildDevice creates a reset device with the configured sensor attached.
func buildDevice(cfg *config.Config) (*device.Device, func() error, error) {
	src, closeSensor, err := sensor.Build(cfg.Sensor)
	if err != nil {
		return nil, nil, err
	}

	opts := []device.Option{device.WithSource(src)}
	if verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		if cfg.Device.Name != "" {
			logger = logger.With(slog.String("device", cfg.Device.Name))
		}
		opts = append(opts, device.WithSink(events.NewSlogSink(logger)))
	}

	d := device.New(opts...)
	d.Reset()

	log.Printf("device ready (name=%s id=%s)", cfg.Device.Name, d.ID())
	return d, closeSensor, nil
}
