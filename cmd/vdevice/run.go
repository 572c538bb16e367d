package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/tamzrod/vdevice/internal/mirror"
	"github.com/tamzrod/vdevice/internal/scenario"
)

var runCmd = &cobra.Command{
	Use:   "run <config.yaml>",
	Short: "Execute the scripted steps of a config against a fresh device.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args[0])
		if err != nil {
			return err
		}
		if len(cfg.Steps) == 0 {
			return errors.New("config has no steps")
		}

		d, closeSensor, err := buildDevice(cfg)
		if err != nil {
			return err
		}
		defer closeSensor()

		rep := scenario.Run(d, cfg.Steps)

		out := cmd.OutOrStdout()
		for _, s := range rep.Steps {
			fmt.Fprintln(out, s.String())
		}

		if cfg.Mirror != nil {
			w, closeMirror, err := mirror.Build(*cfg.Mirror, cfg.Device.Name)
			if err != nil {
				return fmt.Errorf("mirror build failed: %w", err)
			}
			defer closeMirror()

			raw, buf := d.Snapshot()
			if err := w.Publish(mirror.Snapshot{Raw: raw, Buffer: buf}); err != nil {
				log.Printf("mirror publish failed (device=%s): %v", cfg.Device.Name, err)
			}
		}

		if !rep.OK() {
			return fmt.Errorf("%d of %d steps failed", len(rep.Failed()), len(rep.Steps))
		}
		fmt.Fprintf(out, "all %d steps passed\n", len(rep.Steps))
		return nil
	},
}
