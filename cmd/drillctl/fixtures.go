package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
	"github.com/couchcryptid/calm-guard-drill/internal/fixture"
)

var (
	fixturesOut  string
	fixturesSeed uint64
	fixturesAt   string
)

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Write deterministic scans for every city to a JSON fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := time.Parse(time.RFC3339, fixturesAt)
		if err != nil {
			return fmt.Errorf("--at: %w", err)
		}

		f, err := fixture.Write(fixturesOut, domain.DefaultRegistry(), fixturesSeed, at)
		if err != nil {
			return err
		}

		active := 0
		for _, s := range f.Scans {
			if s.Active() {
				active++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d scans (%d active) to %s\n", len(f.Scans), active, fixturesOut)
		return nil
	},
}

func init() {
	fixturesCmd.Flags().StringVar(&fixturesOut, "out", "", "Output path for the fixture file")
	fixturesCmd.Flags().Uint64Var(&fixturesSeed, "seed", 1, "Seed for threat jitter")
	fixturesCmd.Flags().StringVar(&fixturesAt, "at", "2025-01-01T00:00:00Z", "Scan time as RFC 3339")
	_ = fixturesCmd.MarkFlagRequired("out")
}
