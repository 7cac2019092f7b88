package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
)

var (
	scanSeed uint64
	scanAt   string
)

var scanCmd = &cobra.Command{
	Use:   "scan <city>",
	Short: "Run a radar scan for one city",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := []domain.ScannerOption{domain.WithRelevanceRules(rules.Relevance)}
		if scanAt != "" {
			at, err := time.Parse(time.RFC3339, scanAt)
			if err != nil {
				return fmt.Errorf("--at: %w", err)
			}
			opts = append(opts, domain.WithClock(clockwork.NewFakeClockAt(at)))
		}

		seed := scanSeed
		if !cmd.Flags().Changed("seed") {
			seed = uint64(time.Now().UnixNano())
		}

		scanner := domain.NewScanner(domain.DefaultRegistry(), domain.NewSeededRand(seed), opts...)
		result, err := scanner.ScanCity(args[0])
		if err != nil {
			return fmt.Errorf("scan %q: %w", args[0], err)
		}
		return printScan(cmd.OutOrStdout(), result)
	},
}

func init() {
	scanCmd.Flags().Uint64Var(&scanSeed, "seed", 0, "Seed for threat jitter (random when unset)")
	scanCmd.Flags().StringVar(&scanAt, "at", "", "Scan time as RFC 3339 (now when unset)")
}

func printScan(w io.Writer, r domain.ScanResult) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	fmt.Fprintf(w, "City:    %s, %s\n", r.City.Name, r.City.Country)
	fmt.Fprintf(w, "Scanned: %s\n", r.ScannedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Badge:   %s\n", r.BadgeText)
	if !r.Active() {
		fmt.Fprintf(w, "\n%s\n", r.Message)
	} else {
		t := r.Threat
		fmt.Fprintf(w, "\n%s (%s)\n", t.Label, t.Intensity)
		fmt.Fprintf(w, "  location: %s\n", t.Location)
		fmt.Fprintf(w, "  distance: %.1f km\n", t.DistanceKm)
		fmt.Fprintf(w, "  area:     %.0f km²\n", t.AffectedAreaKm2)
		fmt.Fprintf(w, "  source:   %s\n", t.Source)
	}
	fmt.Fprintf(w, "\nRecommendation: %s\n", r.Recommendation)
	return nil
}
