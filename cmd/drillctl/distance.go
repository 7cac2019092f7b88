package main

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
)

type distanceResult struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Km   float64 `json:"km"`
}

var distanceCmd = &cobra.Command{
	Use:   "distance <city> <city>",
	Short: "Print the great-circle distance between two registry cities",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := domain.DefaultRegistry()
		from, err := registry.Lookup(args[0])
		if err != nil {
			return err
		}
		to, err := registry.Lookup(args[1])
		if err != nil {
			return err
		}

		res := distanceResult{
			From: from.Name,
			To:   to.Name,
			Km:   math.Round(domain.Distance(from, to)*10) / 10,
		}
		if asJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %.1f km\n", res.From, res.To, res.Km)
		return nil
	},
}
