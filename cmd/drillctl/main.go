// Command drillctl is the operator CLI for the drill service: it runs radar
// scans and narrative classification locally and generates scan fixtures.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/calm-guard-drill/internal/config"
)

var (
	rulesPath string
	asJSON    bool
	rules     config.Rules
)

var rootCmd = &cobra.Command{
	Use:           "drillctl",
	Short:         "Run radar scans, classify drill narratives, and generate fixtures",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		rules, err = config.LoadRules(rulesPath)
		if err != nil {
			return fmt.Errorf("loading rules: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", os.Getenv("RULES_FILE"), "Path to a TOML rules file")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print results as JSON")

	rootCmd.AddCommand(scanCmd, classifyCmd, distanceCmd, fixturesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
