package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <text>...",
	Short: "Classify drill narrative text by danger tier",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		classifier, err := domain.NewNarrativeClassifier(rules.Narrative)
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		a := classifier.Classify(text)
		if asJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(a)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "danger=%s finished=%t\n", a.Danger, a.Finished)
		return nil
	},
}
