package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"policyd/internal/codec"
	"policyd/internal/policy"
)

func newExampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print the example observation as a POST /act body",
		Example: "  policyd example > obs.json\n" +
			"  curl -H 'Content-Type: application/json' -d @obs.json localhost:8080/act",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			if indent, _ := cmd.Flags().GetBool("indent"); indent {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(codec.Request(policy.MakeExample()))
		},
	}
	cmd.Flags().Bool("indent", false, "Indent the JSON output")
	return cmd
}
