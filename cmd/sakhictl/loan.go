// loan.go - loan subcommand

package main

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/bizsakhi/sakhi_ai_core/internal/loan"
	"github.com/spf13/cobra"
)

func newLoanCmd(c *core, flags *rootFlags) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:     "loan [question]",
		Short:   "Ask about government loan schemes",
		Example: "  sakhictl loan --offline \"I need a loan for my catering business\"\n  sakhictl loan --list",
		RunE: func(cmd *cobra.Command, args []string) error {
			var advisor *loan.Advisor
			if c.gateway != nil {
				advisor = loan.NewAdvisor(c.gateway)
			} else {
				advisor = loan.NewAdvisor(nil)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)

			if list {
				return enc.Encode(advisor.Schemes())
			}
			if len(args) == 0 {
				return cmd.Usage()
			}
			lang := flags.Language
			if !cmd.Flags().Changed("lang") {
				lang = "auto"
			}
			return enc.Encode(advisor.Query(context.Background(), strings.Join(args, " "), lang))
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "print every scheme in the catalogue")
	return cmd
}
