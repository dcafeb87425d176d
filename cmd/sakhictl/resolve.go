// resolve.go - resolve subcommand

package main

import (
	"context"
	"strings"

	"github.com/bizsakhi/sakhi_ai_core/internal/intent"
	"github.com/bizsakhi/sakhi_ai_core/internal/models"
	"github.com/spf13/cobra"
)

func newResolveCmd(c *core, flags *rootFlags) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:     "resolve [message]",
		Short:   "Classify a chat message",
		Example: `  sakhictl resolve --mode business --lang en "expense is Rs 2000"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resolver *intent.Resolver
			if c.gateway != nil {
				resolver = intent.NewResolver(c.gateway, c.composer)
			} else {
				resolver = intent.NewResolver(nil, c.composer)
			}

			msg := models.Message{
				Text:     strings.Join(args, " "),
				Language: flags.Language,
				ChatMode: models.ParseChatMode(mode),
			}
			res := resolver.Resolve(context.Background(), msg)
			return printPayload(cmd.OutOrStdout(), c.composer.Compose(res, flags.Language))
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(models.ChatModeGeneral), "chat mode: general or business")
	return cmd
}
