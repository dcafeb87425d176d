// root.go - Root command, shared flags and core wiring

package main

import (
	"encoding/json"
	"io"

	"github.com/bizsakhi/sakhi_ai_core/configs"
	"github.com/bizsakhi/sakhi_ai_core/internal/ai"
	"github.com/bizsakhi/sakhi_ai_core/internal/common"
	"github.com/bizsakhi/sakhi_ai_core/internal/response"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	Language string
	Offline  bool
}

// core holds the pieces every subcommand needs.
type core struct {
	composer *response.Composer
	gateway  *ai.Gateway
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	c := &core{composer: response.NewComposer()}

	cmd := &cobra.Command{
		Use:   "sakhictl",
		Short: "Run the BizSakhi AI core without the HTTP server",
		Long: `sakhictl runs intent resolution and receipt extraction locally and prints
the payload the API would return. Provider keys are read from the same
environment variables as the server; --offline skips every provider.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Logs go to stderr so stdout stays valid JSON
			if flags.Offline {
				common.SetupLogger("warn", "text").SetOutput(cmd.ErrOrStderr())
				return
			}
			configs.LoadConfig()
			common.SetupLogger(configs.LOG_LEVEL, configs.LOG_FORMAT).SetOutput(cmd.ErrOrStderr())
			if g := ai.BuildGateway(); g.Available() {
				c.gateway = g
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.Language, "lang", "l", "en", "response language (en, hi, ta, ml, te, kn, gu, bn, mr)")
	cmd.PersistentFlags().BoolVar(&flags.Offline, "offline", false, "skip every AI provider and use local rules only")

	cmd.AddCommand(newResolveCmd(c, flags), newExtractCmd(c, flags), newLoanCmd(c, flags))
	return cmd
}

func printPayload(w io.Writer, p response.Payload) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(p)
}
