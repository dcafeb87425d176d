// extract.go - extract subcommand

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bizsakhi/sakhi_ai_core/internal/receipt"
	"github.com/spf13/cobra"
)

func newExtractCmd(c *core, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "extract [file]",
		Short:   "Extract line items from OCR text",
		Long:    "Reads OCR text from file, or from stdin when file is \"-\" or omitted.",
		Example: `  sakhictl extract --lang en receipt.txt`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			var extractor *receipt.Extractor
			if c.gateway != nil {
				extractor = receipt.NewExtractor(c.gateway, c.composer)
			} else {
				extractor = receipt.NewExtractor(nil, c.composer)
			}

			res := extractor.Extract(context.Background(), text, flags.Language)
			return printPayload(cmd.OutOrStdout(), c.composer.Compose(res, flags.Language))
		},
	}
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}
