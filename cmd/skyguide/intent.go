package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"skyguide/internal/app"
)

func newIntentCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "intent <question>",
		Short: "Print the intent analysis for a question as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				analysis := a.Parser.Parse(ctx, joinArgs(args))
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(analysis)
			})
		},
	}
}
