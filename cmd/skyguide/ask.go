package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"skyguide/internal/app"
	"skyguide/internal/service"
	"skyguide/internal/types"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var lat, lng float64
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer one question without starting the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.Request{Question: joinArgs(args)}
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
				p := types.Point{Lat: lat, Lng: lng}
				if !p.Valid() {
					return fmt.Errorf("invalid coordinates %s", p)
				}
				req.Origin = &p
			}
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				fmt.Fprintln(cmd.OutOrStdout(), a.Assistant.Answer(ctx, req))
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "caller latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "caller longitude")
	return cmd
}
