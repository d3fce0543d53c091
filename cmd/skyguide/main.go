// README: Operator CLI; ask the assistant locally, inspect intent analysis, or smoke-test a running server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"skyguide/internal/app"
	"skyguide/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "skyguide",
		Short:        "Vietnamese weather and travel assistant",
		SilenceUsage: true,
	}
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "overall deadline for one command")

	root.AddCommand(newAskCmd(opts), newIntentCmd(opts), newSmokeCmd(opts))
	return root
}

// withApp loads config, wires the assistant and runs fn under the command deadline.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// stdout carries the answer.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("wiring: %w", err)
	}
	defer a.Close()
	return fn(ctx, a)
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
