// Package main is the entry point for the pinset tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/pinset/cmd/pinset/commands"
	"go.trai.ch/pinset/internal/adapters/detector"
	"go.trai.ch/pinset/internal/app"
	"go.trai.ch/pinset/internal/core/domain"
	_ "go.trai.ch/pinset/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := provider(ctx)
	if err != nil {
		// Logger is not available if initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 2
	}

	// Pipelines and CI get machine-readable logs unless overridden.
	format := detector.ResolveLogFormat(detector.DetectLogFormat(), os.Getenv("PINSET_LOG_FORMAT"))
	components.Logger.SetJSON(format == detector.FormatJSON)

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrCheckFailed) {
			// Diagnostics were already rendered; the exit code is the signal.
			return 1
		}
		components.Logger.Error(err)
		return 2
	}
	return 0
}
