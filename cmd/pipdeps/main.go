// Package main is the entry point for pipdeps.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/pipdeps/cmd/pipdeps/commands"
	"go.trai.ch/pipdeps/internal/app"
	_ "go.trai.ch/pipdeps/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, wiredComponents))
}

// wiredComponents builds the components from the registered graft nodes.
func wiredComponents(ctx context.Context) (*app.Components, error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	return c, err
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, provider ComponentProvider) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, err := provider(ctx)
	if err != nil {
		// The logger is not available if initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer closeComponents(components)

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}

func closeComponents(c *app.Components) {
	if c.Telemetry != nil {
		if err := c.Telemetry.Close(); err != nil {
			c.Logger.Error(err)
		}
	}
	if closer, ok := c.Logger.(io.Closer); ok {
		_ = closer.Close()
	}
}
