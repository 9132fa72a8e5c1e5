// Package commands implements the CLI commands for pipdeps.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/pipdeps/internal/app"
	"go.trai.ch/pipdeps/internal/build"
	"go.trai.ch/pipdeps/internal/core/domain"
)

// CLI represents the command line interface for pipdeps.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Refresh(ctx context.Context) (int, error)
	Packages(ctx context.Context) ([]domain.PackageRecord, error)
	Dependencies(ctx context.Context, name string) ([]string, error)
	UniqueDependencies(ctx context.Context, name string) ([]string, error)
	Visualize(ctx context.Context, name string, w io.Writer, opts app.VisualizeOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pipdeps",
		Short:         "Inspect the dependency graph of installed pip packages",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newRefreshCmd("init", "Scan installed packages and create the package cache"))
	rootCmd.AddCommand(c.newRefreshCmd("refresh", "Rescan installed packages and overwrite the package cache"))
	rootCmd.AddCommand(c.newPackageCmd())
	rootCmd.AddCommand(c.newDependenceCmd())
	rootCmd.AddCommand(c.newUniqueCmd())
	rootCmd.AddCommand(c.newVisualizeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
