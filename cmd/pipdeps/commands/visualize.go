package commands

import (
	"bytes"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"go.trai.ch/pipdeps/internal/app"
	"go.trai.ch/zerr"
)

func (c *CLI) newVisualizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visualize [package]",
		Short: "Draw the dependency graph of all packages, or of one package",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := packageArg(cmd, args)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			path, _ := cmd.Flags().GetString("output")
			opts := app.VisualizeOptions{Format: format}

			if path == "" {
				return c.app.Visualize(cmd.Context(), name, cmd.OutOrStdout(), opts)
			}

			// The file is only touched once the whole graph has rendered.
			var buf bytes.Buffer
			if err := c.app.Visualize(cmd.Context(), name, &buf, opts); err != nil {
				return err
			}
			if err := atomic.WriteFile(path, &buf); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to write output file"), "path", path)
			}
			return nil
		},
	}
	addPackageFlag(cmd)
	cmd.Flags().StringP("format", "f", "dot", "Output format: dot, svg, png or pdf")
	cmd.Flags().StringP("output", "o", "", "Write the graph to a file instead of stdout")
	return cmd
}
