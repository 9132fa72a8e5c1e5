package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/pipdeps/internal/ui/style"
)

func (c *CLI) newRefreshCmd(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := c.app.Refresh(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			r := lipgloss.NewRenderer(out)
			_, _ = fmt.Fprintln(out, style.Success(r).Render(fmt.Sprintf("%s Cached %d packages", style.Check, n)))
			return nil
		},
	}
}
