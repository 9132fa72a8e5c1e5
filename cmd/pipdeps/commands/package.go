package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/pipdeps/internal/ui/style"
)

func (c *CLI) newPackageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "package",
		Short: "Show every installed package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := c.app.Packages(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			r := lipgloss.NewRenderer(out)
			heading, label := style.Heading(r), style.Label(r)

			_, _ = fmt.Fprintln(out, heading.Render(fmt.Sprintf("Total %d packages", len(records))))
			for i, rec := range records {
				_, _ = fmt.Fprintln(out, i)
				for _, field := range []struct{ key, value string }{
					{domain.FieldName, rec.Name},
					{domain.FieldVersion, rec.Version},
					{domain.FieldLocation, rec.Location},
					{domain.FieldRequires, strings.Join(rec.Requires, ", ")},
					{domain.FieldRequiredBy, strings.Join(rec.RequiredBy, ", ")},
				} {
					_, _ = fmt.Fprintf(out, "%s %s\n", label.Render(field.key+":"), field.value)
				}
				_, _ = fmt.Fprintln(out)
			}
			return nil
		},
	}
}
