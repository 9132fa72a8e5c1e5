package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/pipdeps/internal/ui/style"
	"go.trai.ch/zerr"
)

func (c *CLI) newDependenceCmd() *cobra.Command {
	return c.newQueryCmd(
		"dependence",
		"Show every package the given package depends on",
		"All %d dependences of %s are as follows:",
		func(ctx context.Context, name string) ([]string, error) {
			return c.app.Dependencies(ctx, name)
		},
	)
}

func (c *CLI) newUniqueCmd() *cobra.Command {
	return c.newQueryCmd(
		"unique",
		"Show the dependences that only the given package needs",
		"All %d unique dependences of %s are as follows:",
		func(ctx context.Context, name string) ([]string, error) {
			return c.app.UniqueDependencies(ctx, name)
		},
	)
}

func (c *CLI) newQueryCmd(
	use, short, header string,
	query func(ctx context.Context, name string) ([]string, error),
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [package]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := packageArg(cmd, args)
			if err != nil {
				return err
			}
			if name == "" {
				return domain.ErrPackageNameRequired
			}

			names, err := query(cmd.Context(), name)
			if err != nil {
				if errors.Is(err, domain.ErrUnknownPackage) {
					return zerr.Wrap(err, fmt.Sprintf(
						"%s is not a valid package, run `pipdeps refresh` if your package environment has changed", name))
				}
				return err
			}

			out := cmd.OutOrStdout()
			r := lipgloss.NewRenderer(out)
			_, _ = fmt.Fprintln(out)
			_, _ = fmt.Fprintln(out, style.Heading(r).Render(fmt.Sprintf(header, len(names), name)))
			_, _ = fmt.Fprintln(out)
			for _, n := range names {
				_, _ = fmt.Fprintln(out, n)
			}
			return nil
		},
	}
	addPackageFlag(cmd)
	return cmd
}

func addPackageFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("package", "p", "", "The package name, e.g. pipdeps "+cmd.Name()+" -p requests")
}

// packageArg returns the package name given by flag or positional argument.
func packageArg(cmd *cobra.Command, args []string) (string, error) {
	flag, _ := cmd.Flags().GetString("package")
	switch {
	case len(args) == 0:
		return flag, nil
	case flag == "" || flag == args[0]:
		return args[0], nil
	default:
		err := zerr.New("package given twice")
		return "", zerr.With(zerr.With(err, "flag", flag), "argument", args[0])
	}
}
