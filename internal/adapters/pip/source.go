// Package pip implements the package source by invoking the pip command line.
package pip

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/pipdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PackageSource = (*Source)(nil)

// Source implements ports.PackageSource by running pip as a subprocess.
type Source struct {
	command []string
}

// NewSource creates a Source invoking the given command prefix, e.g. ["python3", "-m", "pip"].
func NewSource(command []string) *Source {
	return &Source{command: append([]string(nil), command...)}
}

// ListPackages returns the names of all installed packages.
func (s *Source) ListPackages(ctx context.Context) ([]string, error) {
	out, err := s.run(ctx, "list", "--format=json", "--disable-pip-version-check")
	if err != nil {
		return nil, err
	}
	return parseList(out)
}

// ShowPackages returns the metadata fields of each named package.
func (s *Source) ShowPackages(ctx context.Context, names []string) ([]map[string]string, error) {
	if len(names) == 0 {
		return []map[string]string{}, nil
	}

	args := append([]string{"show", "--disable-pip-version-check"}, names...)
	out, err := s.run(ctx, args...)
	if err != nil {
		return nil, zerr.With(err, "packages", strings.Join(names, " "))
	}
	return parseShow(out), nil
}

func (s *Source) run(ctx context.Context, args ...string) ([]byte, error) {
	if len(s.command) == 0 {
		return nil, zerr.Wrap(domain.ErrSourceUnavailable, "no pip command configured")
	}

	argv := append(append([]string(nil), s.command[1:]...), args...)
	//nolint:gosec // the command prefix comes from trusted configuration
	cmd := exec.CommandContext(ctx, s.command[0], argv...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stderr = io.MultiWriter(&stderr, vertex.Stderr())
	}

	out, err := cmd.Output()
	if err != nil {
		srcErr := zerr.Wrap(domain.ErrSourceUnavailable, "pip command failed")
		srcErr = zerr.With(srcErr, "command", strings.Join(append([]string{s.command[0]}, argv...), " "))
		srcErr = zerr.With(srcErr, "cause", err.Error())

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, zerr.With(srcErr, "stderr", strings.TrimSpace(stderr.String()))
		}
		return nil, srcErr
	}
	return out, nil
}
