// Package graphviz renders dependency graphs with Graphviz.
package graphviz

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"slices"
	"strings"

	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/pipdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// FormatDOT is produced without any external tooling.
const FormatDOT = "dot"

// imageFormats are rendered by piping DOT through the Graphviz binary.
var imageFormats = []string{"svg", "png", "pdf"}

var _ ports.GraphRenderer = (*Renderer)(nil)

// Renderer implements ports.GraphRenderer.
type Renderer struct {
	binary   string
	lookPath func(string) (string, error)
}

// NewRenderer creates a Renderer using the `dot` binary from PATH for image formats.
func NewRenderer() *Renderer {
	return &Renderer{binary: "dot", lookPath: exec.LookPath}
}

// NewRendererWithBinary creates a Renderer using the given Graphviz binary.
func NewRendererWithBinary(binary string) *Renderer {
	return &Renderer{binary: binary, lookPath: exec.LookPath}
}

// Formats lists the supported output formats.
func (r *Renderer) Formats() []string {
	return append([]string{FormatDOT}, imageFormats...)
}

// IsAvailable reports whether format can be produced. DOT is always available;
// image formats need the Graphviz binary.
func (r *Renderer) IsAvailable(format string) bool {
	switch {
	case format == FormatDOT:
		return true
	case slices.Contains(imageFormats, format):
		_, err := r.lookPath(r.binary)
		return err == nil
	default:
		return false
	}
}

// Render writes the graph to w in the given format.
func (r *Renderer) Render(ctx context.Context, graph *domain.Graph, format string, w io.Writer) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == FormatDOT {
		return Encode(graph, w)
	}

	if !slices.Contains(imageFormats, format) {
		err := zerr.Wrap(domain.ErrRendererUnavailable, "unsupported output format")
		return zerr.With(zerr.With(err, "format", format), "supported", strings.Join(r.Formats(), ", "))
	}

	path, err := r.lookPath(r.binary)
	if err != nil {
		err := zerr.Wrap(domain.ErrRendererUnavailable, "graphviz is not installed")
		return zerr.With(zerr.With(err, "format", format), "binary", r.binary)
	}

	var src bytes.Buffer
	if err := Encode(graph, &src); err != nil {
		return zerr.Wrap(err, "failed to encode graph")
	}

	//nolint:gosec // format is checked against the supported list
	cmd := exec.CommandContext(ctx, path, "-T"+format)
	cmd.Stdin = &src
	cmd.Stdout = w
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		renderErr := zerr.With(zerr.Wrap(err, "graphviz failed to render graph"), "format", format)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return zerr.With(renderErr, "stderr", strings.TrimSpace(stderr.String()))
		}
		return renderErr
	}
	return nil
}
