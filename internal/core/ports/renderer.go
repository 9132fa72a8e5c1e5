package ports

import (
	"context"
	"io"

	"go.trai.ch/pipdeps/internal/core/domain"
)

// GraphRenderer turns a dependency graph into a picture or a textual description.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type GraphRenderer interface {
	// Formats lists the output formats the renderer understands.
	Formats() []string

	// IsAvailable reports whether the given format can be produced on this machine.
	IsAvailable(format string) bool

	// Render writes the graph in the given format to w.
	// It returns domain.ErrRendererUnavailable when the format's tooling is missing.
	Render(ctx context.Context, graph *domain.Graph, format string, w io.Writer) error
}
