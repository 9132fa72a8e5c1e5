package progrock

import (
	"io"

	"github.com/vito/progrock"
	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/pipdeps/internal/core/ports"
)

var _ ports.Vertex = (*Vertex)(nil)

// Vertex implements ports.Vertex. Raw process output goes to the vertex streams untouched, and
// Log lines carry a level tag so a Display can tell the two apart.
type Vertex struct {
	rec *progrock.VertexRecorder
}

// Stdout returns the vertex output stream.
func (v *Vertex) Stdout() io.Writer { return v.rec.Stdout() }

// Stderr returns the vertex error stream.
func (v *Vertex) Stderr() io.Writer { return v.rec.Stderr() }

// Log records msg at level. Warnings and errors are written to the error stream.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	w := v.rec.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.rec.Stderr()
	}
	_, _ = io.WriteString(w, level.Tag()+msg+"\n")
}

// Complete finishes the vertex, failed if err is non-nil.
func (v *Vertex) Complete(err error) { v.rec.Done(err) }

// Cached marks the vertex as answered from the package cache.
func (v *Vertex) Cached() { v.rec.Cached() }
