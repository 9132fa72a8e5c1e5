// Package progrock records units of work with vito/progrock and shows them to the user through
// a Display.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/pipdeps/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry on top of a progrock recording.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// NewRecorder creates a Recorder sending every status update to w.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts a vertex named name. The vertex digest is derived from the name, so recording
// the same name again resumes the same vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	vertex := &Vertex{rec: r.rec.Vertex(digest.FromString(name), name)}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes the writer.
func (r *Recorder) Close() error {
	return r.w.Close()
}
