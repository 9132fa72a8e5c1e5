package progrock

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/pipdeps/internal/adapters/logger"
	"go.trai.ch/pipdeps/internal/core/ports"
	"go.trai.ch/pipdeps/internal/ui/output"
)

const (
	// NodeID is the unique identifier for the telemetry adapter node.
	NodeID graft.ID = "adapter.telemetry"
)

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(os.Stderr, log), nil
		},
	})
}

// New creates a Recorder for the console w. A person at a terminal gets a Console,
// anything else gets the vertex logs through log.
func New(w *os.File, log ports.Logger) *Recorder {
	if output.Interactive(w) {
		return NewRecorder(NewDisplay(NewConsole(w)))
	}
	return NewRecorder(NewDisplay(NewLogSink(log)))
}
