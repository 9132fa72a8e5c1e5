package loader

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pipdeps/internal/adapters/cache"
	"go.trai.ch/pipdeps/internal/adapters/logger"
	"go.trai.ch/pipdeps/internal/adapters/telemetry/progrock"
	"go.trai.ch/pipdeps/internal/core/ports"
	"go.trai.ch/pipdeps/internal/engine/scanner"
)

// NodeID is the unique identifier for the registry loader Graft node.
const NodeID graft.ID = "engine.loader"

func init() {
	graft.Register(graft.Node[*Loader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cache.NodeID, scanner.NodeID, progrock.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Loader, error) {
			store, err := graft.Dep[ports.RegistryStore](ctx)
			if err != nil {
				return nil, err
			}
			scan, err := graft.Dep[*scanner.Scanner](ctx)
			if err != nil {
				return nil, err
			}
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(store, scan, tel, log), nil
		},
	})
}
