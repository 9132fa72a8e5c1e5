package scanner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pipdeps/internal/adapters/config"
	"go.trai.ch/pipdeps/internal/adapters/logger"
	"go.trai.ch/pipdeps/internal/adapters/pip"
	"go.trai.ch/pipdeps/internal/adapters/telemetry/progrock"
	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/pipdeps/internal/core/ports"
)

// NodeID is the unique identifier for the scanner Graft node.
const NodeID graft.ID = "engine.scanner"

func init() {
	graft.Register(graft.Node[*Scanner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{pip.NodeID, progrock.NodeID, logger.NodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (*Scanner, error) {
			source, err := graft.Dep[ports.PackageSource](ctx)
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
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(source, tel, log, settings), nil
		},
	})
}
