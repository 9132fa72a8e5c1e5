package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pipdeps/internal/adapters/config"
	"go.trai.ch/pipdeps/internal/adapters/logger"
	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/pipdeps/internal/core/ports"
)

// NodeID is the unique identifier for the registry store Graft node.
const NodeID graft.ID = "adapter.registry_store"

func init() {
	graft.Register(graft.Node[ports.RegistryStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.RegistryStore, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewStore(settings.CacheFile, log), nil
		},
	})
}
