package pip

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pipdeps/internal/adapters/config"
	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/pipdeps/internal/core/ports"
)

// NodeID is the unique identifier for the package source Graft node.
const NodeID graft.ID = "adapter.package_source"

func init() {
	graft.Register(graft.Node[ports.PackageSource]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.PackageSource, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewSource(settings.PipCommand), nil
		},
	})
}
