package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pipdeps/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/pipdeps/internal/adapters/graphviz"           //nolint:depguard // Wired in app layer
	"go.trai.ch/pipdeps/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/pipdeps/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/pipdeps/internal/core/ports"
	"go.trai.ch/pipdeps/internal/engine/loader"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds everything the command line needs at runtime.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
	Settings  *domain.Settings
}

// fileLogger is implemented by loggers that can mirror records into a file.
type fileLogger interface {
	AttachFile(path string) error
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			loader.NodeID,
			graphviz.NodeID,
			logger.NodeID,
			config.SettingsNodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			l, err := graft.Dep[*loader.Loader](ctx)
			if err != nil {
				return nil, err
			}
			renderer, err := graft.Dep[ports.GraphRenderer](ctx)
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
			return New(l, renderer, log, settings), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
			config.SettingsNodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[*domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	if fl, ok := log.(fileLogger); ok && settings.LogFile != "" {
		if err := fl.AttachFile(settings.LogFile); err != nil {
			return nil, err
		}
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: tel,
		Settings:  settings,
	}, nil
}
