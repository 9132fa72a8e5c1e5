// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pipdeps/internal/adapters/cache"
	_ "go.trai.ch/pipdeps/internal/adapters/config"
	_ "go.trai.ch/pipdeps/internal/adapters/graphviz"
	_ "go.trai.ch/pipdeps/internal/adapters/logger"
	_ "go.trai.ch/pipdeps/internal/adapters/pip"
	_ "go.trai.ch/pipdeps/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/pipdeps/internal/app"
	_ "go.trai.ch/pipdeps/internal/engine/loader"
	_ "go.trai.ch/pipdeps/internal/engine/scanner"
)
