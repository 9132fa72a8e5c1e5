package ports

import "go.trai.ch/pipdeps/internal/core/domain"

// ConfigLoader defines the interface for loading the runtime settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the settings for the given working directory, falling back to defaults.
	Load(cwd string) (*domain.Settings, error)
}
