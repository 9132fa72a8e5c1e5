// Package ports defines the core interfaces for the application.
package ports

import "context"

// PackageSource queries the external package manager for installed packages.
//
// Failures to reach or parse the package manager are reported as domain.ErrSourceUnavailable.
//
//go:generate go run go.uber.org/mock/mockgen -source=package_source.go -destination=mocks/mock_package_source.go -package=mocks
type PackageSource interface {
	// ListPackages returns the names of all installed packages as reported by the source.
	ListPackages(ctx context.Context) ([]string, error)

	// ShowPackages returns the raw fields of each named package, keyed by field name
	// (see the domain.Field* constants). Requires and Required-by are comma-joined.
	ShowPackages(ctx context.Context, names []string) ([]map[string]string, error)
}
