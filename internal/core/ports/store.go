package ports

import "go.trai.ch/pipdeps/internal/core/domain"

// RegistryStore persists registry snapshots so the package source is not queried on every run.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RegistryStore interface {
	// Path returns the location of the snapshot file.
	Path() string

	// Exists reports whether a snapshot has been stored.
	Exists() (bool, error)

	// Load reads the stored snapshot.
	// It returns domain.ErrMalformedCache if the snapshot cannot be parsed.
	Load() (domain.Registry, error)

	// Save replaces the stored snapshot atomically.
	Save(registry domain.Registry) error

	// Fingerprint returns a stable digest of a registry's content.
	Fingerprint(registry domain.Registry) string
}
