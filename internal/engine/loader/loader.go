// Package loader provides the package registry for a query session, from the cache or a fresh scan.
package loader

import (
	"context"
	"fmt"

	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/pipdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// Scanner produces a Registry from the live environment.
type Scanner interface {
	Scan(ctx context.Context) (domain.Registry, error)
}

// Loader returns the Registry, preferring the cache over a scan.
type Loader struct {
	store     ports.RegistryStore
	scanner   Scanner
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a Loader.
func New(store ports.RegistryStore, scanner Scanner, telemetry ports.Telemetry, logger ports.Logger) *Loader {
	return &Loader{
		store:     store,
		scanner:   scanner,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Load returns the cached Registry. When no cache exists, the environment is scanned and the
// result is cached. A cache that cannot be parsed is an error and is never silently replaced.
func (l *Loader) Load(ctx context.Context) (domain.Registry, error) {
	exists, err := l.store.Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		l.logger.Info(fmt.Sprintf("no package cache at %s, scanning installed packages", l.store.Path()))
		return l.scanAndSave(ctx)
	}

	_, vertex := l.telemetry.Record(ctx, "load package cache")
	registry, err := l.store.Load()
	if err != nil {
		vertex.Complete(err)
		return nil, zerr.Wrap(err, "failed to load package cache")
	}
	vertex.Cached()
	vertex.Complete(nil)
	return registry, nil
}

// Refresh scans the environment and overwrites the cache unconditionally.
// It logs how the new snapshot differs from the previous one.
func (l *Loader) Refresh(ctx context.Context) (domain.Registry, error) {
	previous := l.previous()

	registry, err := l.scanAndSave(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case previous == nil:
		l.logger.Info(fmt.Sprintf("package cache created with %d packages", len(registry)))
	case l.store.Fingerprint(previous) == l.store.Fingerprint(registry):
		l.logger.Info(fmt.Sprintf("package cache unchanged, %d packages", len(registry)))
	default:
		added, removed := diff(previous, registry)
		l.logger.Info(fmt.Sprintf("package cache updated, %d packages (%d added, %d removed)",
			len(registry), added, removed))
	}
	return registry, nil
}

// previous returns the current cache content, or nil when there is none usable.
func (l *Loader) previous() domain.Registry {
	exists, err := l.store.Exists()
	if err != nil || !exists {
		return nil
	}
	registry, err := l.store.Load()
	if err != nil {
		l.logger.Warn(fmt.Sprintf("replacing unreadable package cache at %s", l.store.Path()))
		return nil
	}
	return registry
}

func (l *Loader) scanAndSave(ctx context.Context) (domain.Registry, error) {
	registry, err := l.scanner.Scan(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to scan installed packages")
	}

	_, vertex := l.telemetry.Record(ctx, "save package cache")
	err = l.store.Save(registry)
	vertex.Complete(err)
	if err != nil {
		return nil, err
	}
	return registry, nil
}

func diff(before, after domain.Registry) (added, removed int) {
	for name := range after {
		if _, ok := before[name]; !ok {
			added++
		}
	}
	for name := range before {
		if _, ok := after[name]; !ok {
			removed++
		}
	}
	return added, removed
}
