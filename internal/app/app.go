// Package app implements the application layer for pipdeps.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/pipdeps/internal/core/ports"
	"go.trai.ch/pipdeps/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// RegistryLoader provides the Registry for a query session.
type RegistryLoader interface {
	Load(ctx context.Context) (domain.Registry, error)
	Refresh(ctx context.Context) (domain.Registry, error)
}

// VisualizeOptions configures graph rendering.
type VisualizeOptions struct {
	// Format is one of the renderer formats. Empty selects DOT.
	Format string
}

// App answers package queries over the cached registry.
type App struct {
	loader   RegistryLoader
	renderer ports.GraphRenderer
	logger   ports.Logger
	settings *domain.Settings
}

// New creates a new App instance.
func New(loader RegistryLoader, renderer ports.GraphRenderer, log ports.Logger, settings *domain.Settings) *App {
	return &App{
		loader:   loader,
		renderer: renderer,
		logger:   log,
		settings: settings,
	}
}

// Refresh rescans the environment, rewrites the cache and returns the number of packages.
func (a *App) Refresh(ctx context.Context) (int, error) {
	registry, err := a.loader.Refresh(ctx)
	if err != nil {
		return 0, zerr.Wrap(err, "failed to refresh package cache")
	}
	return len(registry), nil
}

// Packages returns every installed package sorted by name.
func (a *App) Packages(ctx context.Context) ([]domain.PackageRecord, error) {
	registry, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	return registry.Records(), nil
}

// Dependencies returns the sorted transitive dependencies of name, name included.
func (a *App) Dependencies(ctx context.Context, name string) ([]string, error) {
	name, err := packageName(name)
	if err != nil {
		return nil, err
	}

	registry, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	r := a.newResolver(registry)
	closure, err := r.Dependencies(name)
	a.reportDangling(r)
	if err != nil {
		return nil, err
	}
	return closure.Sorted(), nil
}

// UniqueDependencies returns the sorted dependencies of name that no package outside
// its closure needs.
func (a *App) UniqueDependencies(ctx context.Context, name string) ([]string, error) {
	name, err := packageName(name)
	if err != nil {
		return nil, err
	}

	registry, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	r := a.newResolver(registry)
	unique, err := r.Unique(name)
	a.reportDangling(r)
	if err != nil {
		return nil, err
	}
	return unique.Sorted(), nil
}

// Visualize renders the dependency graph to w. A non-empty name restricts the graph to that
// package's closure; an unknown name falls back to the whole graph.
func (a *App) Visualize(ctx context.Context, name string, w io.Writer, opts VisualizeOptions) error {
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "dot"
	}
	if !a.renderer.IsAvailable(format) {
		err := zerr.Wrap(domain.ErrRendererUnavailable, "cannot render graph")
		return zerr.With(zerr.With(err, "format", format), "supported", strings.Join(a.renderer.Formats(), ", "))
	}

	registry, err := a.load(ctx)
	if err != nil {
		return err
	}

	name = domain.NormalizeName(name)
	if name != "" {
		if _, ok := registry.Get(name); ok {
			r := a.newResolver(registry)
			closure, err := r.Dependencies(name)
			a.reportDangling(r)
			if err != nil {
				return err
			}
			registry = registry.Subset(closure)
		} else {
			a.logger.Warn(fmt.Sprintf("package %s is not installed, drawing the whole graph", name))
		}
	}

	if err := a.renderer.Render(ctx, domain.NewGraph(registry), format, w); err != nil {
		return zerr.Wrap(err, "failed to render dependency graph")
	}
	return nil
}

func (a *App) load(ctx context.Context) (domain.Registry, error) {
	registry, err := a.loader.Load(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load package registry")
	}
	return registry, nil
}

func (a *App) newResolver(registry domain.Registry) *resolver.Resolver {
	return resolver.New(registry,
		resolver.WithLenient(a.settings.Lenient),
		resolver.WithMemoSize(a.settings.MemoSize),
	)
}

func (a *App) reportDangling(r *resolver.Resolver) {
	for _, edge := range r.Dangling() {
		if edge.Reverse {
			a.logger.Warn(fmt.Sprintf("package %s is required by %s, which is not installed", edge.Package, edge.Missing))
			continue
		}
		a.logger.Warn(fmt.Sprintf("package %s requires %s, which is not installed", edge.Package, edge.Missing))
	}
}

func packageName(name string) (string, error) {
	name = domain.NormalizeName(name)
	if name == "" {
		return "", domain.ErrPackageNameRequired
	}
	return name, nil
}
