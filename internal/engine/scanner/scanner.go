// Package scanner builds a Registry by querying the package source in concurrent batches.
package scanner

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/pipdeps/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Scanner queries a ports.PackageSource and assembles a domain.Registry.
type Scanner struct {
	source      ports.PackageSource
	telemetry   ports.Telemetry
	logger      ports.Logger
	concurrency int
	batchSize   int
}

// New creates a Scanner. Concurrency and batch size are taken from settings.
func New(source ports.PackageSource, telemetry ports.Telemetry, logger ports.Logger, settings *domain.Settings) *Scanner {
	return &Scanner{
		source:      source,
		telemetry:   telemetry,
		logger:      logger,
		concurrency: max(settings.Concurrency, 1),
		batchSize:   max(settings.BatchSize, 1),
	}
}

// Scan lists the installed packages and reads every record.
func (s *Scanner) Scan(ctx context.Context) (domain.Registry, error) {
	names, err := s.list(ctx)
	if err != nil {
		return nil, err
	}

	batches := slices.Collect(slices.Chunk(names, s.batchSize))
	results := make([][]map[string]string, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, batch := range batches {
		g.Go(func() error {
			fields, err := s.show(gctx, i, len(batches), batch)
			if err != nil {
				return err
			}
			results[i] = fields
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.merge(names, results)
}

func (s *Scanner) list(ctx context.Context) ([]string, error) {
	ctx, vertex := s.telemetry.Record(ctx, "pip list")
	names, err := s.source.ListPackages(ctx)
	if err != nil {
		vertex.Complete(err)
		return nil, zerr.Wrap(err, "failed to list installed packages")
	}

	vertex.Log(domain.LogLevelInfo, fmt.Sprintf("%d packages installed", len(names)))
	vertex.Complete(nil)
	return names, nil
}

func (s *Scanner) show(ctx context.Context, index, total int, batch []string) ([]map[string]string, error) {
	ctx, vertex := s.telemetry.Record(ctx, fmt.Sprintf("pip show [%d/%d]", index+1, total))
	vertex.Log(domain.LogLevelDebug, strings.Join(batch, " "))

	fields, err := s.source.ShowPackages(ctx, batch)
	vertex.Complete(err)
	if err != nil {
		err = zerr.Wrap(err, "failed to read package metadata")
		return nil, zerr.With(err, "batch", index+1)
	}
	return fields, nil
}

// merge turns the per-batch results into a Registry, keeping batch order so that the first
// occurrence of a duplicated name wins.
func (s *Scanner) merge(listed []string, results [][]map[string]string) (domain.Registry, error) {
	registry := make(domain.Registry, len(listed))

	for _, batch := range results {
		for _, fields := range batch {
			rec, err := domain.NewPackageRecord(fields)
			if err != nil {
				return nil, err
			}
			if _, dup := registry[rec.Name]; dup {
				s.logger.Warn(fmt.Sprintf("package %s reported more than once, keeping the first record", rec.Name))
				continue
			}
			registry[rec.Name] = rec
		}
	}

	for _, name := range listed {
		if _, ok := registry[domain.NormalizeName(name)]; !ok {
			s.logger.Warn(fmt.Sprintf("package %s was listed but has no metadata", name))
		}
	}

	return registry, nil
}
