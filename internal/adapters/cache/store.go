// Package cache persists registry snapshots to a JSON file.
package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/natefinch/atomic"
	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/pipdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

var _ ports.RegistryStore = (*Store)(nil)

// Store implements ports.RegistryStore using a single JSON file.
type Store struct {
	path   string
	logger ports.Logger
}

// NewStore creates a new RegistryStore backed by the file at the given path.
func NewStore(path string, logger ports.Logger) *Store {
	return &Store{
		path:   filepath.Clean(path),
		logger: logger,
	}
}

// Path returns the location of the snapshot file.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the snapshot file is present.
func (s *Store) Exists() (bool, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat package cache"), "path", s.path)
	}
	if info.IsDir() {
		return false, zerr.With(zerr.Wrap(domain.ErrMalformedCache, "package cache path is a directory"), "path", s.path)
	}
	return true, nil
}

// Load reads and validates the snapshot file.
func (s *Store) Load() (domain.Registry, error) {
	//nolint:gosec // Path is cleaned and provided by trusted configuration
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read package cache"), "path", s.path)
	}

	registry, declared, err := decode(data)
	if err != nil {
		return nil, zerr.With(err, "path", s.path)
	}

	if declared != nil && *declared != len(registry) && s.logger != nil {
		s.logger.Warn(fmt.Sprintf("package cache %s declares %d packages but holds %d", s.path, *declared, len(registry)))
	}
	return registry, nil
}

// Save writes the registry to a temporary file next to the snapshot and renames it into place,
// so an interrupted write never leaves a partial snapshot behind.
func (s *Store) Save(registry domain.Registry) error {
	data, err := encode(registry)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "path", s.path)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return s.writeError(err, "failed to create directory for package cache")
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return s.writeError(err, "failed to replace package cache")
	}
	if err := os.Chmod(s.path, filePerm); err != nil {
		return s.writeError(err, "failed to set package cache permissions")
	}
	return nil
}

// Fingerprint hashes the registry content in name order.
func (s *Store) Fingerprint(registry domain.Registry) string {
	hasher := xxhash.New()
	for _, rec := range registry.Records() {
		_, _ = hasher.WriteString(rec.Name)
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(rec.Version)
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(rec.Location)
		_, _ = hasher.Write([]byte{0})
		for _, dep := range rec.Requires {
			_, _ = hasher.WriteString(dep)
			_, _ = hasher.Write([]byte{0})
		}
		_, _ = hasher.Write([]byte{1})
		for _, dep := range rec.RequiredBy {
			_, _ = hasher.WriteString(dep)
			_, _ = hasher.Write([]byte{0})
		}
		_, _ = hasher.Write([]byte{1})
	}
	return fmt.Sprintf("%016x", hasher.Sum64())
}

func (s *Store) writeError(err error, msg string) error {
	wrapped := zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, msg), "path", s.path)
	return zerr.With(wrapped, "cause", err.Error())
}

func encode(registry domain.Registry) ([]byte, error) {
	file := snapshotFile{
		Count:    len(registry),
		Packages: make(map[string]packageEntry, len(registry)),
	}
	for name, rec := range registry {
		file.Packages[name] = packageEntry{
			Version:    rec.Version,
			Location:   rec.Location,
			Requires:   nonNil(rec.Requires),
			RequiredBy: nonNil(rec.RequiredBy),
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(file); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decode parses a snapshot file and returns the registry along with its declared count.
func decode(data []byte) (domain.Registry, *int, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, zerr.Wrap(domain.ErrMalformedCache, "failed to parse package cache: "+err.Error())
	}

	packages, count := raw.Packages, raw.Count
	if packages == nil {
		packages, count = raw.LegacyPackages, raw.LegacyCount
	}
	if packages == nil {
		return nil, nil, zerr.With(zerr.Wrap(domain.ErrMalformedCache, "package cache has no package table"), "field", "packages")
	}

	registry := make(domain.Registry, len(packages))
	for name, data := range packages {
		rec, err := decodeEntry(name, data)
		if err != nil {
			return nil, nil, err
		}
		registry[name] = rec
	}
	return registry, count, nil
}

func decodeEntry(name string, data json.RawMessage) (domain.PackageRecord, error) {
	if name == "" {
		return domain.PackageRecord{}, zerr.Wrap(domain.ErrMalformedCache, "package cache holds an empty package name")
	}

	var entry rawEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		err = zerr.Wrap(domain.ErrMalformedCache, "failed to parse package entry: "+err.Error())
		return domain.PackageRecord{}, zerr.With(err, "package", name)
	}

	switch {
	case entry.Version == nil:
		return domain.PackageRecord{}, missingField(name, domain.FieldVersion)
	case entry.Location == nil:
		return domain.PackageRecord{}, missingField(name, domain.FieldLocation)
	}

	return domain.PackageRecord{
		Name:       name,
		Version:    *entry.Version,
		Location:   *entry.Location,
		Requires:   nonNil(entry.Requires),
		RequiredBy: nonNil(entry.RequiredBy),
	}, nil
}

func missingField(name, field string) error {
	err := zerr.Wrap(domain.ErrMalformedCache, "package entry is missing a field")
	err = zerr.With(err, "package", name)
	return zerr.With(err, "field", field)
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
