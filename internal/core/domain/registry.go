package domain

import (
	"maps"
	"slices"
)

// Registry maps normalized package names to their records.
// A Registry is one complete snapshot of the environment and is never patched in place.
type Registry map[string]PackageRecord

// NewRegistry builds a Registry from the given records, keyed by their names.
func NewRegistry(records ...PackageRecord) Registry {
	r := make(Registry, len(records))
	for _, rec := range records {
		r[rec.Name] = rec
	}
	return r
}

// Get returns the record registered under name.
func (r Registry) Get(name string) (PackageRecord, bool) {
	rec, ok := r[name]
	return rec, ok
}

// Names returns the registered package names in sorted order.
func (r Registry) Names() []string {
	return slices.Sorted(maps.Keys(r))
}

// Records returns the registered records sorted by name.
func (r Registry) Records() []PackageRecord {
	records := make([]PackageRecord, 0, len(r))
	for _, name := range r.Names() {
		records = append(records, r[name])
	}
	return records
}

// Subset returns a Registry restricted to the given names. Names without a record are skipped.
func (r Registry) Subset(names NameSet) Registry {
	sub := make(Registry, names.Len())
	for name := range names {
		if rec, ok := r[name]; ok {
			sub[name] = rec
		}
	}
	return sub
}

// Equal reports whether both registries hold the same records.
func (r Registry) Equal(other Registry) bool {
	return maps.EqualFunc(r, other, PackageRecord.Equal)
}
