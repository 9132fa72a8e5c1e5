package domain

import (
	"maps"
	"slices"
)

// NameSet is an unordered set of package names.
type NameSet map[string]struct{}

// NewNameSet creates a NameSet holding the given names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add inserts name and reports whether it was not present before.
func (s NameSet) Add(name string) bool {
	if _, ok := s[name]; ok {
		return false
	}
	s[name] = struct{}{}
	return true
}

// Contains reports whether name is in the set.
func (s NameSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of names in the set.
func (s NameSet) Len() int {
	return len(s)
}

// Union adds every name of other to s and returns how many were new.
func (s NameSet) Union(other NameSet) int {
	added := 0
	for name := range other {
		if s.Add(name) {
			added++
		}
	}
	return added
}

// Difference returns the names of s that are not in other.
func (s NameSet) Difference(other NameSet) NameSet {
	diff := make(NameSet, len(s))
	for name := range s {
		if !other.Contains(name) {
			diff[name] = struct{}{}
		}
	}
	return diff
}

// IsSubsetOf reports whether every name of s is in other.
func (s NameSet) IsSubsetOf(other NameSet) bool {
	for name := range s {
		if !other.Contains(name) {
			return false
		}
	}
	return true
}

// Clone returns a copy of the set.
func (s NameSet) Clone() NameSet {
	return maps.Clone(s)
}

// Sorted returns the names in lexical order.
func (s NameSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}
