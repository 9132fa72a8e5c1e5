// Package resolver implements the traversals of the package dependency graph.
package resolver

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/zerr"
)

// DanglingEdge records a dependency edge whose target is absent from the registry.
type DanglingEdge struct {
	// Package is the name holding the edge.
	Package string
	// Missing is the name the edge points to.
	Missing string
	// Reverse is true for a Required-by edge and false for a Requires edge.
	Reverse bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLenient makes dangling references warnings instead of errors.
func WithLenient(lenient bool) Option {
	return func(r *Resolver) {
		r.lenient = lenient
	}
}

// WithMemoSize sets the number of transitive closures kept in memory.
func WithMemoSize(size int) Option {
	return func(r *Resolver) {
		if size > 0 {
			r.memoSize = size
		}
	}
}

// Resolver answers dependency queries over a single registry snapshot.
// A Resolver is not safe for concurrent use.
type Resolver struct {
	registry domain.Registry
	lenient  bool
	memoSize int
	memo     *lru.Cache[string, domain.NameSet]
	dangling []DanglingEdge
	reported map[DanglingEdge]struct{}
}

// New creates a Resolver over the given registry.
func New(registry domain.Registry, opts ...Option) *Resolver {
	r := &Resolver{
		registry: registry,
		memoSize: domain.DefaultMemoSize,
		reported: make(map[DanglingEdge]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}

	memo, err := lru.New[string, domain.NameSet](r.memoSize)
	if err == nil {
		r.memo = memo
	}
	return r
}

// Dangling returns the dangling edges met so far in lenient mode, in discovery order.
func (r *Resolver) Dangling() []DanglingEdge {
	return r.dangling
}

// Dependencies returns the transitive dependency closure of start, start included.
// The result must not be modified by the caller.
func (r *Resolver) Dependencies(start string) (domain.NameSet, error) {
	if r.memo != nil {
		if closure, ok := r.memo.Get(start); ok {
			return closure, nil
		}
	}

	closure, err := r.closure(start)
	if err != nil {
		return nil, err
	}

	if r.memo != nil {
		r.memo.Add(start, closure)
	}
	return closure, nil
}

// closure walks the requires edges breadth first.
func (r *Resolver) closure(start string) (domain.NameSet, error) {
	rec, ok := r.registry.Get(start)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownPackage, "failed to resolve dependencies"), "package", start)
	}

	visited := domain.NewNameSet(start)
	queue := []domain.PackageRecord{rec}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, name := range current.Requires {
			if !visited.Add(name) {
				continue
			}

			next, ok := r.registry.Get(name)
			if !ok {
				if err := r.dangle(DanglingEdge{Package: current.Name, Missing: name}); err != nil {
					return nil, err
				}
				continue
			}
			queue = append(queue, next)
		}
	}

	return visited, nil
}

// Unique returns the part of start's closure that nothing outside that closure depends on,
// i.e. the packages that would be orphaned if start were removed.
func (r *Resolver) Unique(start string) (domain.NameSet, error) {
	closure, err := r.Dependencies(start)
	if err != nil {
		return nil, err
	}

	shared := make(domain.NameSet)
	members := closure.Sorted()

	// Taint spreads until a full pass adds nothing.
	for changed := true; changed; {
		changed = false

		for _, name := range members {
			if shared.Contains(name) {
				continue
			}

			grown, err := r.taint(name, closure, shared)
			if err != nil {
				return nil, err
			}
			changed = changed || grown
		}
	}

	return closure.Difference(shared), nil
}

// taint folds into shared the closures of every dependent of name that lies outside
// closure or is already shared. It reports whether shared grew.
func (r *Resolver) taint(name string, closure, shared domain.NameSet) (bool, error) {
	rec, ok := r.registry.Get(name)
	if !ok {
		// A dangling requires target has no known dependents.
		return false, nil
	}

	grown := false
	for _, dependent := range rec.RequiredBy {
		if closure.Contains(dependent) && !shared.Contains(dependent) {
			continue
		}

		tainted, err := r.Dependencies(dependent)
		if errors.Is(err, domain.ErrUnknownPackage) {
			if err := r.dangle(DanglingEdge{Package: name, Missing: dependent, Reverse: true}); err != nil {
				return false, err
			}
			// The absent dependent still needs name and everything name needs.
			tainted, err = r.Dependencies(name)
		}
		if err != nil {
			return false, err
		}

		if shared.Union(tainted) > 0 {
			grown = true
		}
	}
	return grown, nil
}

// dangle reports a dangling edge, failing unless the resolver is lenient.
func (r *Resolver) dangle(edge DanglingEdge) error {
	if !r.lenient {
		err := zerr.Wrap(domain.ErrDanglingReference, "dependency edge points outside the registry")
		err = zerr.With(err, "package", edge.Package)
		return zerr.With(err, "missing", edge.Missing)
	}

	if _, seen := r.reported[edge]; !seen {
		r.reported[edge] = struct{}{}
		r.dangling = append(r.dangling, edge)
	}
	return nil
}
