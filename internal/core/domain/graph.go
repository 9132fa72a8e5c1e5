// Package domain contains the core domain model of the package dependency graph.
package domain

import (
	"cmp"
	"iter"
	"slices"
)

// Node is a package in the dependency graph.
type Node struct {
	Name    string
	Version string
	// Missing marks a node that is the target of an edge but has no record in the registry.
	Missing bool
}

// Edge means that From requires To.
type Edge struct {
	From string
	To   string
}

// Graph is a directed view over a Registry. It is derived on demand and never stored.
type Graph struct {
	nodes []Node
	edges []Edge
}

// NewGraph derives the dependency graph of a registry.
// Edges to packages absent from the registry are kept and their targets are added as missing nodes.
func NewGraph(r Registry) *Graph {
	g := &Graph{}
	seen := make(NameSet, len(r))

	for _, rec := range r.Records() {
		seen.Add(rec.Name)
		g.nodes = append(g.nodes, Node{Name: rec.Name, Version: rec.Version})
	}

	for _, rec := range r.Records() {
		for _, dep := range rec.Requires {
			g.edges = append(g.edges, Edge{From: rec.Name, To: dep})
			if seen.Add(dep) {
				g.nodes = append(g.nodes, Node{Name: dep, Missing: true})
			}
		}
	}

	slices.SortFunc(g.nodes, func(a, b Node) int { return cmp.Compare(a.Name, b.Name) })
	slices.SortFunc(g.edges, func(a, b Edge) int {
		return cmp.Or(cmp.Compare(a.From, b.From), cmp.Compare(a.To, b.To))
	})
	g.edges = slices.Compact(g.edges)
	return g
}

// Nodes yields the graph nodes sorted by name.
func (g *Graph) Nodes() iter.Seq[Node] {
	return slices.Values(g.nodes)
}

// Edges yields the graph edges sorted by source, then target.
func (g *Graph) Edges() iter.Seq[Edge] {
	return slices.Values(g.edges)
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}
