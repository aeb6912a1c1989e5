package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// PackageNode is a node in the dependency graph: a pinned package and the
// canonical names of the packages it requires.
type PackageNode struct {
	Name     InternedString
	Version  InternedString
	Requires []InternedString
}

// Graph is a directed dependency graph over pinned packages.
type Graph struct {
	nodes map[InternedString]PackageNode
	order []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[InternedString]PackageNode),
	}
}

// AddPackage adds a node to the graph.
// It returns an error if a node with the same name already exists.
func (g *Graph) AddPackage(n *PackageNode) error {
	if _, exists := g.nodes[n.Name]; exists {
		return zerr.With(zerr.Wrap(ErrPackageAlreadyExists, "graph node added twice"), "package", n.Name.String())
	}
	g.nodes[n.Name] = *n
	return nil
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Get returns the node with the given canonical name.
func (g *Graph) Get(name InternedString) (PackageNode, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Validate checks for cycles using a depth-first topological sort and
// populates the traversal order. Roots are visited in sorted name order so
// the resulting order is deterministic across runs.
func (g *Graph) Validate() error {
	g.order = make([]InternedString, 0, len(g.nodes))
	visited := make(map[InternedString]int, len(g.nodes)) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		node, exists := g.nodes[u]
		if !exists {
			return zerr.With(zerr.Wrap(ErrMissingDependency, "edge references a package outside the graph"), "dependency", u.String())
		}

		for _, dep := range node.Requires {
			switch visited[dep] {
			case 1:
				return g.cycleError(path, dep)
			case 0:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.order = append(g.order, u)
		return nil
	}

	for _, name := range g.sortedNames() {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

func (g *Graph) sortedNames() []InternedString {
	names := make([]InternedString, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b InternedString) int {
		return strings.Compare(a.String(), b.String())
	})
	return names
}

// cycleError constructs an error carrying the cycle path as metadata.
func (g *Graph) cycleError(path []InternedString, dep InternedString) error {
	start := slices.Index(path, dep)
	var b strings.Builder
	for i := start; i >= 0 && i < len(path); i++ {
		b.WriteString(path[i].String())
		b.WriteString(" -> ")
	}
	b.WriteString(dep.String())
	return zerr.With(zerr.Wrap(ErrCycleDetected, "graph is not acyclic"), "cycle", b.String())
}

// Walk returns an iterator yielding nodes in dependency-first order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[PackageNode] {
	return func(yield func(PackageNode) bool) {
		for _, name := range g.order {
			if !yield(g.nodes[name]) {
				return
			}
		}
	}
}
