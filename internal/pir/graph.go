package pir

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/dominikbraun/graph"
)

// includeVertexPrefix marks graph vertices that stand for include targets
// rather than enumerated units.
const includeVertexPrefix = "include:"

// DependencyGraph turns per-file include targets into directed edges.
// Edges keep their recording order, duplicates included; the underlying
// graph holds the distinct vertices and edges for summary statistics.
type DependencyGraph struct {
	known map[string]bool
	edges []IncludeEdge
	g     graph.Graph[string, string]
}

// NewDependencyGraph creates a graph over the given units.
func NewDependencyGraph(units []Unit) *DependencyGraph {
	dg := &DependencyGraph{
		known: make(map[string]bool, len(units)),
		g:     graph.New(graph.StringHash, graph.Directed()),
	}
	for _, u := range units {
		dg.known[u.ID] = true
		_ = dg.g.AddVertex(u.ID)
	}
	return dg
}

// Add records an include edge. Edges whose owner is not a known unit are
// dropped and Add reports false.
func (dg *DependencyGraph) Add(edge IncludeEdge) bool {
	if !dg.known[edge.UnitID] {
		return false
	}
	dg.edges = append(dg.edges, edge)

	// Both calls only fail on duplicates, which stay in the ordered edge list.
	target := includeVertexPrefix + edge.Target
	_ = dg.g.AddVertex(target)
	_ = dg.g.AddEdge(edge.UnitID, target)
	return true
}

// Edges returns the recorded edges in recording order.
func (dg *DependencyGraph) Edges() []IncludeEdge {
	return dg.edges
}

// Counts returns the number of distinct vertices and edges.
func (dg *DependencyGraph) Counts() (nodes, edges int, err error) {
	nodes, err = dg.g.Order()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count graph vertices: %w", err)
	}
	edges, err = dg.g.Size()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count graph edges: %w", err)
	}
	return nodes, edges, nil
}

// TargetCount is an include target and the number of distinct units including it.
type TargetCount struct {
	Target string
	Units  int
}

// TopTargets returns up to n include targets ordered by the number of
// distinct including units, most included first, ties by name.
func (dg *DependencyGraph) TopTargets(n int) ([]TargetCount, error) {
	pred, err := dg.g.PredecessorMap()
	if err != nil {
		return nil, fmt.Errorf("failed to build predecessor map: %w", err)
	}

	var counts []TargetCount
	for vertex, in := range pred {
		target, ok := strings.CutPrefix(vertex, includeVertexPrefix)
		if !ok {
			continue
		}
		counts = append(counts, TargetCount{Target: target, Units: len(in)})
	}
	slices.SortFunc(counts, func(a, b TargetCount) int {
		if c := cmp.Compare(b.Units, a.Units); c != 0 {
			return c
		}
		return cmp.Compare(a.Target, b.Target)
	})

	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts, nil
}
