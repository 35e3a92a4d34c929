// Package schedule topologically layers the internal subgraph into the
// minimum number of batches such that every edge runs from an earlier batch
// (or an external node) into a later one.
package schedule

import (
	"sort"

	"github.com/ravdens/Prebake/internal/graph"
	"github.com/ravdens/Prebake/pkg/prebakeerrors"
)

// Batch is one set of internal aliases safe to build in parallel, in
// deterministic (lexicographic) order.
type Batch struct {
	Aliases []string
}

// Schedule is the ordered sequence of batches covering every internal node
// exactly once.
type Schedule struct {
	Batches []Batch
}

// Compute runs Kahn's-algorithm-style in-degree peeling over g's internal
// subgraph, counting only edges whose source is itself internal: an
// external predecessor never gates a batch. A non-nil *prebakeerrors.CycleError
// is returned if any internal node's in-degree never reaches zero.
func Compute(g *graph.Graph) (*Schedule, error) {
	indeg := map[string]int{}
	successors := map[string][]string{}
	var internal []string

	for alias, node := range g.Nodes {
		if node.Kind == graph.Internal {
			internal = append(internal, alias)
			indeg[alias] = 0
		}
	}

	for _, e := range g.Edges {
		from := g.Nodes[e.From]
		if from == nil || from.Kind != graph.Internal {
			continue
		}
		indeg[e.To]++
		successors[e.From] = append(successors[e.From], e.To)
	}

	var batches []Batch
	remaining := len(internal)
	current := rootsWithZeroIndegree(internal, indeg)

	for len(current) > 0 {
		sort.Strings(current)
		batches = append(batches, Batch{Aliases: current})
		remaining -= len(current)

		next := map[string]bool{}
		for _, v := range current {
			for _, s := range successors[v] {
				indeg[s]--
				if indeg[s] == 0 {
					next[s] = true
				}
			}
		}
		current = nil
		for v := range next {
			current = append(current, v)
		}
	}

	if remaining > 0 {
		var residual []string
		for _, alias := range internal {
			if indeg[alias] > 0 {
				residual = append(residual, alias)
			}
		}
		sort.Strings(residual)
		return nil, &prebakeerrors.CycleError{Nodes: residual}
	}

	return &Schedule{Batches: batches}, nil
}

func rootsWithZeroIndegree(internal []string, indeg map[string]int) []string {
	var roots []string
	for _, alias := range internal {
		if indeg[alias] == 0 {
			roots = append(roots, alias)
		}
	}
	return roots
}
