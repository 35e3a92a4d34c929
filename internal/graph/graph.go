// Package graph merges the per-file stage lists produced by
// internal/dockerfile into one global, classified dependency graph: every
// reference is resolved against the alias table or classified external, and
// duplicate edges collapse.
package graph

import (
	"sort"

	"github.com/ravdens/Prebake/internal/dockerfile"
	"github.com/ravdens/Prebake/internal/stringset"
	"github.com/ravdens/Prebake/pkg/imageref"
	"github.com/ravdens/Prebake/pkg/prebakeerrors"
)

// NodeKind classifies a node in the merged graph.
type NodeKind int

const (
	Internal NodeKind = iota
	ExternalBase
	ExternalDep
)

// Node is one distinct image reference in the parsed corpus.
type Node struct {
	Alias string
	Kind  NodeKind
	// Stage is the declaring stage for Internal nodes, nil otherwise.
	Stage *dockerfile.Stage
}

// Edge is a directed "from must exist before to builds" relation between two
// internal aliases.
type Edge struct {
	From string
	To   string
	Kind dockerfile.EdgeKind
}

// Graph is the merged, classified dependency graph across every parsed
// build file.
type Graph struct {
	Nodes map[string]*Node
	Edges []Edge

	// External lists, sorted, every alias classified ExternalBase or
	// ExternalDep, for the operator-facing diagnostics report.
	External []string
	// Dependents maps an external alias to the sorted internal aliases
	// that reference it.
	Dependents map[string][]string

	Collisions    []*prebakeerrors.AliasCollision
	TagMismatches []*prebakeerrors.TagMismatch
}

// Build merges every parsed stage into one graph. It never fails: unresolved
// references become external nodes, not errors.
func Build(stages []*dockerfile.Stage) *Graph {
	g := &Graph{
		Nodes:      map[string]*Node{},
		Dependents: map[string][]string{},
	}

	canonical := buildAliasTable(stages, g)

	for _, s := range stages {
		node := canonicalNodeStage(s, canonical)
		if _, exists := g.Nodes[node.Alias]; !exists {
			g.Nodes[node.Alias] = &Node{Alias: node.Alias, Kind: Internal, Stage: node}
		}
	}

	usedAsBase, usedAsArtifact, tagsSeen := g.resolveEdges(stages, canonical)

	// An internal alias is never itself declared with a tag, so its own
	// declared tag is always "". Any non-empty reference tag therefore
	// already diverges from it and warrants a mismatch warning, even when
	// only a single such reference tag was ever seen.
	for alias, tags := range tagsSeen {
		if len(tags) >= 1 {
			sorted := append([]string(nil), tags...)
			sort.Strings(sorted)
			g.TagMismatches = append(g.TagMismatches, &prebakeerrors.TagMismatch{Alias: alias, Tags: sorted})
		}
	}
	sort.Slice(g.TagMismatches, func(i, j int) bool { return g.TagMismatches[i].Alias < g.TagMismatches[j].Alias })

	var externalNames []string
	for name := range usedAsBase {
		externalNames = append(externalNames, name)
	}
	for name := range usedAsArtifact {
		externalNames = append(externalNames, name)
	}
	for name := range stringset.FromSlice(externalNames) {
		kind := ExternalDep
		if usedAsBase[name] && !usedAsArtifact[name] {
			kind = ExternalBase
		}
		g.Nodes[name] = &Node{Alias: name, Kind: kind}
		g.External = append(g.External, name)
	}
	sort.Strings(g.External)

	for alias := range g.Dependents {
		sort.Strings(g.Dependents[alias])
	}

	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].From != g.Edges[j].From {
			return g.Edges[i].From < g.Edges[j].From
		}
		return g.Edges[i].To < g.Edges[j].To
	})

	return g
}

// buildAliasTable maps every non-synthetic alias to its first-declared
// stage, and records AliasCollisions for every alias declared in more than
// one origin file.
func buildAliasTable(stages []*dockerfile.Stage, g *Graph) map[string]*dockerfile.Stage {
	canonical := map[string]*dockerfile.Stage{}
	files := map[string][]string{}

	for _, s := range stages {
		if s.Anonymous {
			continue
		}
		if _, ok := canonical[s.Alias]; !ok {
			canonical[s.Alias] = s
		}
		files[s.Alias] = appendUnique(files[s.Alias], s.OriginFile)
	}

	var aliases []string
	for alias, origins := range files {
		if len(origins) > 1 {
			aliases = append(aliases, alias)
		}
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		g.Collisions = append(g.Collisions, &prebakeerrors.AliasCollision{Alias: alias, Files: files[alias]})
	}

	return canonical
}

// canonicalNodeStage returns the stage that should back s's node: itself if
// anonymous, or the first-declared stage sharing its alias otherwise. An
// anonymous alias is "<basename>#<position>", so anonymous stages at the same
// position in files with the same base name share one node.
func canonicalNodeStage(s *dockerfile.Stage, canonical map[string]*dockerfile.Stage) *dockerfile.Stage {
	if s.Anonymous {
		return s
	}
	if c, ok := canonical[s.Alias]; ok {
		return c
	}
	return s
}

type edgeKey struct{ from, to string }

func (g *Graph) resolveEdges(stages []*dockerfile.Stage, canonical map[string]*dockerfile.Stage) (usedAsBase, usedAsArtifact map[string]bool, tagsSeen map[string][]string) {
	usedAsBase = map[string]bool{}
	usedAsArtifact = map[string]bool{}
	tagsSeen = map[string][]string{}
	seenEdges := map[edgeKey]bool{}

	recordTag := func(alias, tag string) {
		if tag == "" {
			return
		}
		for _, t := range tagsSeen[alias] {
			if t == tag {
				return
			}
		}
		tagsSeen[alias] = append(tagsSeen[alias], tag)
	}

	for _, s := range stages {
		fromAlias := s.Alias
		for _, e := range s.Edges {
			ref := imageref.Parse(e.Ref)
			if _, ok := canonical[ref.Name]; ok {
				recordTag(ref.Name, ref.Tag)
				if ref.Name == fromAlias {
					continue
				}
				key := edgeKey{ref.Name, fromAlias}
				if !seenEdges[key] {
					seenEdges[key] = true
					g.Edges = append(g.Edges, Edge{From: ref.Name, To: fromAlias, Kind: e.Kind})
				}
				continue
			}

			if e.Kind == dockerfile.EdgeBase {
				usedAsBase[ref.Name] = true
			} else {
				usedAsArtifact[ref.Name] = true
			}
			g.Dependents[ref.Name] = appendUnique(g.Dependents[ref.Name], fromAlias)
		}
	}

	return usedAsBase, usedAsArtifact, tagsSeen
}

func appendUnique(list []string, v string) []string {
	for _, item := range list {
		if item == v {
			return list
		}
	}
	return append(list, v)
}

// IsCrossover reports whether an internal alias is referenced as a
// dependency from a stage declared in a different file than its own.
func (g *Graph) IsCrossover(alias string) bool {
	node, ok := g.Nodes[alias]
	if !ok || node.Kind != Internal || node.Stage == nil {
		return false
	}
	for _, e := range g.Edges {
		if e.From != alias {
			continue
		}
		to := g.Nodes[e.To]
		if to != nil && to.Kind == Internal && to.Stage != nil && to.Stage.OriginFile != node.Stage.OriginFile {
			return true
		}
	}
	return false
}
