// Package bake renders a schedule and its backing graph into a
// "docker buildx bake" HCL file: one target block per internal, named stage
// and one group block per build batch.
package bake

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/ravdens/Prebake/internal/graph"
	"github.com/ravdens/Prebake/internal/schedule"
)

// Render produces the bytes of a bake file covering every internal,
// non-anonymous node in g, grouped into batches per sch. tag is applied to
// every crossover target (a stage referenced from outside its own origin
// file). Output is deterministic: target and group blocks appear in the
// same order on every call given the same inputs.
func Render(g *graph.Graph, sch *schedule.Schedule, tag string) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for _, alias := range sortedTargetAliases(g) {
		node := g.Nodes[alias]
		block := body.AppendNewBlock("target", []string{alias})
		tb := block.Body()
		tb.SetAttributeValue("context", cty.StringVal(filepath.Dir(node.Stage.OriginFile)))
		tb.SetAttributeValue("dockerfile", cty.StringVal(filepath.Base(node.Stage.OriginFile)))
		tb.SetAttributeValue("target", cty.StringVal(alias))
		if g.IsCrossover(alias) && tag != "" {
			tb.SetAttributeValue("tags", cty.ListVal([]cty.Value{cty.StringVal(alias + ":" + tag)}))
		}
		body.AppendNewline()
	}

	for i, batch := range sch.Batches {
		targets := make([]cty.Value, 0, len(batch.Aliases))
		for _, alias := range batch.Aliases {
			if !isNamedInternal(g, alias) {
				continue
			}
			targets = append(targets, cty.StringVal(alias))
		}
		if len(targets) == 0 {
			continue
		}
		block := body.AppendNewBlock("group", []string{fmt.Sprintf("group%d", i+1)})
		block.Body().SetAttributeValue("targets", cty.ListVal(targets))
		body.AppendNewline()
	}

	return f.Bytes()
}

// sortedTargetAliases returns every internal, non-anonymous alias in g,
// lexicographically, excluding anonymous stages that have no addressable
// name a bake target could use.
func sortedTargetAliases(g *graph.Graph) []string {
	var aliases []string
	for alias := range g.Nodes {
		if isNamedInternal(g, alias) {
			aliases = append(aliases, alias)
		}
	}
	sort.Strings(aliases)
	return aliases
}

func isNamedInternal(g *graph.Graph, alias string) bool {
	node := g.Nodes[alias]
	return node != nil && node.Kind == graph.Internal && node.Stage != nil && !node.Stage.Anonymous
}
