package bake_test

import (
	"strings"
	"testing"

	"github.com/ravdens/Prebake/internal/bake"
	"github.com/ravdens/Prebake/internal/dockerfile"
	"github.com/ravdens/Prebake/internal/graph"
	"github.com/ravdens/Prebake/internal/schedule"
	h "github.com/ravdens/Prebake/testhelpers"
)

func parse(t *testing.T, file, src string) []*dockerfile.Stage {
	t.Helper()
	stages, errs := dockerfile.Parse(file, []byte(src))
	h.AssertEq(t, len(errs), 0)
	return stages
}

func TestRenderLinearChain(t *testing.T) {
	stages := parse(t, "Dockerfile", "FROM busybox AS a\nFROM a AS b\n")
	g := graph.Build(stages)
	sch, err := schedule.Compute(g)
	h.AssertNil(t, err)

	out := string(bake.Render(g, sch, "prebake"))

	h.AssertContains(t, out, `target "a"`)
	h.AssertContains(t, out, `target "b"`)
	h.AssertContains(t, out, `group "group1"`)
	h.AssertContains(t, out, `group "group2"`)
	h.AssertContains(t, out, `targets = ["a"]`)
	h.AssertContains(t, out, `targets = ["b"]`)
}

func TestRenderCrossoverTargetGetsTag(t *testing.T) {
	var stages []*dockerfile.Stage
	stages = append(stages, parse(t, "r/Dockerfile", "FROM busybox AS r\n")...)
	stages = append(stages, parse(t, "l/Dockerfile", "FROM r AS l\n")...)
	g := graph.Build(stages)
	sch, err := schedule.Compute(g)
	h.AssertNil(t, err)

	out := string(bake.Render(g, sch, "prebake"))
	h.AssertContains(t, out, `tags       = ["r:prebake"]`)

	idx := strings.Index(out, `target "l"`)
	h.AssertEq(t, idx >= 0, true)
	end := strings.Index(out[idx:], "}")
	h.AssertEq(t, strings.Contains(out[idx:idx+end], "tags"), false)
}

func TestRenderAnonymousStageExcludedFromTargetsAndGroups(t *testing.T) {
	stages := parse(t, "Dockerfile", "FROM busybox\nFROM busybox AS named\n")
	g := graph.Build(stages)
	sch, err := schedule.Compute(g)
	h.AssertNil(t, err)

	out := string(bake.Render(g, sch, "prebake"))
	h.AssertContains(t, out, `target "named"`)
	h.AssertEq(t, strings.Contains(out, "Dockerfile#0"), false)
}

func TestRenderDeterministicAcrossCalls(t *testing.T) {
	var stages []*dockerfile.Stage
	stages = append(stages, parse(t, "r/Dockerfile", "FROM busybox AS r\n")...)
	stages = append(stages, parse(t, "l/Dockerfile", "FROM r AS l\n")...)
	stages = append(stages, parse(t, "m/Dockerfile", "FROM r AS m\n")...)

	g1 := graph.Build(stages)
	sch1, err := schedule.Compute(g1)
	h.AssertNil(t, err)
	out1 := bake.Render(g1, sch1, "prebake")

	g2 := graph.Build(stages)
	sch2, err := schedule.Compute(g2)
	h.AssertNil(t, err)
	out2 := bake.Render(g2, sch2, "prebake")

	h.AssertEq(t, string(out1), string(out2))
}
