package dockerfile_test

import (
	"testing"

	"github.com/ravdens/Prebake/internal/dockerfile"
	h "github.com/ravdens/Prebake/testhelpers"
)

func TestParseLinearChain(t *testing.T) {
	src := []byte(`FROM golang:1.21 AS build
RUN go build -o /out ./...
FROM scratch AS export
COPY --from=build /out /out
`)
	stages, errs := dockerfile.Parse("app/Dockerfile", src)
	h.AssertEq(t, len(errs), 0)
	h.AssertEq(t, len(stages), 2)

	h.AssertEq(t, stages[0].Alias, "build")
	h.AssertEq(t, stages[0].BaseRef, "golang:1.21")
	h.AssertEq(t, stages[0].Position, 0)
	h.AssertEq(t, stages[0].Anonymous, false)

	h.AssertEq(t, stages[1].Alias, "export")
	h.AssertEq(t, len(stages[1].Edges), 2)
	h.AssertEq(t, stages[1].Edges[0], dockerfile.Edge{Kind: dockerfile.EdgeBase, Ref: "scratch"})
	h.AssertEq(t, stages[1].Edges[1], dockerfile.Edge{Kind: dockerfile.EdgeCopy, Ref: "build"})
}

func TestParseAnonymousStage(t *testing.T) {
	src := []byte("FROM ubuntu:plucky\n")
	stages, errs := dockerfile.Parse("dir/Dockerfile", src)
	h.AssertEq(t, len(errs), 0)
	h.AssertEq(t, len(stages), 1)
	h.AssertEq(t, stages[0].Anonymous, true)
	h.AssertEq(t, stages[0].Alias, "Dockerfile#0")
}

func TestParseMountBind(t *testing.T) {
	src := []byte(`FROM golang:1.21 AS deps
FROM golang:1.21 AS q
RUN --mount=type=bind,from=deps,source=/f,target=/g cp /g /h
`)
	stages, _ := dockerfile.Parse("Dockerfile", src)
	h.AssertEq(t, len(stages), 2)
	h.AssertEq(t, stages[1].Edges[1], dockerfile.Edge{Kind: dockerfile.EdgeMount, Ref: "deps"})
}

func TestParseSkipsComments(t *testing.T) {
	src := []byte("# FROM ghost AS ghost\nFROM real AS real\n")
	stages, errs := dockerfile.Parse("Dockerfile", src)
	h.AssertEq(t, len(errs), 0)
	h.AssertEq(t, len(stages), 1)
	h.AssertEq(t, stages[0].Alias, "real")
}

func TestParseLineContinuation(t *testing.T) {
	src := []byte("FROM golang:1.21 AS build\nRUN echo one && \\\n    echo two\n")
	stages, errs := dockerfile.Parse("Dockerfile", src)
	h.AssertEq(t, len(errs), 0)
	h.AssertEq(t, len(stages), 1)
}

func TestParseMalformedFromSkipped(t *testing.T) {
	src := []byte("FROM\nFROM golang:1.21 AS build\n")
	stages, errs := dockerfile.Parse("Dockerfile", src)
	h.AssertEq(t, len(errs), 1)
	h.AssertEq(t, len(stages), 1)
	h.AssertEq(t, stages[0].Alias, "build")
}
