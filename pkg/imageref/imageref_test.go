package imageref_test

import (
	"testing"

	"github.com/ravdens/Prebake/pkg/imageref"
	h "github.com/ravdens/Prebake/testhelpers"
)

func TestParse(t *testing.T) {
	cases := []struct {
		raw  string
		want imageref.Ref
	}{
		{"ubuntu", imageref.Ref{Name: "ubuntu"}},
		{"ubuntu:plucky", imageref.Ref{Name: "ubuntu", Tag: "plucky"}},
		{"builder", imageref.Ref{Name: "builder"}},
		{"k:prebake", imageref.Ref{Name: "k", Tag: "prebake"}},
		{"registry.example.com:5000/ns/name", imageref.Ref{Name: "registry.example.com:5000/ns/name"}},
		{"registry.example.com:5000/ns/name:v2", imageref.Ref{Name: "registry.example.com:5000/ns/name", Tag: "v2"}},
		{"ns/name@sha256:deadbeef", imageref.Ref{Name: "ns/name"}},
	}

	for _, c := range cases {
		got := imageref.Parse(c.raw)
		h.AssertEq(t, got, c.want)
	}
}

func TestString(t *testing.T) {
	h.AssertEq(t, imageref.Ref{Name: "x"}.String(), "x")
	h.AssertEq(t, imageref.Ref{Name: "x", Tag: "latest"}.String(), "x:latest")
}
