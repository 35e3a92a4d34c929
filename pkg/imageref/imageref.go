// Package imageref parses image reference strings into their name and tag
// components, the way a stage-introduction or --from= token spells them in a
// build file: "name", "name:tag", "registry.example.com/ns/name:tag".
package imageref

import "strings"

// Ref is a parsed image reference. Equality between two internal stages is
// decided on Name alone; Tag is carried for diagnostics only (see the
// tag-agnostic matching rule).
type Ref struct {
	Name string
	Tag  string
}

// Parse splits a reference on its final ":" tag separator, taking care not to
// mistake a registry's "host:port" for a tag separator and ignoring any ":"
// that appears after the last "/" boundary of a digest ("name@sha256:...").
func Parse(raw string) Ref {
	if at := strings.LastIndex(raw, "@"); at != -1 {
		raw = raw[:at]
	}

	lastSlash := strings.LastIndex(raw, "/")
	tail := raw
	if lastSlash != -1 {
		tail = raw[lastSlash+1:]
	}

	if colon := strings.LastIndex(tail, ":"); colon != -1 {
		name := raw[:lastSlash+1+colon]
		return Ref{Name: name, Tag: tail[colon+1:]}
	}

	return Ref{Name: raw}
}

// String renders the reference back in "name" or "name:tag" form.
func (r Ref) String() string {
	if r.Tag == "" {
		return r.Name
	}
	return r.Name + ":" + r.Tag
}
