// Package classify recognizes the three directive shapes that carry
// inter-stage edges in a build file: stage introductions, artifact-copy
// directives, and bind-mount run directives. It is agnostic to casing and
// indentation and operates one (already continuation-stitched) line at a
// time.
package classify

import (
	"regexp"
	"strings"
)

// Kind identifies which directive shape, if any, a line carries.
type Kind int

const (
	// None is a line with no edge-bearing directive: blank, a comment, or
	// an instruction this resolver does not track.
	None Kind = iota
	// StageIntro is a FROM line, optionally naming an alias.
	StageIntro
	// CopyFrom is a COPY --from=<ref> directive.
	CopyFrom
	// MountBind is a RUN --mount=type=bind,...,from=<ref>,... directive.
	MountBind
)

// Directive is the structured record a classified line yields.
type Directive struct {
	Kind Kind

	// BaseRef and Alias are set for StageIntro. Alias is empty for an
	// anonymous stage.
	BaseRef string
	Alias   string

	// Ref is set for CopyFrom and MountBind: the referenced stage or image.
	Ref string
}

var (
	fromRe  = regexp.MustCompile(`(?i)^FROM\s+(\S+)(?:\s+AS\s+(\S+))?\s*$`)
	fromBad = regexp.MustCompile(`(?i)^FROM\b`)
	copyRe  = regexp.MustCompile(`(?i)^COPY\b`)
	mountRe = regexp.MustCompile(`(?i)^RUN\b`)
)

// Line classifies one line, already stripped of a trailing comment is not
// performed here: a whole line beginning with "#" is a comment and yields
// Kind None. A malformed stage line (FROM with no image reference) yields an
// error; the caller is expected to skip the line and continue.
func Line(raw string) (Directive, error) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return Directive{}, nil
	}

	if fromBad.MatchString(line) {
		m := fromRe.FindStringSubmatch(line)
		if m == nil {
			return Directive{}, &lineError{"malformed FROM line: missing image reference"}
		}
		return Directive{Kind: StageIntro, BaseRef: m[1], Alias: m[2]}, nil
	}

	if copyRe.MatchString(line) {
		if ref, ok := flagValue(line, "--from="); ok {
			return Directive{Kind: CopyFrom, Ref: ref}, nil
		}
		return Directive{}, nil
	}

	if mountRe.MatchString(line) {
		if ref, ok := mountFromValue(line); ok {
			return Directive{Kind: MountBind, Ref: ref}, nil
		}
		return Directive{}, nil
	}

	return Directive{}, nil
}

// flagValue extracts the value of a "<flag>value" token, stopping at the
// next whitespace.
func flagValue(line, flag string) (string, bool) {
	idx := strings.Index(line, flag)
	if idx == -1 {
		return "", false
	}
	rest := line[idx+len(flag):]
	if end := strings.IndexAny(rest, " \t"); end != -1 {
		rest = rest[:end]
	}
	if rest == "" {
		return "", false
	}
	return rest, true
}

// mountFromValue locates the "from=" key inside a "--mount=type=bind,..."
// option blob, which may carry several comma-separated key=value fields
// besides from=.
func mountFromValue(line string) (string, bool) {
	idx := strings.Index(line, "--mount=")
	if idx == -1 {
		return "", false
	}
	rest := line[idx+len("--mount="):]
	if end := strings.IndexAny(rest, " \t"); end != -1 {
		rest = rest[:end]
	}
	for _, opt := range strings.Split(rest, ",") {
		k, v, ok := strings.Cut(opt, "=")
		if ok && k == "from" && v != "" {
			return v, true
		}
	}
	return "", false
}

type lineError struct{ msg string }

func (e *lineError) Error() string { return e.msg }
