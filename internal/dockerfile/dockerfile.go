// Package dockerfile consumes one build file's source and yields the
// ordered list of stages it declares, each carrying its base reference and
// the edges (copy/mount) referenced inside its body.
package dockerfile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ravdens/Prebake/internal/classify"
	"github.com/ravdens/Prebake/pkg/prebakeerrors"
)

// EdgeKind names where an Edge came from in the source.
type EdgeKind int

const (
	EdgeBase EdgeKind = iota
	EdgeCopy
	EdgeMount
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeBase:
		return "base"
	case EdgeCopy:
		return "copy"
	case EdgeMount:
		return "mount"
	default:
		return "unknown"
	}
}

// Edge is a reference to another stage or image, in source order.
type Edge struct {
	Kind EdgeKind
	Ref  string
}

// Stage is one build unit declared by a FROM line.
type Stage struct {
	Alias      string
	BaseRef    string
	OriginFile string
	Position   int
	Anonymous  bool
	Edges      []Edge
}

// Parse walks the (continuation-stitched) lines of one build file and
// returns its stages in declaration order, plus any non-fatal parse errors
// encountered along the way. A malformed stage line is skipped; parsing
// continues with the next line.
func Parse(originFile string, contents []byte) ([]*Stage, []error) {
	basename := filepath.Base(originFile)
	physical := stitchContinuations(contents)

	var stages []*Stage
	var errs []error
	var current *Stage

	for _, ln := range physical {
		d, err := classify.Line(ln.text)
		if err != nil {
			errs = append(errs, &prebakeerrors.ParseError{File: originFile, Line: ln.number, Msg: err.Error()})
			continue
		}

		switch d.Kind {
		case classify.StageIntro:
			alias := d.Alias
			anonymous := alias == ""
			if anonymous {
				alias = fmt.Sprintf("%s#%d", basename, len(stages))
			}
			current = &Stage{
				Alias:      alias,
				BaseRef:    d.BaseRef,
				OriginFile: originFile,
				Position:   len(stages),
				Anonymous:  anonymous,
				Edges:      []Edge{{Kind: EdgeBase, Ref: d.BaseRef}},
			}
			stages = append(stages, current)
		case classify.CopyFrom:
			if current != nil {
				current.Edges = append(current.Edges, Edge{Kind: EdgeCopy, Ref: d.Ref})
			}
		case classify.MountBind:
			if current != nil {
				current.Edges = append(current.Edges, Edge{Kind: EdgeMount, Ref: d.Ref})
			}
		}
	}

	return stages, errs
}

type physicalLine struct {
	number int
	text   string
}

// stitchContinuations joins lines ending in a trailing "\" with the line
// that follows, so classify.Line never has to reason about continuations.
// The joined text collapses onto one logical line, with one space inserted
// where each backslash was; the reported line number is that of the first
// physical line.
func stitchContinuations(contents []byte) []physicalLine {
	raw := strings.Split(string(contents), "\n")
	var out []physicalLine

	i := 0
	for i < len(raw) {
		startLine := i + 1
		text := raw[i]
		for {
			trimmed := strings.TrimRight(text, " \t\r")
			if !strings.HasSuffix(trimmed, `\`) || i+1 >= len(raw) {
				text = trimmed
				break
			}
			text = strings.TrimSuffix(trimmed, `\`) + " " + strings.TrimLeft(raw[i+1], " \t")
			i++
		}
		out = append(out, physicalLine{number: startLine, text: text})
		i++
	}

	return out
}
