// Package style centralizes the terminal styling used across diagnostic
// output: symbol quoting, color tags, and key/value rendering for flag and
// environment maps surfaced in error messages.
package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/heroku/color"
)

// Symbol quotes s the way every reference to an alias, path, or tag in a
// diagnostic message is quoted: colored when color is enabled, single-quoted
// otherwise.
func Symbol(s string) string {
	if !color.Enabled() {
		return fmt.Sprintf("'%s'", s)
	}
	return Key(s)
}

var Key = color.MagentaString

var Tip = color.New(color.FgGreen, color.Bold).SprintfFunc()

var Error = color.New(color.FgRed, color.Bold).SprintfFunc()

var Step = func(format string, a ...interface{}) string {
	return color.CyanString("===> "+format, a...)
}

var Prefix = color.CyanString

var TimestampColorCode = color.FgHiBlack

// Map renders m as a single quoted string of "key=value" pairs, keys sorted
// lexicographically for deterministic output, joined by sep and indented
// after the first line by indent.
func Map(m map[string]string, indent, sep string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, m[k]))
	}
	return fmt.Sprintf("'%s'", strings.Join(pairs, sep+indent))
}
