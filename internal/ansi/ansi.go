// Package ansi renders an assembled span stream as ANSI escape sequences
// for terminal output, the way arborium-highlight's render.rs does for its
// CLI. It reuses the same flat, non-overlapping span stream the HTML
// renderer consumes; there is no separate theme engine, only a small
// built-in tag -> SGR color table, since full theme support (Helix-style
// TOML themes, CSS generation) is an explicitly out-of-scope external
// collaborator concern.
package ansi

import (
	"strings"

	"go.gopad.dev/highlight/internal/tagtable"
	"go.gopad.dev/highlight/types"
)

// colors maps a tag suffix (see tagtable) to an SGR parameter.
var colors = map[string]string{
	"k":  "35", // keyword: magenta
	"f":  "34", // function: blue
	"s":  "32", // string: green
	"c":  "90", // comment: bright black
	"t":  "36", // type: cyan
	"v":  "37", // variable: white
	"co": "33", // constant: yellow
	"n":  "33", // number: yellow
	"o":  "37", // operator: white
	"p":  "37", // punctuation: white
	"pr": "36", // property: cyan
	"at": "33", // attribute: yellow
	"tg": "31", // tag: red
	"m":  "35", // macro: magenta
	"l":  "33", // label: yellow
	"ns": "36", // namespace: cyan
	"cr": "34", // constructor: blue
	"er": "91", // error: bright red
}

const reset = "\x1b[0m"

// Render writes source to a string, wrapping each span whose tag has a
// known color in the corresponding SGR escape sequence. Table defaults to
// [tagtable.Default] when nil.
func Render(source []byte, spans []types.Span, table tagtable.Table) string {
	if table == nil {
		table = tagtable.Default
	}

	var b strings.Builder
	pos := uint32(0)
	for _, sp := range spans {
		if sp.Start < pos || sp.End <= sp.Start || int(sp.End) > len(source) {
			continue
		}
		if sp.Start > pos {
			b.Write(source[pos:sp.Start])
		}

		tag, _ := table.Lookup(sp.Capture)
		color, ok := colors[tag]
		if !ok {
			b.Write(source[sp.Start:sp.End])
			pos = sp.End
			continue
		}

		b.WriteString("\x1b[")
		b.WriteString(color)
		b.WriteByte('m')
		b.Write(source[sp.Start:sp.End])
		b.WriteString(reset)
		pos = sp.End
	}
	if int(pos) < len(source) {
		b.Write(source[pos:])
	}
	return b.String()
}
