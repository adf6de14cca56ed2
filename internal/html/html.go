// Package html renders an assembled, flat span stream as HTML:
// HTML-escape literal runs, wrap each span in its tag, guarantee
// well-formed non-overlapping nesting. Tag shape is a pluggable [Format],
// grounded on arborium-highlight's HtmlFormat enum (custom elements vs.
// class-bearing spans, each with an optional prefix).
package html

import (
	"fmt"
	"strings"

	"go.gopad.dev/highlight/internal/tagtable"
	"go.gopad.dev/highlight/types"
)

// Format selects how a resolved tag is turned into markup.
type Format int

const (
	// CustomElements renders `<a-k>...</a-k>`, the compact default.
	CustomElements Format = iota
	// CustomElementsWithPrefix renders `<prefix-k>...</prefix-k>`.
	CustomElementsWithPrefix
	// ClassNames renders `<span class="keyword">...</span>`, using the
	// original capture name rather than the short tag.
	ClassNames
	// ClassNamesWithPrefix renders `<span class="prefix-keyword">...</span>`.
	ClassNamesWithPrefix
)

// AttributeCallback optionally contributes extra HTML attributes (classes,
// ids, inline styles) for a span, mirroring the attribute callback a prior
// Go tree-sitter highlighter exposed, adapted to take the resolved tag
// instead of a theme index.
type AttributeCallback func(capture, language, tag string) string

// Renderer renders span streams to HTML using a fixed [Format], tag
// [tagtable.Table], and optional [AttributeCallback].
type Renderer struct {
	Format   Format
	Prefix   string
	Table    tagtable.Table
	Callback AttributeCallback
}

// NewRenderer returns a Renderer using the default tag table and the
// custom-elements format.
func NewRenderer() *Renderer {
	return &Renderer{Format: CustomElements, Prefix: "a", Table: tagtable.Default}
}

// Render writes source with spans wrapped per r.Format. Spans must already
// be flat and sorted by start, as produced by [assembler.Assemble]; gaps
// between spans and the tail after the last span are emitted as escaped
// literal text with no wrapper.
func (r *Renderer) Render(source []byte, spans []types.Span) string {
	table := r.Table
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
			writeEscaped(&b, source[pos:sp.Start])
		}

		tag, ok := table.Lookup(sp.Capture)
		if !ok || tag == "" {
			writeEscaped(&b, source[sp.Start:sp.End])
			pos = sp.End
			continue
		}

		open, close := r.wrapper(sp.Capture, sp.Language, tag)
		b.WriteString(open)
		writeEscaped(&b, source[sp.Start:sp.End])
		b.WriteString(close)
		pos = sp.End
	}
	if int(pos) < len(source) {
		writeEscaped(&b, source[pos:])
	}
	return b.String()
}

func (r *Renderer) wrapper(capture, language, tag string) (open, close string) {
	var attrs string
	if r.Callback != nil {
		attrs = r.Callback(capture, language, tag)
	}
	if attrs != "" {
		attrs = " " + attrs
	}

	switch r.Format {
	case CustomElementsWithPrefix:
		name := fmt.Sprintf("%s-%s", r.Prefix, tag)
		return fmt.Sprintf("<%s%s>", name, attrs), fmt.Sprintf("</%s>", name)
	case ClassNames:
		return fmt.Sprintf(`<span class="%s"%s>`, capture, attrs), "</span>"
	case ClassNamesWithPrefix:
		return fmt.Sprintf(`<span class="%s-%s"%s>`, r.Prefix, capture, attrs), "</span>"
	default:
		name := fmt.Sprintf("a-%s", tag)
		return fmt.Sprintf("<%s%s>", name, attrs), fmt.Sprintf("</%s>", name)
	}
}

var (
	escapeAmpersand   = []byte("&amp;")
	escapeLessThan    = []byte("&lt;")
	escapeGreaterThan = []byte("&gt;")
	escapeDouble      = []byte("&#34;")
	escapeSingle      = []byte("&#39;")
)

// writeEscaped walks source byte-by-byte rather than decoding runes: the
// five characters it escapes are all single-byte ASCII, so every other
// byte — including an invalid UTF-8 sequence or a literal U+FFFD already
// present in source — passes through unchanged instead of being dropped.
func writeEscaped(b *strings.Builder, source []byte) {
	last := 0
	for i, c := range source {
		var esc []byte
		switch c {
		case '&':
			esc = escapeAmpersand
		case '<':
			esc = escapeLessThan
		case '>':
			esc = escapeGreaterThan
		case '"':
			esc = escapeDouble
		case '\'':
			esc = escapeSingle
		default:
			continue
		}
		b.Write(source[last:i])
		b.Write(esc)
		last = i + 1
	}
	b.Write(source[last:])
}
