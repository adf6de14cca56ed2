// Package types holds the wire-level data model shared by every layer of
// the highlight engine: grammar plugins, providers, the engine itself, and
// the cross-boundary document orchestrator. Everything here is a plain
// value type with no behaviour, so it can cross goroutine, process, and
// WASM-instance boundaries without caring who's on the other side.
package types

import "fmt"

// Span is a half-open byte range `[Start, End)` tagged with the capture name
// that produced it and the language that owns it. Spans returned directly
// from a [Plugin]'s Parse are raw: they may nest or overlap arbitrarily.
// Spans returned from the engine's Highlight are flat: sorted by Start
// ascending and pairwise non-overlapping.
type Span struct {
	Start   uint32
	End     uint32
	Capture string
	// Language is empty on spans fresh out of a plugin (the plugin doesn't
	// know its own name in the ABI sense); the engine stamps it in once the
	// span is attributed to a layer.
	Language string
}

// Injection is a byte range inside a parent source that should be parsed
// and highlighted as a different language. Start/End are in the producing
// plugin's own coordinate space (never the top-level buffer).
type Injection struct {
	Start           uint32
	End             uint32
	Language        string
	IncludeChildren bool
}

// ParseResult is everything a single Parse call produces. All offsets are
// in the plugin's current text buffer.
type ParseResult struct {
	Spans      []Span
	Injections []Injection
}

// Edit describes a single incremental mutation of a session's text buffer,
// mirroring tree-sitter's own edit descriptor so it can be forwarded
// directly to the underlying parser.
type Edit struct {
	StartByte  uint32
	OldEndByte uint32
	NewEndByte uint32

	StartRow, StartColumn       uint32
	OldEndRow, OldEndColumn     uint32
	NewEndRow, NewEndColumn     uint32
}

// ParseError is returned by a plugin when the parser fatally fails. A
// partial, error-recovered tree is not a ParseError — it is a successful
// ParseResult, possibly with fewer spans than expected.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// HighlightSpan is the span shape exposed across the host ABI: the same as
// Span, but language is always populated (never inferred from a layer
// stack the caller can't see).
type HighlightSpan = Span
