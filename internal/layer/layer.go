// Package layer holds the injection-splicing and result-validation logic
// shared by the single-shot engine (package highlight) and the
// Cross-Boundary Document Orchestrator (package document), so the two
// callers of the Grammar Plugin ABI agree on exactly one implementation
// of "how a child layer's spans get merged into its parent's."
package layer

import (
	"fmt"
	"sort"

	"go.gopad.dev/highlight/plugin"
	"go.gopad.dev/highlight/types"
)

// ParentSentinel is the placeholder language name a [plugin.TreeSitterPlugin]
// emits for an `injection.parent` property, since a single Parse call
// can't see its own caller's language. Callers resolve it to the actual
// parent language before using an injection's Language field.
const ParentSentinel = "\x00parent"

// ClipRange clips [start,end) to [0,sourceLen), reporting ok=false if the
// clipped range is empty.
func ClipRange(start, end, sourceLen uint32) (clippedStart, clippedEnd uint32, ok bool) {
	if start > sourceLen {
		start = sourceLen
	}
	if end > sourceLen {
		end = sourceLen
	}
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}

// Validate rejects a plugin result that breaks the Plugin ABI contract:
// any span or injection outside the source buffer, or with Start > End.
func Validate(result types.ParseResult, sourceLen int) error {
	for _, sp := range result.Spans {
		if sp.Start > sp.End || int(sp.End) > sourceLen {
			return fmt.Errorf("%w: span [%d,%d) outside source of length %d", plugin.ErrProtocolViolation, sp.Start, sp.End, sourceLen)
		}
	}
	for _, inj := range result.Injections {
		if inj.Start > inj.End || int(inj.End) > sourceLen {
			return fmt.Errorf("%w: injection [%d,%d) outside source of length %d", plugin.ErrProtocolViolation, inj.Start, inj.End, sourceLen)
		}
	}
	return nil
}

// Splice merges a resolved injection's child spans into the parent's flat
// span list, always returning a non-overlapping result. When
// includeChildren is true the parent's spans are clipped around each
// individual child span (so parent highlighting survives in the gaps
// between children within [start,end) but never overlaps a child); when
// false, the parent's spans are suppressed across the whole range —
// contained spans dropped, overlapping spans clipped at the boundary —
// before the children are appended.
func Splice(parentSpans []types.Span, start, end uint32, includeChildren bool, children []types.Span) []types.Span {
	if includeChildren {
		out := append([]types.Span{}, parentSpans...)
		for _, child := range children {
			clipped := make([]types.Span, 0, len(out))
			for _, sp := range out {
				clipped = append(clipped, clipOutside(sp, child.Start, child.End)...)
			}
			out = clipped
		}
		return append(out, children...)
	}

	out := make([]types.Span, 0, len(parentSpans)+len(children))
	for _, sp := range parentSpans {
		out = append(out, clipOutside(sp, start, end)...)
	}
	return append(out, children...)
}

func clipOutside(sp types.Span, lo, hi uint32) []types.Span {
	if sp.End <= lo || sp.Start >= hi {
		return []types.Span{sp}
	}
	var out []types.Span
	if sp.Start < lo {
		out = append(out, types.Span{Start: sp.Start, End: lo, Capture: sp.Capture, Language: sp.Language})
	}
	if sp.End > hi {
		out = append(out, types.Span{Start: hi, End: sp.End, Capture: sp.Capture, Language: sp.Language})
	}
	return out
}

// Sort orders spans by start ascending, then end descending, the
// canonical order a flat span stream is rendered in.
func Sort(spans []types.Span) []types.Span {
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End > spans[j].End
	})
	return spans
}
