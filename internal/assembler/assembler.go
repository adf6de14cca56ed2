// Package assembler turns the raw, arbitrarily overlapping captures a
// single Grammar Plugin parse produces into a flat, sorted,
// non-overlapping span stream for the highlight engine to work with. It
// implements a sweep over the start/end breakpoints of the
// input spans rather than the event-stack approach a prior Go tree-sitter
// highlighter used, because the Plugin ABI here hands back a complete
// batch of captures rather than a live capture iterator the engine can
// interleave across layers.
package assembler

import (
	"sort"

	"go.gopad.dev/highlight/types"
)

// Assemble resolves overlaps in spans using a three-level priority order:
// the most specific capture name wins (more dotted segments beats fewer),
// then the innermost (shortest) range wins, then the span that appeared
// earliest in the input wins. Zero-width spans and spans with no active
// winner over an interval are dropped; adjacent output spans with
// identical capture and language are coalesced.
func Assemble(spans []types.Span) []types.Span {
	type scored struct {
		span        types.Span
		specificity int
		idx         int
	}

	live := make([]scored, 0, len(spans))
	breakpoints := make(map[uint32]struct{}, len(spans)*2)
	for i, sp := range spans {
		if sp.End <= sp.Start {
			continue
		}
		live = append(live, scored{span: sp, specificity: specificity(sp.Capture), idx: i})
		breakpoints[sp.Start] = struct{}{}
		breakpoints[sp.End] = struct{}{}
	}
	if len(live) == 0 {
		return nil
	}

	points := make([]uint32, 0, len(breakpoints))
	for p := range breakpoints {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })

	better := func(a, b scored) bool {
		if a.specificity != b.specificity {
			return a.specificity > b.specificity
		}
		al, bl := a.span.End-a.span.Start, b.span.End-b.span.Start
		if al != bl {
			return al < bl
		}
		return a.idx < b.idx
	}

	var out []types.Span
	for i := 0; i+1 < len(points); i++ {
		lo, hi := points[i], points[i+1]
		var best *scored
		for j := range live {
			cand := live[j]
			if cand.span.Start <= lo && cand.span.End >= hi {
				if best == nil || better(cand, *best) {
					best = &cand
				}
			}
		}
		if best == nil {
			continue
		}
		n := len(out)
		if n > 0 && out[n-1].End == lo && out[n-1].Capture == best.span.Capture && out[n-1].Language == best.span.Language {
			out[n-1].End = hi
			continue
		}
		out = append(out, types.Span{
			Start:    lo,
			End:      hi,
			Capture:  best.span.Capture,
			Language: best.span.Language,
		})
	}
	return out
}

func specificity(capture string) int {
	n := 1
	for _, r := range capture {
		if r == '.' {
			n++
		}
	}
	return n
}
