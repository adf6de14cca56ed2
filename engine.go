package highlight

import (
	"context"

	"go.uber.org/zap"

	"go.gopad.dev/highlight/internal/assembler"
	"go.gopad.dev/highlight/internal/layer"
	"go.gopad.dev/highlight/provider"
	"go.gopad.dev/highlight/types"
)

// DefaultMaxDepth bounds injection recursion when a caller doesn't pick
// their own. It matches this engine's own default, chosen deliberately
// higher than the Rust original's default of 3 to tolerate deeper nesting
// (e.g. SQL inside a string inside a templating language inside HTML)
// before truncating — see DESIGN.md for the full rationale.
const DefaultMaxDepth = 8

// Highlighter runs the highlight engine: acquire
// plugin -> session -> parse -> translate offsets -> recurse into
// injections up to max depth, splicing by include_children -> free
// session.
type Highlighter struct {
	provider provider.Provider
	logger   *zap.Logger
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithLogger attaches a structured logger. The default is a no-op logger,
// since this is a library and must not log to a global sink callers don't
// control.
func WithLogger(l *zap.Logger) Option {
	return func(h *Highlighter) { h.logger = l }
}

// New returns a Highlighter backed by p.
func New(p provider.Provider, opts ...Option) *Highlighter {
	h := &Highlighter{provider: p, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Highlight parses source as language and returns a flat, sorted,
// non-overlapping span stream, recursing into injections up to maxDepth
// layers deep. An unresolvable top-level language returns a nil slice and
// a nil error: the engine reports absence as a degraded result, not a
// failure. The only error Highlight can return is ctx's cancellation.
func (h *Highlighter) Highlight(ctx context.Context, language string, source []byte, maxDepth int) ([]types.Span, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return h.highlightLayer(ctx, language, source, 0, maxDepth, "")
}

func (h *Highlighter) highlightLayer(ctx context.Context, language string, source []byte, depth, maxDepth int, parentLanguage string) ([]types.Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plug, ok := h.provider.Get(ctx, language)
	if !ok {
		h.logger.Debug("highlight: language unavailable", zap.String("language", language))
		return nil, nil
	}

	session := plug.CreateSession()
	defer plug.FreeSession(session)

	if err := session.SetText(source); err != nil {
		h.logger.Warn("highlight: set-text failed", zap.String("language", language), zap.Error(err))
		return nil, nil
	}

	result, err := session.Parse(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		h.logger.Warn("highlight: parse failed", zap.String("language", language), zap.Error(err))
		return nil, nil
	}

	if violation := layer.Validate(result, len(source)); violation != nil {
		h.logger.Warn("highlight: protocol violation, dropping layer", zap.String("language", language), zap.Error(violation))
		return nil, nil
	}

	for i, inj := range result.Injections {
		if inj.Language == layer.ParentSentinel {
			result.Injections[i].Language = parentLanguage
		}
	}

	flat := assembler.Assemble(result.Spans)
	for i := range flat {
		flat[i].Language = language
	}

	if depth >= maxDepth {
		if len(result.Injections) > 0 {
			h.logger.Debug("highlight: max depth reached, dropping injections", zap.String("language", language), zap.Int("depth", depth))
		}
		return flat, nil
	}

	for _, inj := range result.Injections {
		start, end, ok := layer.ClipRange(inj.Start, inj.End, uint32(len(source)))
		if !ok {
			h.logger.Debug("highlight: dropping empty/out-of-range injection", zap.String("language", language), zap.String("injected", inj.Language))
			continue
		}

		childSpans, err := h.highlightLayer(ctx, inj.Language, source[start:end], depth+1, maxDepth, language)
		if err != nil {
			return nil, err
		}
		for i := range childSpans {
			childSpans[i].Start += start
			childSpans[i].End += start
		}

		flat = layer.Splice(flat, start, end, inj.IncludeChildren, childSpans)
	}

	return layer.Sort(flat), nil
}
