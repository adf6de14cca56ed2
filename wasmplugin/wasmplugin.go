// Package wasmplugin implements the Grammar Plugin ABI by calling into a
// WebAssembly component through github.com/wippyai/wasm-runtime. Every
// ABI verb maps directly to a kebab-case component export:
// language-id, injection-languages, create-session, free-session,
// set-text, apply-edit, parse, and cancel. The runtime's component
// support lifts and lowers the canonical ABI automatically, so calls here
// read like ordinary Go calls with []byte/string/int arguments.
package wasmplugin

import (
	"context"
	"fmt"

	"github.com/wippyai/wasm-runtime/runtime"
	"go.uber.org/zap"

	"go.gopad.dev/highlight/plugin"
	"go.gopad.dev/highlight/types"
)

// Plugin wraps one instantiated grammar component.
type Plugin struct {
	languageID string
	inst       *runtime.Instance
	logger     *zap.Logger
}

// Load instantiates wasmBytes as a grammar plugin component. languageID
// must match what the component itself reports from language-id; a
// mismatch is a protocol violation, since it means the provider's load
// callback resolved the wrong module for the language it was asked for.
func Load(ctx context.Context, rt *runtime.Runtime, languageID string, wasmBytes []byte, logger *zap.Logger) (*Plugin, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	mod, err := rt.LoadComponent(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("wasmplugin: load component for %s: %w", languageID, err)
	}
	inst, err := mod.Instantiate(ctx)
	if err != nil {
		return nil, fmt.Errorf("wasmplugin: instantiate %s: %w", languageID, err)
	}

	p := &Plugin{languageID: languageID, inst: inst, logger: logger}

	reported, err := p.call(ctx, "language-id")
	if err != nil {
		return nil, fmt.Errorf("wasmplugin: %s: language-id: %w", languageID, err)
	}
	if name, ok := reported.(string); ok && name != "" && name != languageID {
		return nil, fmt.Errorf("%w: %s: component reports language-id %q", plugin.ErrProtocolViolation, languageID, name)
	}

	return p, nil
}

func (p *Plugin) call(ctx context.Context, name string, args ...any) (any, error) {
	return p.inst.Call(ctx, name, args...)
}

func (p *Plugin) LanguageID() string { return p.languageID }

func (p *Plugin) InjectionLanguages() []string {
	res, err := p.call(context.Background(), "injection-languages")
	if err != nil {
		p.logger.Warn("wasmplugin: injection-languages call failed", zap.String("language", p.languageID), zap.Error(err))
		return nil
	}
	list, ok := res.([]string)
	if !ok {
		return nil
	}
	return list
}

func (p *Plugin) CreateSession() plugin.Session {
	ctx := context.Background()
	res, err := p.call(ctx, "create-session")
	if err != nil {
		p.logger.Warn("wasmplugin: create-session failed", zap.String("language", p.languageID), zap.Error(err))
		return &errorSession{err: fmt.Errorf("wasmplugin: create-session: %w", err)}
	}
	handle, _ := toInt64(res)
	return &Session{plugin: p, handle: handle, state: plugin.StateEmpty}
}

func (p *Plugin) FreeSession(s plugin.Session) {
	sess, ok := s.(*Session)
	if !ok {
		return
	}
	if _, err := p.call(context.Background(), "free-session", sess.handle); err != nil {
		p.logger.Warn("wasmplugin: free-session failed", zap.String("language", p.languageID), zap.Error(err))
	}
}

// Session is a handle-based session proxy: the actual state lives inside
// the component instance, addressed by an opaque integer the component
// returned from create-session.
type Session struct {
	plugin *Plugin
	handle int64
	state  plugin.SessionState
}

func (s *Session) State() plugin.SessionState { return s.state }

func (s *Session) SetText(source []byte) error {
	if _, err := s.plugin.call(context.Background(), "set-text", s.handle, string(source)); err != nil {
		return fmt.Errorf("wasmplugin: set-text: %w", err)
	}
	s.state = plugin.StateReady
	return nil
}

func (s *Session) ApplyEdit(edit types.Edit, newSource []byte) error {
	if s.state == plugin.StateEmpty {
		return fmt.Errorf("%w: apply-edit on an empty wasm session", plugin.ErrSessionState)
	}
	_, err := s.plugin.call(context.Background(), "apply-edit", s.handle,
		int64(edit.StartByte), int64(edit.OldEndByte), int64(edit.NewEndByte), string(newSource))
	if err != nil {
		return fmt.Errorf("wasmplugin: apply-edit: %w", err)
	}
	s.state = plugin.StateReady
	return nil
}

func (s *Session) Parse(ctx context.Context) (types.ParseResult, error) {
	if s.state == plugin.StateEmpty {
		return types.ParseResult{}, fmt.Errorf("%w: parse on an empty wasm session", plugin.ErrSessionState)
	}
	s.state = plugin.StateParsing
	defer func() { s.state = plugin.StateReady }()

	res, err := s.plugin.call(ctx, "parse", s.handle)
	if err != nil {
		return types.ParseResult{}, fmt.Errorf("wasmplugin: parse: %w", err)
	}

	result, ok := decodeParseResult(res)
	if !ok {
		return types.ParseResult{}, fmt.Errorf("%w: %s: malformed parse result", plugin.ErrProtocolViolation, s.plugin.languageID)
	}
	return result, nil
}

func (s *Session) Cancel() {
	if _, err := s.plugin.call(context.Background(), "cancel", s.handle); err != nil {
		s.plugin.logger.Debug("wasmplugin: cancel call failed", zap.String("language", s.plugin.languageID), zap.Error(err))
	}
}

// errorSession is returned by CreateSession when the component-side call
// itself failed; every method reports the same error rather than the
// caller nil-dereferencing a half-built session.
type errorSession struct{ err error }

func (e *errorSession) State() plugin.SessionState { return plugin.StateEmpty }
func (e *errorSession) SetText([]byte) error        { return e.err }
func (e *errorSession) ApplyEdit(types.Edit, []byte) error {
	return e.err
}
func (e *errorSession) Parse(context.Context) (types.ParseResult, error) {
	return types.ParseResult{}, e.err
}
func (e *errorSession) Cancel() {}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

// decodeParseResult lifts the component's record-shaped return value
// (spans and injections, each a list of records) into types.ParseResult.
// The shape decoded here is a map[string]any record whose "spans" and
// "injections" fields are []any lists of map[string]any records.
func decodeParseResult(v any) (types.ParseResult, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return types.ParseResult{}, false
	}

	var result types.ParseResult

	if rawSpans, ok := m["spans"].([]any); ok {
		for _, rs := range rawSpans {
			sm, ok := rs.(map[string]any)
			if !ok {
				return types.ParseResult{}, false
			}
			start, ok1 := toUint32(sm["start"])
			end, ok2 := toUint32(sm["end"])
			capture, ok3 := sm["capture"].(string)
			if !ok1 || !ok2 || !ok3 || end < start {
				return types.ParseResult{}, false
			}
			result.Spans = append(result.Spans, types.Span{Start: start, End: end, Capture: capture})
		}
	}

	if rawInjections, ok := m["injections"].([]any); ok {
		for _, ri := range rawInjections {
			im, ok := ri.(map[string]any)
			if !ok {
				return types.ParseResult{}, false
			}
			start, ok1 := toUint32(im["start"])
			end, ok2 := toUint32(im["end"])
			lang, ok3 := im["language"].(string)
			if !ok1 || !ok2 || !ok3 || end < start {
				return types.ParseResult{}, false
			}
			includeChildren, _ := im["include_children"].(bool)
			result.Injections = append(result.Injections, types.Injection{
				Start:           start,
				End:             end,
				Language:        lang,
				IncludeChildren: includeChildren,
			})
		}
	}

	return result, true
}

func toUint32(v any) (uint32, bool) {
	n, ok := toInt64(v)
	if !ok || n < 0 {
		return 0, false
	}
	return uint32(n), true
}
