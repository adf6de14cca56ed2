// Package document implements the Cross-Boundary Document Orchestrator:
// a thin layer for hosts that manage a document's lifetime across
// multiple edits rather than calling Highlight fresh each time. It is
// grounded on arborium-host's HostState/DocumentState split —
// a primary session kept alive for the document's whole lifetime, plus a
// cache of injection-language sessions reused across highlight calls so
// a document with a stable set of injected languages doesn't pay session
// setup cost on every keystroke.
package document

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"go.gopad.dev/highlight/boundary"
	"go.gopad.dev/highlight/internal/assembler"
	"go.gopad.dev/highlight/internal/layer"
	"go.gopad.dev/highlight/plugin"
	"go.gopad.dev/highlight/provider"
	"go.gopad.dev/highlight/types"
)

// Handle is an opaque document identifier. Handles are never reused
// within a single Store's lifetime, so a stale handle after FreeDocument
// reliably misses rather than aliasing a newer document.
type Handle uint64

// ErrNotFound is returned when a handle doesn't name a live document.
var ErrNotFound = fmt.Errorf("document: handle not found")

type sessionEntry struct {
	plugin  plugin.Plugin
	session plugin.Session
}

type documentState struct {
	language string
	primary  sessionEntry
	text     []byte

	// injectionSessions caches one session per injected language seen so
	// far, keyed by language id, mirroring arborium-host's
	// injection_sessions map. Freed when the document is freed.
	injectionSessions map[string]sessionEntry
}

// Store holds every open document and the provider used to resolve
// languages. It is safe for concurrent use across different documents;
// a single document's methods are not safe to call concurrently with
// each other, matching the session state machine they drive.
type Store struct {
	provider provider.Provider
	logger   *zap.Logger
	maxDepth int

	mu     sync.Mutex
	nextID Handle
	docs   map[Handle]*documentState
}

// NewStore returns an empty Store backed by p. maxDepth <= 0 uses the
// engine's default at Highlight time.
func NewStore(p provider.Provider, maxDepth int, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		provider: p,
		logger:   logger,
		maxDepth: maxDepth,
		docs:     make(map[Handle]*documentState),
		nextID:   1,
	}
}

// CreateDocument resolves language's plugin and opens a session for it,
// returning a new handle. ok is false if language has no available
// plugin.
func (s *Store) CreateDocument(ctx context.Context, language string) (Handle, bool) {
	plug, ok := s.provider.Get(ctx, language)
	if !ok {
		return 0, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	handle := s.nextID
	s.nextID++
	s.docs[handle] = &documentState{
		language:          language,
		primary:           sessionEntry{plugin: plug, session: plug.CreateSession()},
		injectionSessions: make(map[string]sessionEntry),
	}
	return handle, true
}

// FreeDocument releases the document's primary session and every cached
// injection session, then forgets the handle.
func (s *Store) FreeDocument(doc Handle) {
	s.mu.Lock()
	state, ok := s.docs[doc]
	if ok {
		delete(s.docs, doc)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	for _, entry := range state.injectionSessions {
		entry.plugin.FreeSession(entry.session)
	}
	state.primary.plugin.FreeSession(state.primary.session)
}

// SetText replaces doc's text wholesale.
func (s *Store) SetText(doc Handle, text []byte) error {
	state, err := s.get(doc)
	if err != nil {
		return err
	}
	state.text = text
	return state.primary.session.SetText(text)
}

// ApplyEdit narrows an incremental edit to doc's primary session.
func (s *Store) ApplyEdit(doc Handle, edit types.Edit, newText []byte) error {
	state, err := s.get(doc)
	if err != nil {
		return err
	}
	state.text = newText
	return state.primary.session.ApplyEdit(edit, newText)
}

// Cancel requests that any in-flight parse on doc's primary or cached
// injection sessions stop early.
func (s *Store) Cancel(doc Handle) error {
	state, err := s.get(doc)
	if err != nil {
		return err
	}
	state.primary.session.Cancel()
	for _, entry := range state.injectionSessions {
		entry.session.Cancel()
	}
	return nil
}

// Highlight runs the highlight engine against doc's current text, reusing
// the document's primary session and its cache of injection-language
// sessions rather than creating fresh ones for every call — the same
// session reuse arborium-host performs across repeated `highlight` calls
// on one document. maxDepth <= 0 uses the store's configured default.
func (s *Store) Highlight(ctx context.Context, doc Handle, maxDepth int) ([]types.Span, error) {
	if maxDepth <= 0 {
		maxDepth = s.maxDepth
	}
	if maxDepth <= 0 {
		maxDepth = 8
	}

	state, err := s.get(doc)
	if err != nil {
		return nil, err
	}

	return s.highlightLayer(ctx, doc, state.language, state.text, 0, maxDepth, "")
}

func (s *Store) highlightLayer(ctx context.Context, doc Handle, language string, source []byte, depth, maxDepth int, parentLanguage string) ([]types.Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry, ok := s.sessionFor(doc, language)
	if !ok {
		s.logger.Debug("document: language unavailable", zap.String("language", language))
		return nil, nil
	}

	if err := entry.session.SetText(source); err != nil {
		s.logger.Warn("document: set-text failed", zap.String("language", language), zap.Error(err))
		return nil, nil
	}

	result, err := entry.session.Parse(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("document: parse failed", zap.String("language", language), zap.Error(err))
		return nil, nil
	}

	if violation := layer.Validate(result, len(source)); violation != nil {
		s.logger.Warn("document: protocol violation, dropping layer", zap.String("language", language), zap.Error(violation))
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
		return flat, nil
	}

	for _, inj := range result.Injections {
		start, end, ok := layer.ClipRange(inj.Start, inj.End, uint32(len(source)))
		if !ok {
			continue
		}

		childSpans, err := s.highlightLayer(ctx, doc, inj.Language, source[start:end], depth+1, maxDepth, language)
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

// HighlightUTF16 runs Highlight and translates the resulting byte-offset
// spans to UTF-16 code-unit offsets, for hosts (e.g. LSP clients) that
// index a document's text in UTF-16 rather than UTF-8 bytes. The
// translation map is built fresh from the document's current text on
// every call, since it must reflect whatever SetText/ApplyEdit last left
// in place.
func (s *Store) HighlightUTF16(ctx context.Context, doc Handle, maxDepth int) ([]boundary.UnitSpan, error) {
	state, err := s.get(doc)
	if err != nil {
		return nil, err
	}

	spans, err := s.Highlight(ctx, doc, maxDepth)
	if err != nil {
		return nil, err
	}

	return boundary.New(state.text).TranslateSpans(spans), nil
}

// GetRequiredLanguages returns the languages doc may need through
// injections: its primary language plus every language its grammar's
// injection query can statically name. Only that one level is listed;
// languages the injected grammars would request in turn are not included.
// A host can use this to pre-warm an asynchronous provider before the
// user ever triggers a highlight that needs them.
func (s *Store) GetRequiredLanguages(doc Handle) ([]string, error) {
	state, err := s.get(doc)
	if err != nil {
		return nil, err
	}
	languages := []string{state.language}
	languages = append(languages, state.primary.plugin.InjectionLanguages()...)
	return languages, nil
}

func (s *Store) get(doc Handle) (*documentState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.docs[doc]
	if !ok {
		return nil, ErrNotFound
	}
	return state, nil
}

// sessionFor returns the cached session for language within doc, creating
// and caching one on first use. This is the piece of arborium-host's
// design that avoids rebuilding a parser for every keystroke in a
// document whose injected languages stay the same across edits.
func (s *Store) sessionFor(doc Handle, language string) (sessionEntry, bool) {
	state, err := s.get(doc)
	if err != nil {
		return sessionEntry{}, false
	}
	if state.language == language {
		return state.primary, true
	}

	s.mu.Lock()
	if entry, ok := state.injectionSessions[language]; ok {
		s.mu.Unlock()
		return entry, true
	}
	s.mu.Unlock()

	plug, ok := s.provider.Get(context.Background(), language)
	if !ok {
		return sessionEntry{}, false
	}
	entry := sessionEntry{plugin: plug, session: plug.CreateSession()}

	s.mu.Lock()
	state.injectionSessions[language] = entry
	s.mu.Unlock()

	return entry, true
}
