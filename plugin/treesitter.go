package plugin

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"go.gopad.dev/highlight/language"
	"go.gopad.dev/highlight/types"
)

const (
	captureInjectionLanguage        = "injection.language"
	captureInjectionContent         = "injection.content"
	captureInjectionSelf            = "injection.self"
	captureInjectionParent          = "injection.parent"
	captureInjectionIncludeChildren = "injection.include-children"
)

// TreeSitterPlugin is the native Grammar Plugin implementation: one grammar
// linked directly into the binary via cgo, queried with go-tree-sitter.
// It is grounded on the query-compilation approach of a prior Go
// tree-sitter highlighter (combining multiple query sources into one
// [tree_sitter.Query] so capture names resolve to a single index space),
// adapted to the Plugin ABI's single Parse-returns-a-result shape rather
// than a cross-layer capture iterator.
type TreeSitterPlugin struct {
	lang language.Language

	query                         *tree_sitter.Query
	injectionContentCaptureIndex  *uint
	injectionLanguageCaptureIndex *uint

	// staticInjectionLanguages holds the languages this grammar's
	// injection query names as a literal `#set! injection.language`
	// property value. Languages chosen from captured source text cannot
	// be enumerated ahead of time.
	staticInjectionLanguages []string

	mu      sync.Mutex
	cursors []*tree_sitter.QueryCursor
}

// New compiles lang's highlights and injection queries into a single plugin.
// Locals (scope/definition/reference tracking) are intentionally not
// implemented: neither this engine nor the original implementation it is
// modeled on resolves local variable scoping, so there is no
// ParseResult field to populate with it.
func New(lang language.Language) (*TreeSitterPlugin, error) {
	querySource := append(append([]byte{}, lang.InjectionQuery...), lang.HighlightsQuery...)

	query, err := tree_sitter.NewQuery(lang.Lang, string(querySource))
	if err != nil {
		return nil, fmt.Errorf("plugin: compiling query for %s: %w", lang.Name, err)
	}

	p := &TreeSitterPlugin{
		lang:  lang,
		query: query,
	}

	for i, name := range query.CaptureNames() {
		ui := uint(i)
		switch name {
		case captureInjectionContent:
			p.injectionContentCaptureIndex = &ui
		case captureInjectionLanguage:
			p.injectionLanguageCaptureIndex = &ui
		}
	}

	seen := map[string]bool{}
	for i := range query.PatternCount() {
		for _, prop := range query.PropertySettings(i) {
			if prop.Key == captureInjectionLanguage && prop.Value != nil && !seen[*prop.Value] {
				seen[*prop.Value] = true
				p.staticInjectionLanguages = append(p.staticInjectionLanguages, *prop.Value)
			}
		}
	}

	return p, nil
}

func (p *TreeSitterPlugin) LanguageID() string { return p.lang.Name }

func (p *TreeSitterPlugin) InjectionLanguages() []string {
	return append([]string{}, p.staticInjectionLanguages...)
}

func (p *TreeSitterPlugin) CreateSession() Session {
	return &treeSitterSession{plugin: p, parser: tree_sitter.NewParser()}
}

func (p *TreeSitterPlugin) FreeSession(s Session) {
	ts, ok := s.(*treeSitterSession)
	if !ok {
		return
	}
	if ts.tree != nil {
		ts.tree.Close()
	}
	if ts.cursor != nil {
		p.releaseCursor(ts.cursor)
	}
	ts.parser.Close()
}

func (p *TreeSitterPlugin) acquireCursor() *tree_sitter.QueryCursor {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.cursors) == 0 {
		return tree_sitter.NewQueryCursor()
	}
	c := p.cursors[len(p.cursors)-1]
	p.cursors = p.cursors[:len(p.cursors)-1]
	return c
}

func (p *TreeSitterPlugin) releaseCursor(c *tree_sitter.QueryCursor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cursors = append(p.cursors, c)
}

// treeSitterSession is the per-buffer state a [TreeSitterPlugin] hands out.
// It is not safe for concurrent use, matching the tree-sitter parser and
// tree it wraps.
type treeSitterSession struct {
	plugin *TreeSitterPlugin
	parser *tree_sitter.Parser
	cursor *tree_sitter.QueryCursor

	state  SessionState
	source []byte
	tree   *tree_sitter.Tree

	cancelFlag uintptr
}

func (s *treeSitterSession) State() SessionState { return s.state }

func (s *treeSitterSession) SetText(source []byte) error {
	s.source = source
	if s.tree != nil {
		s.tree.Close()
		s.tree = nil
	}
	s.state = StateReady
	return nil
}

func (s *treeSitterSession) ApplyEdit(edit types.Edit, newSource []byte) error {
	if s.state == StateEmpty {
		return fmt.Errorf("%w: apply-edit on an empty session", ErrSessionState)
	}
	if s.tree == nil {
		// No previous tree to reuse: the next Parse starts from scratch.
		s.source = newSource
		s.state = StateReady
		return nil
	}
	s.tree.Edit(&tree_sitter.InputEdit{
		StartByte:  uint(edit.StartByte),
		OldEndByte: uint(edit.OldEndByte),
		NewEndByte: uint(edit.NewEndByte),
		StartPosition: tree_sitter.Point{
			Row: uint(edit.StartRow), Column: uint(edit.StartColumn),
		},
		OldEndPosition: tree_sitter.Point{
			Row: uint(edit.OldEndRow), Column: uint(edit.OldEndColumn),
		},
		NewEndPosition: tree_sitter.Point{
			Row: uint(edit.NewEndRow), Column: uint(edit.NewEndColumn),
		},
	})
	s.source = newSource
	s.state = StateReady
	return nil
}

func (s *treeSitterSession) Parse(ctx context.Context) (types.ParseResult, error) {
	if s.state == StateEmpty {
		return types.ParseResult{}, fmt.Errorf("%w: parse on an empty session", ErrSessionState)
	}
	s.state = StateParsing
	defer func() { s.state = StateReady }()

	s.cancelFlag = 0
	s.parser.SetCancellationFlag(&s.cancelFlag)

	if err := s.parser.SetLanguage(s.plugin.lang.Lang); err != nil {
		return types.ParseResult{}, fmt.Errorf("plugin: set language: %w", err)
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			s.cancelFlag = 1
		case <-done:
		}
	}()

	var old *tree_sitter.Tree
	if s.tree != nil {
		old = s.tree
	}
	tree := s.parser.ParseWithOptions(func(offset int, _ tree_sitter.Point) []byte {
		if offset < 0 || offset >= len(s.source) {
			return nil
		}
		return s.source[offset:]
	}, old, nil)
	close(done)

	if tree == nil {
		if ctx.Err() != nil {
			return types.ParseResult{}, ctx.Err()
		}
		return types.ParseResult{}, &types.ParseError{Message: "tree-sitter returned no tree"}
	}
	s.tree = tree

	if s.cursor == nil {
		s.cursor = s.plugin.acquireCursor()
	}

	result := types.ParseResult{}
	// Injections are keyed by match, not just by pattern, so two matches of
	// the same injection pattern (e.g. two <style> elements) each produce
	// their own injection.
	type injectionKey struct{ pattern, start, end uint }
	injByMatch := map[injectionKey]*types.Injection{}

	captures := s.cursor.Captures(s.plugin.query, tree.RootNode(), s.source)
	for {
		match, index := captures.Next()
		if match == nil {
			break
		}
		capture := match.Captures[index]
		name := s.plugin.query.CaptureNames()[capture.Index]

		switch {
		case name == captureInjectionContent || name == captureInjectionLanguage:
			first := match.Captures[0].Node
			key := injectionKey{uint(match.PatternIndex), uint(first.StartByte()), uint(first.EndByte())}
			inj := injByMatch[key]
			if inj == nil {
				inj = &types.Injection{}
				injByMatch[key] = inj
			}
			if name == captureInjectionContent {
				if inj.End == 0 || capture.Node.StartByte() < inj.Start || inj.Start == inj.End {
					if inj.Start == 0 && inj.End == 0 {
						inj.Start, inj.End = capture.Node.StartByte(), capture.Node.EndByte()
					} else {
						if capture.Node.StartByte() < inj.Start {
							inj.Start = capture.Node.StartByte()
						}
						if capture.Node.EndByte() > inj.End {
							inj.End = capture.Node.EndByte()
						}
					}
				}
			} else {
				inj.Language = capture.Node.Utf8Text(s.source)
			}
			for _, prop := range s.plugin.query.PropertySettings(match.PatternIndex) {
				switch prop.Key {
				case captureInjectionLanguage:
					if inj.Language == "" && prop.Value != nil {
						inj.Language = *prop.Value
					}
				case captureInjectionSelf:
					if inj.Language == "" {
						inj.Language = s.plugin.lang.Name
					}
				case captureInjectionParent:
					// No enclosing layer name is visible from inside a
					// single Parse call; the engine resolves "parent"
					// injections itself using the caller's language.
					if inj.Language == "" {
						inj.Language = parentInjectionSentinel
					}
				case captureInjectionIncludeChildren:
					inj.IncludeChildren = true
				}
			}
		default:
			if strings.HasPrefix(name, "local.") {
				continue
			}
			result.Spans = append(result.Spans, types.Span{
				Start:   capture.Node.StartByte(),
				End:     capture.Node.EndByte(),
				Capture: name,
			})
		}
	}

	for _, inj := range injByMatch {
		if inj.Language != "" && inj.End > inj.Start {
			result.Injections = append(result.Injections, *inj)
		}
	}

	return result, nil
}

// parentInjectionSentinel marks an injection.parent property whose
// resolution depends on the enclosing layer's language, which only the
// engine knows about.
const parentInjectionSentinel = "\x00parent"

func (s *treeSitterSession) Cancel() {
	s.cancelFlag = 1
}
