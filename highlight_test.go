package highlight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.gopad.dev/highlight/plugin"
	"go.gopad.dev/highlight/provider"
	"go.gopad.dev/highlight/types"
)

// fakePlugin is a minimal hand-built Plugin used to exercise the engine's
// injection recursion without going through a real tree-sitter grammar.
type fakePlugin struct {
	name       string
	result     types.ParseResult
	injections map[string]*fakePlugin
}

func (p *fakePlugin) LanguageID() string { return p.name }
func (p *fakePlugin) InjectionLanguages() []string {
	var out []string
	for lang := range p.injections {
		out = append(out, lang)
	}
	return out
}
func (p *fakePlugin) CreateSession() plugin.Session { return &fakeSession{plugin: p} }
func (p *fakePlugin) FreeSession(plugin.Session)     {}

type fakeSession struct {
	plugin *fakePlugin
	state  plugin.SessionState
}

func (s *fakeSession) State() plugin.SessionState { return s.state }
func (s *fakeSession) SetText([]byte) error        { s.state = plugin.StateReady; return nil }
func (s *fakeSession) ApplyEdit(types.Edit, []byte) error {
	s.state = plugin.StateReady
	return nil
}
func (s *fakeSession) Parse(context.Context) (types.ParseResult, error) {
	return s.plugin.result, nil
}
func (s *fakeSession) Cancel() {}

type fakeProvider struct {
	plugins map[string]*fakePlugin
}

func (p *fakeProvider) Get(_ context.Context, language string) (plugin.Plugin, bool) {
	fp, ok := p.plugins[language]
	return fp, ok
}

func TestHighlightFlatLanguageNoInjections(t *testing.T) {
	prov := &fakeProvider{plugins: map[string]*fakePlugin{
		"go": {name: "go", result: types.ParseResult{
			Spans: []types.Span{{Start: 0, End: 7, Capture: "keyword"}},
		}},
	}}
	h := New(prov)

	spans, err := h.Highlight(context.Background(), "go", []byte("package"), 8)
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, "go", spans[0].Language)
	assert.Equal(t, "keyword", spans[0].Capture)
}

func TestHighlightUnresolvableLanguageIsNotAnError(t *testing.T) {
	prov := &fakeProvider{plugins: map[string]*fakePlugin{}}
	h := New(prov)

	spans, err := h.Highlight(context.Background(), "cobol", []byte("x"), 8)
	require.NoError(t, err)
	assert.Nil(t, spans)
}

func TestHighlightResolvesInjectionIncludeChildren(t *testing.T) {
	css := &fakePlugin{name: "css", result: types.ParseResult{
		Spans: []types.Span{{Start: 0, End: 5, Capture: "property"}},
	}}
	html := &fakePlugin{name: "html", result: types.ParseResult{
		Spans:      []types.Span{{Start: 0, End: 20, Capture: "tag"}},
		Injections: []types.Injection{{Start: 7, End: 12, Language: "css", IncludeChildren: true}},
	}}
	prov := &fakeProvider{plugins: map[string]*fakePlugin{"html": html, "css": css}}
	h := New(prov)

	spans, err := h.Highlight(context.Background(), "html", []byte("<style>color</style>"), 8)
	require.NoError(t, err)

	var sawCSS bool
	for _, sp := range spans {
		if sp.Language == "css" {
			sawCSS = true
			assert.Equal(t, uint32(7), sp.Start)
			assert.Equal(t, uint32(12), sp.End)
		}
	}
	assert.True(t, sawCSS, "expected a spliced css span")
	assertNonOverlapping(t, spans)
}

// assertNonOverlapping fails the test if any two spans in a sorted, flat
// span stream overlap — every Splice/Assemble result must satisfy this.
func assertNonOverlapping(t *testing.T, spans []types.Span) {
	t.Helper()
	for i := 1; i < len(spans); i++ {
		assert.LessOrEqualf(t, spans[i-1].End, spans[i].Start,
			"spans %+v and %+v overlap", spans[i-1], spans[i])
	}
}

func TestHighlightExcludesChildrenWhenNotIncluded(t *testing.T) {
	inner := &fakePlugin{name: "js", result: types.ParseResult{
		Spans: []types.Span{{Start: 0, End: 3, Capture: "keyword"}},
	}}
	outer := &fakePlugin{name: "html", result: types.ParseResult{
		Spans:      []types.Span{{Start: 0, End: 10, Capture: "tag"}},
		Injections: []types.Injection{{Start: 2, End: 5, Language: "js", IncludeChildren: false}},
	}}
	prov := &fakeProvider{plugins: map[string]*fakePlugin{"html": outer, "js": inner}}
	h := New(prov)

	spans, err := h.Highlight(context.Background(), "html", []byte("0123456789"), 8)
	require.NoError(t, err)

	for _, sp := range spans {
		if sp.Language == "html" {
			assert.False(t, sp.Start < 5 && sp.End > 2, "parent span %v should be clipped around the injection", sp)
		}
	}
}

func TestHighlightStopsAtMaxDepth(t *testing.T) {
	recurse := &fakePlugin{name: "tpl"}
	recurse.result = types.ParseResult{
		Injections: []types.Injection{{Start: 0, End: 1, Language: "tpl", IncludeChildren: true}},
	}
	prov := &fakeProvider{plugins: map[string]*fakePlugin{"tpl": recurse}}
	h := New(prov)

	spans, err := h.Highlight(context.Background(), "tpl", []byte("x"), 2)
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestHighlightPropagatesCancellation(t *testing.T) {
	prov := &fakeProvider{plugins: map[string]*fakePlugin{
		"go": {name: "go"},
	}}
	h := New(prov)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Highlight(ctx, "go", []byte("x"), 8)
	assert.ErrorIs(t, err, context.Canceled)
}
