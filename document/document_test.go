package document

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.gopad.dev/highlight/plugin"
	"go.gopad.dev/highlight/types"
)

type fakePlugin struct {
	name   string
	result types.ParseResult
	langs  []string
}

func (p *fakePlugin) LanguageID() string           { return p.name }
func (p *fakePlugin) InjectionLanguages() []string { return p.langs }
func (p *fakePlugin) CreateSession() plugin.Session { return &fakeSession{plugin: p} }
func (p *fakePlugin) FreeSession(plugin.Session)     {}

type fakeSession struct {
	plugin *fakePlugin
	state  plugin.SessionState
	parses int
}

func (s *fakeSession) State() plugin.SessionState { return s.state }
func (s *fakeSession) SetText([]byte) error        { s.state = plugin.StateReady; return nil }
func (s *fakeSession) ApplyEdit(types.Edit, []byte) error {
	s.state = plugin.StateReady
	return nil
}
func (s *fakeSession) Parse(context.Context) (types.ParseResult, error) {
	s.parses++
	return s.plugin.result, nil
}
func (s *fakeSession) Cancel() {}

type fakeProvider struct {
	plugins map[string]*fakePlugin
	gets    int
}

func (p *fakeProvider) Get(_ context.Context, language string) (plugin.Plugin, bool) {
	p.gets++
	fp, ok := p.plugins[language]
	return fp, ok
}

func TestDocumentLifecycle(t *testing.T) {
	prov := &fakeProvider{plugins: map[string]*fakePlugin{
		"go": {name: "go", result: types.ParseResult{Spans: []types.Span{{Start: 0, End: 4, Capture: "keyword"}}}},
	}}
	store := NewStore(prov, 8, nil)

	doc, ok := store.CreateDocument(context.Background(), "go")
	require.True(t, ok)

	require.NoError(t, store.SetText(doc, []byte("func")))
	spans, err := store.Highlight(context.Background(), doc, 8)
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, "go", spans[0].Language)

	store.FreeDocument(doc)
	_, err = store.Highlight(context.Background(), doc, 8)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInjectionSessionIsCachedAcrossHighlights(t *testing.T) {
	css := &fakePlugin{name: "css", result: types.ParseResult{Spans: []types.Span{{Start: 0, End: 3, Capture: "property"}}}}
	html := &fakePlugin{name: "html", result: types.ParseResult{
		Spans:      []types.Span{{Start: 0, End: 10, Capture: "tag"}},
		Injections: []types.Injection{{Start: 0, End: 3, Language: "css", IncludeChildren: true}},
	}}
	prov := &fakeProvider{plugins: map[string]*fakePlugin{"html": html, "css": css}}
	store := NewStore(prov, 8, nil)

	doc, ok := store.CreateDocument(context.Background(), "html")
	require.True(t, ok)
	require.NoError(t, store.SetText(doc, []byte("0123456789")))

	spans, err := store.Highlight(context.Background(), doc, 8)
	require.NoError(t, err)
	for i := 1; i < len(spans); i++ {
		assert.LessOrEqual(t, spans[i-1].End, spans[i].Start, "spans must not overlap")
	}
	getsAfterFirst := prov.gets

	_, err = store.Highlight(context.Background(), doc, 8)
	require.NoError(t, err)
	assert.Equal(t, getsAfterFirst, prov.gets, "second highlight should reuse the cached css session, not call Get again")
}

func TestHighlightUTF16TranslatesOffsets(t *testing.T) {
	// U+1F600 is 4 bytes in UTF-8 but 2 code units in UTF-16, so a span
	// after it must shift back by two units relative to its byte offset.
	prov := &fakeProvider{plugins: map[string]*fakePlugin{
		"go": {name: "go", result: types.ParseResult{Spans: []types.Span{{Start: 5, End: 6, Capture: "keyword"}}}},
	}}
	store := NewStore(prov, 8, nil)

	doc, ok := store.CreateDocument(context.Background(), "go")
	require.True(t, ok)
	require.NoError(t, store.SetText(doc, []byte("a\U0001F600bcd")))

	spans, err := store.HighlightUTF16(context.Background(), doc, 8)
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, uint32(3), spans[0].Start)
	assert.Equal(t, uint32(4), spans[0].End)
}

func TestGetRequiredLanguages(t *testing.T) {
	html := &fakePlugin{name: "html", langs: []string{"css", "javascript"}}
	prov := &fakeProvider{plugins: map[string]*fakePlugin{"html": html}}
	store := NewStore(prov, 8, nil)

	doc, ok := store.CreateDocument(context.Background(), "html")
	require.True(t, ok)

	langs, err := store.GetRequiredLanguages(doc)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"html", "css", "javascript"}, langs)
}
