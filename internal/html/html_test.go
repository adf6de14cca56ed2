package html

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.gopad.dev/highlight/internal/tagtable"
	"go.gopad.dev/highlight/types"
)

func TestRenderCustomElements(t *testing.T) {
	r := NewRenderer()
	out := r.Render([]byte("if x"), []types.Span{{Start: 0, End: 2, Capture: "keyword"}})
	assert.Equal(t, "<a-k>if</a-k> x", out)
}

func TestRenderEscapesLiteralText(t *testing.T) {
	r := NewRenderer()
	out := r.Render([]byte(`a < b & "c"`), nil)
	assert.Equal(t, "a &lt; b &amp; &#34;c&#34;", out)
}

func TestRenderClassNames(t *testing.T) {
	r := &Renderer{Format: ClassNames, Table: tagtable.Default}
	out := r.Render([]byte("x"), []types.Span{{Start: 0, End: 1, Capture: "variable"}})
	assert.Equal(t, `<span class="variable">x</span>`, out)
}

func TestRenderUnknownCaptureFallsThrough(t *testing.T) {
	r := NewRenderer()
	out := r.Render([]byte("x"), []types.Span{{Start: 0, End: 1, Capture: "totally.unknown.capture"}})
	assert.Equal(t, "x", out)
}

func TestRenderPreservesReplacementCharacterBytes(t *testing.T) {
	// U+FFFD encoded as EF BF BD, embedded legitimately in otherwise valid
	// UTF-8 source. It must survive byte-for-byte, not be dropped.
	source := []byte("a\xef\xbf\xbdb")
	r := NewRenderer()
	out := r.Render(source, nil)
	assert.Equal(t, "a\xef\xbf\xbdb", out)
}

func TestRenderPreservesInvalidUTF8Bytes(t *testing.T) {
	source := []byte("a\xffb")
	r := NewRenderer()
	out := r.Render(source, nil)
	assert.Equal(t, "a\xffb", out)
}
