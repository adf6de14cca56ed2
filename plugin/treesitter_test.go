package plugin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.gopad.dev/highlight/grammars"
	"go.gopad.dev/highlight/plugin"
)

func TestTreeSitterPluginParsesGo(t *testing.T) {
	p, err := plugin.New(grammars.Go())
	require.NoError(t, err)
	assert.Equal(t, "go", p.LanguageID())

	session := p.CreateSession()
	defer p.FreeSession(session)

	source := []byte("package main\n\nfunc main() {}\n")
	require.NoError(t, session.SetText(source))

	result, err := session.Parse(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Spans)

	for _, sp := range result.Spans {
		assert.LessOrEqual(t, sp.End, uint32(len(source)))
		assert.LessOrEqual(t, sp.Start, sp.End)
	}
}

func TestTreeSitterPluginHTMLReportsInjectionLanguages(t *testing.T) {
	p, err := plugin.New(grammars.HTML())
	require.NoError(t, err)

	langs := p.InjectionLanguages()
	assert.Contains(t, langs, "javascript")
	assert.Contains(t, langs, "css")
}

func TestTreeSitterSessionRejectsParseBeforeSetText(t *testing.T) {
	p, err := plugin.New(grammars.Go())
	require.NoError(t, err)

	session := p.CreateSession()
	defer p.FreeSession(session)

	_, err = session.Parse(context.Background())
	assert.ErrorIs(t, err, plugin.ErrSessionState)
}
