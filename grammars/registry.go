// Package grammars is the static registry of statically-linked grammars:
// one [language.Language] plus a [plugin.TreeSitterPlugin] factory per
// supported language, handed to [provider.NewStatic]. It is the
// compile-time half of the Grammar Provider contract; grammars loaded at
// runtime from WASM components go through package wasmplugin instead.
package grammars

import (
	"go.gopad.dev/highlight/plugin"
	"go.gopad.dev/highlight/provider"
)

// Factories returns a provider.Factory for every statically-linked
// grammar this registry knows about, keyed by language id, ready to hand
// to provider.NewStatic.
func Factories() map[string]provider.Factory {
	return map[string]provider.Factory{
		"go":         func() (plugin.Plugin, error) { return plugin.New(Go()) },
		"html":       func() (plugin.Plugin, error) { return plugin.New(HTML()) },
		"css":        func() (plugin.Plugin, error) { return plugin.New(CSS()) },
		"javascript": func() (plugin.Plugin, error) { return plugin.New(JavaScript()) },
	}
}
