package provider

import (
	"context"
	"sync"

	"go.gopad.dev/highlight/plugin"
)

// Factory builds a fresh plugin for one language. Registries store one
// factory per language rather than a built plugin, so compiling the
// backing tree-sitter query only happens for languages actually used.
type Factory func() (plugin.Plugin, error)

// Static is the synchronous Grammar Provider: a compile-time registry of
// language factories, memoized so each language is built at most once.
// Lookup and build are O(1) amortized.
type Static struct {
	factories map[string]Factory

	mu     sync.Mutex
	built  map[string]plugin.Plugin
	failed map[string]bool
}

// NewStatic returns a Static provider backed by factories, keyed by
// language id.
func NewStatic(factories map[string]Factory) *Static {
	return &Static{
		factories: factories,
		built:     make(map[string]plugin.Plugin),
		failed:    make(map[string]bool),
	}
}

func (s *Static) Get(_ context.Context, language string) (plugin.Plugin, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.built[language]; ok {
		return p, true
	}
	if s.failed[language] {
		return nil, false
	}

	factory, ok := s.factories[language]
	if !ok {
		return nil, false
	}

	p, err := factory()
	if err != nil {
		s.failed[language] = true
		return nil, false
	}
	s.built[language] = p
	return p, true
}

// Languages returns every language id this provider's registry names,
// regardless of whether it has been built yet.
func (s *Static) Languages() []string {
	out := make([]string, 0, len(s.factories))
	for name := range s.factories {
		out = append(out, name)
	}
	return out
}
