package provider

import (
	"context"
	"sync"

	"github.com/wippyai/wasm-runtime/runtime"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"go.gopad.dev/highlight/plugin"
	"go.gopad.dev/highlight/wasmplugin"
)

// Loader resolves a language name to the bytes of a WASM component
// implementing the Grammar Plugin ABI, or an error/absence if none is
// available. It is the host callback the asynchronous provider is built
// around.
type Loader func(ctx context.Context, language string) ([]byte, error)

// Async is the asynchronous Grammar Provider: a [Loader] callback backed
// by a load cache and in-flight request coalescing, so concurrent
// highlight calls that both need an unloaded language trigger exactly one
// load. Failed loads are logged and reported as absent, never cached —
// a transient failure (network blip, cold WASM compile cache) should not
// permanently blacklist a language.
type Async struct {
	rt     *runtime.Runtime
	loader Loader
	logger *zap.Logger

	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]plugin.Plugin
}

// NewAsync returns an Async provider that loads components through rt
// using loader. logger may be nil, in which case load failures are
// swallowed silently rather than logged.
func NewAsync(rt *runtime.Runtime, loader Loader, logger *zap.Logger) *Async {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Async{
		rt:     rt,
		loader: loader,
		logger: logger,
		cache:  make(map[string]plugin.Plugin),
	}
}

func (a *Async) Get(ctx context.Context, language string) (plugin.Plugin, bool) {
	a.mu.RLock()
	if p, ok := a.cache[language]; ok {
		a.mu.RUnlock()
		return p, true
	}
	a.mu.RUnlock()

	v, err, _ := a.group.Do(language, func() (any, error) {
		wasmBytes, err := a.loader(ctx, language)
		if err != nil {
			return nil, err
		}
		p, err := wasmplugin.Load(ctx, a.rt, language, wasmBytes, a.logger)
		if err != nil {
			return nil, err
		}
		a.mu.Lock()
		a.cache[language] = p
		a.mu.Unlock()
		return p, nil
	})
	if err != nil {
		a.logger.Warn("provider: async load failed", zap.String("language", language), zap.Error(err))
		return nil, false
	}

	p, ok := v.(plugin.Plugin)
	return p, ok
}
