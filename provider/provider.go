// Package provider implements the Grammar Provider contract: resolving a
// language name to a [plugin.Plugin], memoized, with a synchronous
// (compile-time registry) and an asynchronous (WASM component, host
// callback) variant.
package provider

import (
	"context"

	"go.gopad.dev/highlight/plugin"
)

// Provider resolves a language name to a plugin. Absence — the language
// is unsupported, or async resolution failed — is a hard, non-error
// result: ok is false, and Get has no error return. This lets the engine treat
// "can't highlight this injection" as a normal degraded outcome rather
// than something callers must handle defensively at every call site.
type Provider interface {
	Get(ctx context.Context, language string) (plugin.Plugin, bool)
}
