// Package language bundles a tree-sitter grammar with the query sources a
// [plugin.TreeSitterPlugin] needs: highlights and injections. It is the
// unit the static grammar registry keeps one of per supported language.
// Locals (scope/definition/reference queries) are deliberately not part
// of this bundle — see plugin.New's doc comment for why.
package language

import (
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Language is a statically-linked grammar ready to be wrapped into a
// plugin. The ptr passed to [New] must point at the grammar's
// `TSLanguage*`, as produced by the generated `_binding.c`/cgo glue for
// that grammar.
type Language struct {
	Name            string
	HighlightsQuery []byte
	InjectionQuery  []byte
	Lang            *tree_sitter.Language
}

// New wraps a raw tree-sitter language pointer and its query sources into a
// [Language].
func New(name string, ptr unsafe.Pointer, highlightsQuery, injectionQuery []byte) Language {
	return Language{
		Name:            name,
		HighlightsQuery: highlightsQuery,
		InjectionQuery:  injectionQuery,
		Lang:            tree_sitter.NewLanguage(ptr),
	}
}
