/*
Package highlight is a syntax-highlighting engine built on tree-sitter: it
drives incremental parsers through a session-oriented lifecycle, turns raw
overlapping captures into a flat non-overlapping span stream, and
recursively resolves language injections (CSS inside a `<style>` tag
inside HTML, and so on) through a pluggable grammar provider that may
resolve grammars synchronously (statically linked) or asynchronously
(WASM components loaded on demand).

# Usage

	prov := provider.NewStatic(grammars.Factories())
	h := highlight.New(prov)

	spans, err := h.Highlight(context.Background(), "go", source, 8)
	if err != nil {
		log.Fatal(err)
	}

	out := html.NewRenderer().Render(source, spans)

Injections are resolved by recursively asking the same [provider.Provider]
for each language an injection names, up to a caller-supplied max depth.
Languages the provider can't resolve are skipped, not treated as errors:
an unhighlighted region of source is a degraded result, not a failure.

For callers who manage a document's lifetime across multiple edits rather
than calling Highlight fresh each time, see package document.
*/
package highlight
