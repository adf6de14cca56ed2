package grammars

import (
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"

	"go.gopad.dev/highlight/language"
)

var htmlHighlights = []byte(`
(tag_name) @tag
(erroneous_end_tag_name) @tag.delimiter
(attribute_name) @attribute
(attribute_value) @string
(comment) @comment
(doctype) @constant
["<" ">" "</" "/>"] @punctuation.bracket
"=" @operator
`)

// htmlInjections routes <script> and <style> element bodies to their own
// grammars. This is the injection source scenarios S2/S3 exercise:
// CSS-in-HTML and JS-in-HTML. Only #set! properties are used, not text
// predicates like #eq? — the plugin's property-settings scan doesn't
// evaluate query predicates, only the static property table, so a
// pattern depending on matched text (e.g. an inline `style="..."`
// attribute) can't be expressed here without predicate support.
var htmlInjections = []byte(`
(script_element
  (raw_text) @injection.content
  (#set! injection.language "javascript"))

(style_element
  (raw_text) @injection.content
  (#set! injection.language "css"))
`)

// HTML returns the statically-linked HTML grammar, the injection source
// for the CSS- and JavaScript-in-HTML scenarios.
func HTML() language.Language {
	return language.New("html", tree_sitter_html.Language(), htmlHighlights, htmlInjections)
}
