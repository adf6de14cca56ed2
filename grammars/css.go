package grammars

import (
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"

	"go.gopad.dev/highlight/language"
)

var cssHighlights = []byte(`
(tag_name) @tag
(class_name) @type
(id_name) @constant
(property_name) @property
(feature_name) @property
(comment) @comment
(string_value) @string
(color_value) @constant
(integer_value) @number
(float_value) @number
(unit) @type.builtin
(function_name) @function
["@media" "@import" "@keyframes" "@font-face" "@supports"] @keyword
["{" "}" "(" ")" "[" "]"] @punctuation.bracket
[":" ";" ","] @punctuation.delimiter
["~" ">" "+" "-" "*" "/" "="] @operator
`)

var cssInjections = []byte("")

// CSS returns the statically-linked CSS grammar, an injection target for
// the style-element scenario. Inline `style="..."` attributes are not
// routed to it.
func CSS() language.Language {
	return language.New("css", tree_sitter_css.Language(), cssHighlights, cssInjections)
}
