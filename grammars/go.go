package grammars

import (
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"go.gopad.dev/highlight/language"
)

var goHighlights = []byte(`
(function_declaration name: (identifier) @function)
(method_declaration name: (field_identifier) @function.method)
(call_expression function: (identifier) @function.call)
(call_expression function: (selector_expression field: (field_identifier) @function.call))
(type_identifier) @type
(package_identifier) @namespace
(field_identifier) @property
(parameter_declaration name: (identifier) @variable.parameter)
(identifier) @variable

[
  "func" "return" "if" "else" "for" "range" "switch" "case" "default"
  "go" "defer" "select" "var" "const" "type" "struct" "interface"
  "package" "import" "break" "continue" "fallthrough" "map" "chan"
] @keyword

(comment) @comment
(interpreted_string_literal) @string
(raw_string_literal) @string
(rune_literal) @string
(escape_sequence) @string.escape
(int_literal) @number
(float_literal) @number
(true) @constant.builtin
(false) @constant.builtin
(nil) @constant.builtin

["+" "-" "*" "/" "%" "&" "|" "^" "<<" ">>" "&^" "+=" "-=" "*=" "/=" "%=" "&=" "|=" "^=" "<<=" ">>=" "&^=" "&&" "||" "<-" "++" "--" "==" "<" ">" "=" "!" "!=" "<=" ">=" ":=" "..." "*" "&"] @operator
["(" ")" "[" "]" "{" "}"] @punctuation.bracket
["," "." ";" ":"] @punctuation.delimiter
`)

var goInjections = []byte("")

// Go returns the statically-linked Go grammar, grounded on the teacher
// repo's own dependency (github.com/tree-sitter/tree-sitter-go) and query
// shape, generalized from a fixed capture vocabulary into the engine's
// free-form capture-name model.
func Go() language.Language {
	return language.New("go", tree_sitter_go.Language(), goHighlights, goInjections)
}
