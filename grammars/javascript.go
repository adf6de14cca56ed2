package grammars

import (
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	"go.gopad.dev/highlight/language"
)

var javascriptHighlights = []byte(`
(function_declaration name: (identifier) @function)
(method_definition name: (property_identifier) @function.method)
(call_expression function: (identifier) @function.call)
(call_expression function: (member_expression property: (property_identifier) @function.call))
(class_declaration name: (identifier) @type)
(property_identifier) @property
(shorthand_property_identifier) @property
(identifier) @variable

[
  "function" "return" "if" "else" "for" "while" "do" "switch" "case"
  "default" "break" "continue" "var" "let" "const" "class" "extends"
  "new" "delete" "typeof" "instanceof" "in" "of" "try" "catch" "finally"
  "throw" "async" "await" "yield" "import" "export" "from" "as"
] @keyword

(comment) @comment
(string) @string
(template_string) @string
(regex) @string.regexp
(escape_sequence) @string.escape
(number) @number
(true) @constant.builtin
(false) @constant.builtin
(null) @constant.builtin
(undefined) @constant.builtin

["+" "-" "*" "/" "%" "=" "==" "===" "!=" "!==" "<" ">" "<=" ">=" "&&" "||" "!" "??" "=>" "+=" "-=" "..."] @operator
["(" ")" "[" "]" "{" "}"] @punctuation.bracket
["," "." ";" ":"] @punctuation.delimiter
`)

var javascriptInjections = []byte("")

// JavaScript returns the statically-linked JavaScript grammar, an
// injection target for the script-element scenario.
func JavaScript() language.Language {
	return language.New("javascript", tree_sitter_javascript.Language(), javascriptHighlights, javascriptInjections)
}
