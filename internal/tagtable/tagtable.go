// Package tagtable maps tree-sitter capture names onto the compact HTML
// tag suffixes the renderer emits, e.g. "keyword.control.import" -> "k"
// for a `<a-k>` element. The table is grounded on arborium-theme's
// capture-to-slot mapping, collapsed directly to tag suffixes since this
// engine's HTML renderer has no separate theme-slot indirection.
package tagtable

import "strings"

// Default is the built-in capture -> tag table. Unknown captures fall back
// to the longest known dotted prefix; a capture with no known prefix at
// all produces no tag and its text is emitted unwrapped.
var Default = Table{
	"keyword":              "k",
	"include":              "k",
	"conditional":          "k",
	"repeat":               "k",
	"exception":            "k",
	"storageclass":         "k",
	"preproc":              "k",
	"define":               "k",
	"structure":            "k",
	"function":             "f",
	"function.macro":       "m",
	"method":               "f",
	"string":               "s",
	"string.escape":        "s",
	"character":            "s",
	"comment":              "c",
	"type":                 "t",
	"type.builtin":         "t",
	"variable":             "v",
	"variable.builtin":     "v",
	"variable.parameter":   "v",
	"constant":             "co",
	"constant.builtin":     "co",
	"number":               "n",
	"boolean":               "co",
	"operator":              "o",
	"punctuation":           "p",
	"punctuation.bracket":   "p",
	"punctuation.delimiter": "p",
	"punctuation.special":   "p",
	"property":              "pr",
	"field":                 "pr",
	"attribute":             "at",
	"tag":                   "tg",
	"tag.attribute":         "at",
	"tag.delimiter":         "p",
	"macro":                 "m",
	"label":                 "l",
	"namespace":             "ns",
	"module":                "ns",
	"constructor":           "cr",
	"text.title":            "tt",
	"markup.heading":        "tt",
	"text.strong":           "st",
	"markup.bold":           "st",
	"text.emphasis":         "em",
	"markup.italic":         "em",
	"text.uri":              "tu",
	"text.reference":        "tu",
	"text.literal":          "tl",
	"markup.raw":            "tl",
	"text.strikethrough":    "tx",
	"diff.plus":             "da",
	"diff.minus":            "dd",
	"embedded":              "eb",
	"error":                 "er",
	"spell":                 "",
	"nospell":               "",
}

// Table is a capture-name -> tag suffix map.
type Table map[string]string

// Lookup resolves capture to a tag using exact match first, then the
// longest dotted prefix of capture that has an entry. ok is false when no
// prefix, including the exact name, is known.
func (t Table) Lookup(capture string) (tag string, ok bool) {
	capture = strings.TrimPrefix(capture, "@")
	for capture != "" {
		if tag, present := t[capture]; present {
			return tag, true
		}
		idx := strings.LastIndex(capture, ".")
		if idx == -1 {
			break
		}
		capture = capture[:idx]
	}
	return "", false
}
