package lang

import "strings"

// DefaultTabSize is the number of spaces each tab expands to.
const DefaultTabSize = 4

// Normalize prepares raw source text for the grammar. In order, it converts
// CRLF line endings to LF, splices every backslash-newline continuation, and
// replaces each tab with tabSize spaces. A negative tabSize is treated as 0.
//
// Text containing none of CRLF, continuations or tabs is returned unchanged.
func Normalize(text string, tabSize int) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\\\n", "")

	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", max(tabSize, 0)))
}
