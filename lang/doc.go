// Package lang parses sdl documents into syntax trees.
//
// An sdl document mixes statements, expressions and HTML-like tags:
//
//	<ul class="list">
//	  {for item in items {
//	    <li id={item.id}>{item.name}</li>
//	  }}
//	</ul>
//	if len(items) == 0 { <p>nothing here</p> }
//
// # Pipeline
//
// A parse runs in four steps:
//
//  1. [Normalize] converts CRLF to LF, splices backslash-newline
//     continuations and expands tabs.
//  2. The grammar in package grammar lexes the text and builds a concrete
//     parse tree, rejecting input that matches no production with a
//     [*SyntaxError].
//  3. The tree builder translates each concrete production into nodes of
//     package ast. Flat operator sequences are nested by
//     [OperatorTable.Resolve], and tags are classified as self-closing,
//     open/close or malformed without failing the surrounding document.
//  4. Each node records the byte range of normalized text it came from.
//
// Parsing is all-or-nothing: on failure no tree is returned.
//
// # Usage
//
//	cfg := lang.NewParserConfig(lang.WithTabSize(2))
//	prog, err := cfg.Parse(ctx, lang.File("page.sdl"))
//
// A [Cache] shares parsed programs between callers that parse the same
// input with the same settings.
package lang
