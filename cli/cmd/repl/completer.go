package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/sdl/lang/ast"
	"github.com/ardnew/sdl/lang/grammar"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "show", "symbols", "edit", "clear", "quit"}

// showModes are the arguments accepted by the show command.
var showModes = []string{"tree", "source", "json", "yaml"}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes. This includes whitespace, the member-access dot, and operator,
// punctuation and markup characters.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']', '{', '}',
		'+', '-', '*', '/', '%', '^',
		'<', '>', '=', '!',
		'&', '|', ',', '?', ':', ';',
		'"', '\'':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary (after a space,
// between dots, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// inTagName reports whether the word starting at wordStart names an
// element, i.e. it directly follows "<" or "</".
func inTagName(input string, wordStart int) bool {
	prefix := strings.TrimSuffix(input[:wordStart], "/")

	return strings.HasSuffix(prefix, "<")
}

// parentPath returns the dot-separated prefix path leading up to the current
// word, considering only the contiguous member-access chain. For input
// "x + item.user.na" with the word "na", the parent path is "item.user".
// Returns "" for top-level words.
func parentPath(input string, wordStart int) string {
	prefix := input[:wordStart]
	if !strings.HasSuffix(prefix, ".") {
		return ""
	}

	prefix = strings.TrimRight(prefix, ".")

	pos := len(prefix)

	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(prefix[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	return strings.Trim(prefix[pos:], ".")
}

// symbolIndex records the names seen in parsed input, for completion.
type symbolIndex struct {
	children map[string]*symbolIndex
	tags     map[string]struct{}
}

func newSymbolIndex() *symbolIndex {
	return &symbolIndex{
		children: map[string]*symbolIndex{},
		tags:     map[string]struct{}{},
	}
}

// add records every symbol path and element name in n. Element and
// attribute names are markup and are not recorded as symbols.
func (s *symbolIndex) add(n ast.Node) {
	markup := map[*ast.Symbol]struct{}{}

	for node := range ast.All(n) {
		switch node := node.(type) {
		case *ast.Template:
			if tag := node.Tag(); tag != nil {
				s.tags[tag.Name()] = struct{}{}
				markup[tag] = struct{}{}
			}

			for _, attr := range node.Attributes() {
				markup[attr] = struct{}{}
			}

		case *ast.Symbol:
			if _, ok := markup[node]; !ok {
				s.insert(node.Segments())
			}
		}
	}
}

func (s *symbolIndex) insert(segments []string) {
	cur := s

	for _, seg := range segments {
		next, ok := cur.children[seg]
		if !ok {
			next = &symbolIndex{children: map[string]*symbolIndex{}}
			cur.children[seg] = next
		}

		cur = next
	}
}

// names returns the sorted names directly below the given dotted path.
func (s *symbolIndex) names(path string) []string {
	cur := s

	if path != "" {
		for seg := range strings.SplitSeq(path, ".") {
			next, ok := cur.children[seg]
			if !ok {
				return nil
			}

			cur = next
		}
	}

	return slices.Sorted(maps.Keys(cur.children))
}

// seenTags returns the sorted element names seen.
func (s *symbolIndex) seenTags() []string {
	return slices.Sorted(maps.Keys(s.tags))
}

// tagNames returns the void elements followed by the other element names
// seen.
func (s *symbolIndex) tagNames() []string {
	names := slices.Clone(grammar.VoidElements)

	for _, tag := range s.seenTags() {
		if !slices.Contains(names, tag) {
			names = append(names, tag)
		}
	}

	return names
}

// candidates returns the valid completions for the word at wordStart.
func (s *symbolIndex) candidates(input string, wordStart int) []string {
	if inTagName(input, wordStart) {
		return s.tagNames()
	}

	if parent := parentPath(input, wordStart); parent != "" {
		return s.names(parent)
	}

	return append(slices.Clone(grammar.Keywords), s.names("")...)
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// It returns the matches (ranked best-first), the candidate list, and the word
// boundaries. When the current word is empty at the top level, it returns nil
// matches. When the word is empty after a dot or "<", it returns every
// candidate so the user can browse them.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, ws, we := wordBounds(input, cursor)
	wordStart, wordEnd = ws, we

	browse := false

	if m.mode == modeCtrl {
		fields := strings.Fields(input[:wordStart])

		switch {
		case len(fields) == 0:
			candidates = ctrlCommands
		case len(fields) == 1 && fields[0] == "show":
			candidates, browse = showModes, true
		default:
			return nil, nil, wordStart, wordEnd
		}
	} else {
		candidates = m.symbols.candidates(input, wordStart)
		browse = inTagName(input, wordStart) || parentPath(input, wordStart) != ""
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	if word == "" {
		// At the top level, keep the hint text visible.
		if !browse {
			return nil, nil, wordStart, wordEnd
		}

		matches = make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, candidates, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Keywords are rendered bold.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	if slices.Contains(grammar.Keywords, match.Str) {
		baseStyle = baseStyle.Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	return b.String()
}
