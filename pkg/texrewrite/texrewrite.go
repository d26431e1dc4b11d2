// Package texrewrite holds the regular-expression rewrites applied to the
// flattened document besides figure renaming, and the comment detection they
// share with the figure scanner.
package texrewrite

import (
	"regexp"
	"strings"
)

var (
	// \graphicspath{{a/}{b/}}: one level of nested braces.
	graphicsPathPattern = regexp.MustCompile(`\\graphicspath\s*\{(?:[^{}]|\{[^{}]*\})*\}`)
	bibliographyPattern = regexp.MustCompile(`\\bibliography\s*\{[^{}]*\}`)
)

// StripGraphicsPath removes every uncommented \graphicspath command. Canonical
// figures are copied next to the document, so the search path no longer applies.
func StripGraphicsPath(text string) string {
	return replaceUncommented(graphicsPathPattern, text, func(string) string { return "" })
}

// RetargetBibliography points every uncommented \bibliography command at name.
func RetargetBibliography(text, name string) string {
	repl := `\bibliography{` + name + `}`
	return replaceUncommented(bibliographyPattern, text, func(string) string { return repl })
}

func replaceUncommented(re *regexp.Regexp, text string, repl func(match string) string) string {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))

	last := 0
	for _, loc := range locs {
		if InComment(text, loc[0]) {
			continue
		}
		sb.WriteString(text[last:loc[0]])
		sb.WriteString(repl(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	sb.WriteString(text[last:])

	return sb.String()
}

// InComment reports whether pos is preceded on its line by an unescaped %.
func InComment(text string, pos int) bool {
	lineStart := strings.LastIndexByte(text[:pos], '\n') + 1
	return CommentIndex(text[lineStart:pos]) >= 0
}

// CommentIndex returns the index of the first unescaped % in line, or -1.
// A % preceded by an odd number of backslashes is a literal percent sign.
func CommentIndex(line string) int {
	backslashes := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			backslashes++
			continue
		case '%':
			if backslashes%2 == 0 {
				return i
			}
		}
		backslashes = 0
	}
	return -1
}
