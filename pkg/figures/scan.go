package figures

import (
	"regexp"
	"strings"

	"github.com/hellenic-development/texsubmit/pkg/texrewrite"
)

// includeGraphicsPattern matches \includegraphics and \includegraphics* with any
// number of [...] arguments, capturing the braced file name.
var includeGraphicsPattern = regexp.MustCompile(`\\includegraphics\*?\s*(?:\[[^\]]*\]\s*)*\{([^{}]*)\}`)

// Match is a single figure-inclusion command found in document text.
type Match struct {
	Start, End         int // byte span of the whole command
	NameStart, NameEnd int // byte span of the text between the braces
	Raw                string
	Line               int // 1-based
}

// Scan returns every uncommented figure-inclusion command in text, left to right.
//
// Scanning is regular-expression based and does not understand LaTeX: macros that
// wrap \includegraphics, \iffalse blocks and verbatim environments are not
// recognized.
func Scan(text string) []Match {
	locs := includeGraphicsPattern.FindAllStringSubmatchIndex(text, -1)
	matches := make([]Match, 0, len(locs))

	line, lineAt := 1, 0
	for _, loc := range locs {
		if texrewrite.InComment(text, loc[0]) {
			continue
		}

		line += strings.Count(text[lineAt:loc[0]], "\n")
		lineAt = loc[0]

		matches = append(matches, Match{
			Start:     loc[0],
			End:       loc[1],
			NameStart: loc[2],
			NameEnd:   loc[3],
			Raw:       strings.TrimSpace(text[loc[2]:loc[3]]),
			Line:      line,
		})
	}

	return matches
}
