package figures

import "strings"

// Rewrite replaces the file name of every figure-inclusion command in text with
// its canonical name from m. Command names, optional arguments and all text
// outside the braces are kept byte for byte.
//
// A reference whose spelling carried an extension becomes Fig<N><ext>; one without
// becomes Fig<N>. References that already are canonical names are left alone, so
// rewriting a rewritten document changes nothing.
func Rewrite(text string, m *Mapping) (string, error) {
	matches := Scan(text)
	if len(matches) == 0 {
		return text, nil
	}

	var sb strings.Builder
	sb.Grow(len(text))

	last := 0
	for _, match := range matches {
		name, ok := m.replacement(match.Raw)
		if !ok {
			if !m.IsCanonical(match.Raw) {
				return "", &MappingConsistencyError{Raw: match.Raw, Line: match.Line}
			}
			continue
		}

		sb.WriteString(text[last:match.NameStart])
		sb.WriteString(name)
		last = match.NameEnd
	}
	sb.WriteString(text[last:])

	return sb.String(), nil
}
