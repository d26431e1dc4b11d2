package figures

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CanonicalPrefix is prepended to the figure number to build canonical names.
const CanonicalPrefix = "Fig"

// Reference is one occurrence of a figure in the document.
type Reference struct {
	Raw    string
	Path   string // resolved file
	Line   int
	Offset int // byte offset of the command in the scanned text
}

// Figure is a distinct physical figure file and the canonical name it was given.
type Figure struct {
	Number    int
	Name      string // "Fig<Number>"
	Ext       string // extension of the source file
	Source    string
	Dest      string // set once the copy exists
	First     Reference
	Spellings []string // raw spellings in order of first appearance
}

// FileName returns the canonical file name including the source extension.
func (f Figure) FileName() string { return f.Name + f.Ext }

type spelling struct {
	figure      *Figure
	explicitExt bool
}

// Mapping assigns canonical names to resolved figure files. Entries are keyed by
// resolved path, so different spellings of one file share a name. Entries are only
// added by discovery and are never changed once assigned.
type Mapping struct {
	figures    []*Figure
	byPath     map[string]*Figure
	bySpelling map[string]spelling
	refs       []Reference
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{
		byPath:     make(map[string]*Figure),
		bySpelling: make(map[string]spelling),
	}
}

// Len returns the number of distinct figures.
func (m *Mapping) Len() int { return len(m.figures) }

// Figures returns a copy of every figure in canonical order.
func (m *Mapping) Figures() []Figure {
	out := make([]Figure, len(m.figures))
	for i, f := range m.figures {
		out[i] = *f
		out[i].Spellings = append([]string(nil), f.Spellings...)
	}
	return out
}

// References returns every reference seen by discovery, in document order.
func (m *Mapping) References() []Reference {
	return append([]Reference(nil), m.refs...)
}

// ByPath returns the figure assigned to a resolved path.
func (m *Mapping) ByPath(path string) (Figure, bool) {
	f, ok := m.byPath[path]
	if !ok {
		return Figure{}, false
	}
	return *f, true
}

// Lookup returns the figure a raw spelling was resolved to during discovery.
func (m *Mapping) Lookup(raw string) (Figure, bool) {
	s, ok := m.bySpelling[raw]
	if !ok {
		return Figure{}, false
	}
	return *s.figure, true
}

// IsCanonical reports whether raw already names a figure of the mapping,
// as "Fig2" or "Fig2" followed by that figure's extension.
func (m *Mapping) IsCanonical(raw string) bool {
	for _, f := range m.figures {
		if f.named(raw) {
			return true
		}
	}
	return false
}

// named reports whether raw is the canonical name of f, with or without its extension.
func (f *Figure) named(raw string) bool {
	if raw == f.Name {
		return true
	}
	ext := filepath.Ext(raw)
	return ext != "" && strings.EqualFold(ext, f.Ext) && strings.TrimSuffix(raw, ext) == f.Name
}

// checkNames returns a *NameConflictError for the first spelling that reads as
// the canonical name of a figure other than the one it resolved to.
func (m *Mapping) checkNames() error {
	for _, f := range m.figures {
		for _, raw := range f.Spellings {
			for _, other := range m.figures {
				if other == f || !other.named(raw) {
					continue
				}
				return &NameConflictError{Raw: raw, Line: m.firstLine(raw), Name: f.Name, Conflict: other.Name}
			}
		}
	}
	return nil
}

func (m *Mapping) firstLine(raw string) int {
	for _, ref := range m.refs {
		if ref.Raw == raw {
			return ref.Line
		}
	}
	return 0
}

// replacement returns the text that substitutes raw in the rewritten document.
func (m *Mapping) replacement(raw string) (string, bool) {
	s, ok := m.bySpelling[raw]
	if !ok {
		return "", false
	}
	if s.explicitExt {
		return s.figure.FileName(), true
	}
	return s.figure.Name, true
}

// assign records a reference, creating a new figure when its resolved path is new.
func (m *Mapping) assign(ref Reference, res Resolution) (*Figure, bool) {
	ref.Path = res.Path
	m.refs = append(m.refs, ref)

	f, exists := m.byPath[res.Path]
	if !exists {
		n := len(m.figures) + 1
		f = &Figure{
			Number: n,
			Name:   fmt.Sprintf("%s%d", CanonicalPrefix, n),
			Ext:    res.Ext,
			Source: res.Path,
			First:  ref,
		}
		m.figures = append(m.figures, f)
		m.byPath[res.Path] = f
	}

	if _, seen := m.bySpelling[ref.Raw]; !seen {
		m.bySpelling[ref.Raw] = spelling{figure: f, explicitExt: res.ExplicitExt}
		f.Spellings = append(f.Spellings, ref.Raw)
	}

	return f, !exists
}

// reuse records another occurrence of an already resolved spelling.
func (m *Mapping) reuse(ref Reference) bool {
	s, ok := m.bySpelling[ref.Raw]
	if !ok {
		return false
	}
	ref.Path = s.figure.Source
	m.refs = append(m.refs, ref)
	return true
}
