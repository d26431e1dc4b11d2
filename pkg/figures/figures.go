// Package figures finds the figures a flattened LaTeX document includes, copies
// them under sequential canonical names (Fig1, Fig2, ...) and rewrites the
// document to use those names.
//
// Discovery and rewriting share the same scanner, so both passes see the same
// set of references. The Mapping produced by Discover is the only state passed
// between them.
package figures

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hellenic-development/texsubmit/pkg/project"
)

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// ValidateFunc checks a source figure before it is copied.
type ValidateFunc func(path string) error

// Discoverer resolves the figures of a document and copies them to DestDir.
type Discoverer struct {
	Resolver *Resolver
	DestDir  string
	Validate ValidateFunc // optional
	Logger   Logger
}

// Discover scans text, assigns a canonical name to every distinct figure file in
// order of first appearance and copies each file once to DestDir/Fig<N><ext>.
//
// All references are resolved and every name and destination is checked before
// anything is copied, so a failing reference aborts the run without touching DestDir.
func (d *Discoverer) Discover(text string) (*Mapping, error) {
	m := NewMapping()

	for _, match := range Scan(text) {
		ref := Reference{Raw: match.Raw, Line: match.Line, Offset: match.Start}
		if m.reuse(ref) {
			continue
		}

		res, err := d.Resolver.Resolve(match.Raw, match.Line)
		if err != nil {
			return nil, err
		}

		f, isNew := m.assign(ref, res)
		if res.Ambiguous() {
			d.warnf("Figure %q matches several files, using %s (also found: %v)", match.Raw, filepath.Base(res.Path), baseNames(res.Alternatives))
		}
		if !isNew {
			d.infof("  %s also referenced as %q", f.Name, match.Raw)
		}
	}

	if m.Len() == 0 {
		return m, nil
	}

	if err := m.checkNames(); err != nil {
		return nil, err
	}
	if err := d.checkDestinations(m); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(d.DestDir, 0755); err != nil {
		return nil, &FilesystemError{Op: "create directory", Path: d.DestDir, Err: err}
	}

	for _, f := range m.figures {
		if d.Validate != nil {
			if err := d.Validate(f.Source); err != nil {
				return nil, fmt.Errorf("figure %s (%s): %w", f.Name, f.Source, err)
			}
		}

		dest := filepath.Join(d.DestDir, f.FileName())
		if canonicalPath(dest) != f.Source {
			if err := project.CopyFile(f.Source, dest); err != nil {
				return nil, &FilesystemError{Op: "copy", Path: f.Source, Err: err}
			}
		}
		f.Dest = dest
		d.infof("  %s -> %s", filepath.Base(f.Source), f.FileName())
	}

	return m, nil
}

// checkDestinations fails when a figure would be copied over the source file of
// another figure, which happens when DestDir is also a figure root.
func (d *Discoverer) checkDestinations(m *Mapping) error {
	for _, f := range m.figures {
		dest := canonicalPath(filepath.Join(d.DestDir, f.FileName()))
		other, ok := m.byPath[dest]
		if !ok || other == f {
			continue
		}
		return &FilesystemError{
			Op:   fmt.Sprintf("copy %s to", f.Name),
			Path: dest,
			Err:  fmt.Errorf("%w %s", ErrOverwritesSource, other.Name),
		}
	}
	return nil
}

func (d *Discoverer) infof(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Infof(format, args...)
	}
}

func (d *Discoverer) warnf(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Warnf(format, args...)
	}
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}
