package figures

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOverwritesSource is wrapped by the FilesystemError returned when a figure's
// canonical destination is the source file of another figure.
var ErrOverwritesSource = errors.New("destination is the source of another figure")

// UnresolvedFigureError reports a figure reference that matched no file,
// with or without the known image extensions.
type UnresolvedFigureError struct {
	Raw   string
	Line  int
	Tried []string
}

func (e *UnresolvedFigureError) Error() string {
	msg := fmt.Sprintf("figure %q on line %d not found", e.Raw, e.Line)
	if len(e.Tried) > 0 {
		msg += " (tried " + strings.Join(e.Tried, ", ") + ")"
	}
	return msg
}

// MappingConsistencyError reports a reference met by the rewriter that discovery never mapped.
// It means the two passes disagreed on the references in the document.
type MappingConsistencyError struct {
	Raw  string
	Line int
}

func (e *MappingConsistencyError) Error() string {
	return fmt.Sprintf("figure %q on line %d has no canonical name", e.Raw, e.Line)
}

// NameConflictError reports a reference spelled as the canonical name of a
// different figure. Rewriting would give two figures the same name, or rename
// an already canonical reference on a second pass.
type NameConflictError struct {
	Raw      string
	Line     int
	Name     string // canonical name assigned to the referenced file
	Conflict string // figure that owns Raw as its canonical name
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("figure %q on line %d becomes %s, but %q is the canonical name of %s; rename the source file",
		e.Raw, e.Line, e.Name, e.Raw, e.Conflict)
}

// FilesystemError wraps a failed copy or directory operation.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }
