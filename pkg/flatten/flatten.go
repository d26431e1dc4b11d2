// Package flatten produces the single-file text of a multi-file LaTeX project
// by running latexpand on the main document.
package flatten

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hellenic-development/texsubmit/pkg/extern"
)

// ErrEmptyOutput is returned when the flattening tool succeeds but prints nothing.
var ErrEmptyOutput = errors.New("flattened document is empty")

// Flattener runs a latexpand-compatible tool: it takes the main document and
// prints the expanded source on standard output.
type Flattener struct {
	Tool        string // empty: the main document is already flat and is read as-is
	Interpreter string // e.g. "perl"; empty runs Tool directly
	Timeout     time.Duration
}

// Flatten returns the expanded text of mainPath, normalized to UTF-8 when it was
// written with a byte order mark.
func (f *Flattener) Flatten(ctx context.Context, mainPath string) (string, Encoding, error) {
	var data []byte
	if f.Tool == "" {
		raw, err := os.ReadFile(mainPath)
		if err != nil {
			return "", "", fmt.Errorf("read main document: %w", err)
		}
		data = raw
	} else {
		out, err := f.run(ctx, mainPath)
		if err != nil {
			return "", "", err
		}
		data = out
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return "", "", ErrEmptyOutput
	}

	return Normalize(data)
}

func (f *Flattener) run(ctx context.Context, mainPath string) ([]byte, error) {
	// The tool runs in the main document's directory so \input paths resolve.
	tool, err := filepath.Abs(f.Tool)
	if err != nil {
		return nil, fmt.Errorf("resolve flattening tool: %w", err)
	}

	cmd := extern.Command{
		Name:    tool,
		Args:    []string{filepath.Base(mainPath)},
		Dir:     filepath.Dir(mainPath),
		Timeout: f.Timeout,
	}
	if f.Interpreter != "" {
		cmd.Name = f.Interpreter
		cmd.Args = append([]string{tool}, cmd.Args...)
	}

	out, err := extern.Run(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("flatten %s: %w", mainPath, err)
	}
	return out, nil
}
