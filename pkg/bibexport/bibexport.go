// Package bibexport trims a bibliography database down to the entries a
// compiled document cites, by running bibexport on its .aux file.
package bibexport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hellenic-development/texsubmit/pkg/extern"
)

// DefaultTool is the citation-extraction program looked up on PATH.
const DefaultTool = "bibexport"

// Exporter runs the citation-extraction tool.
type Exporter struct {
	Tool    string
	Timeout time.Duration
}

// AuxPath returns the auxiliary file LaTeX writes next to mainPath.
func AuxPath(mainPath string) string {
	return strings.TrimSuffix(mainPath, filepath.Ext(mainPath)) + ".aux"
}

// Export writes the cited entries of auxPath to outPath.
func (e *Exporter) Export(ctx context.Context, auxPath, outPath string) error {
	tool := e.Tool
	if tool == "" {
		tool = DefaultTool
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	absOut, err := filepath.Abs(outPath)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", outPath, err)
	}

	// bibexport resolves the .bib databases named in the .aux relative to its directory.
	_, err = extern.Run(ctx, extern.Command{
		Name:    tool,
		Args:    []string{"-o", absOut, filepath.Base(auxPath)},
		Dir:     filepath.Dir(auxPath),
		Timeout: e.Timeout,
	})
	if err != nil {
		return fmt.Errorf("export bibliography: %w", err)
	}

	if info, err := os.Stat(outPath); err != nil || info.Size() == 0 {
		return fmt.Errorf("export bibliography: %s was not written", outPath)
	}

	return nil
}
