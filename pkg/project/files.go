package project

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// SupportKind describes a group of files the final document needs at compile time
// besides itself and its figures.
type SupportKind struct {
	Pattern string // glob relative to the project directory
	Label   string
}

// SupportKinds lists the class, style and bibliography-style files copied next to the output document.
var SupportKinds = []SupportKind{
	{Pattern: "*.cls", Label: "class"},
	{Pattern: "*.sty", Label: "style"},
	{Pattern: "*.bst", Label: "bibliography style"},
}

// CopiedFiles reports, per support kind label, the file names copied.
type CopiedFiles map[string][]string

// Total returns the number of copied files across all kinds.
func (c CopiedFiles) Total() int {
	n := 0
	for _, files := range c {
		n += len(files)
	}
	return n
}

// CopySupportFiles copies every file matching SupportKinds from srcDir into dstDir.
func CopySupportFiles(srcDir, dstDir string) (CopiedFiles, error) {
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %q: %w", dstDir, err)
	}

	copied := make(CopiedFiles)
	for _, kind := range SupportKinds {
		matches, err := filepath.Glob(filepath.Join(srcDir, kind.Pattern))
		if err != nil {
			return copied, fmt.Errorf("glob %s: %w", kind.Pattern, err)
		}
		sort.Strings(matches)

		for _, src := range matches {
			name := filepath.Base(src)
			if err := CopyFile(src, filepath.Join(dstDir, name)); err != nil {
				return copied, err
			}
			copied[kind.Label] = append(copied[kind.Label], name)
		}
	}

	return copied, nil
}

// CopyFile copies the regular file src to dst, truncating dst if it exists.
// The source permission bits are kept.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", src, err)
	}

	// Copying a file onto itself would truncate it.
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return nil
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create file %q: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to write file %q: %w", dst, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close file %q: %w", dst, err)
	}

	return nil
}

// WriteFileAtomic writes data to a temporary file in the destination directory
// and renames it over path, so readers never observe a half-written document.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %q: %w", dir, err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("failed to write %q: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync %q: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close %q: %w", tmpPath, err)
	}
	_ = os.Chmod(tmpPath, perm)

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %q: %w", path, err)
	}

	return nil
}
