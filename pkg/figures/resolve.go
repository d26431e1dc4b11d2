package figures

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions is the lookup order used when a reference omits its extension.
var DefaultExtensions = []string{".pdf", ".png", ".jpg", ".jpeg", ".eps"}

// Resolver maps the raw text of a figure reference to a physical file.
type Resolver struct {
	// Roots are searched in order; the figures directory first, then the project directory.
	Roots []string
	// Extensions defaults to DefaultExtensions.
	Extensions []string
}

// Resolution is the outcome of resolving one reference.
type Resolution struct {
	Path string // absolute, symlinks evaluated when possible
	Ext  string // extension of Path, as found on disk

	// ExplicitExt is true when the raw reference named the file with its extension.
	ExplicitExt bool

	// Alternatives holds the other extension candidates that exist next to Path.
	// A non-empty list means the reference was ambiguous and Path won on priority.
	Alternatives []string
}

// Ambiguous reports whether several files could have satisfied the reference.
func (r Resolution) Ambiguous() bool { return len(r.Alternatives) > 0 }

// Resolve finds the file referenced by raw. For every root it tries root/raw and then
// root/<base name of raw>; for each of those the literal file first and then every
// extension in priority order (lower case, then upper case).
func (r *Resolver) Resolve(raw string, line int) (Resolution, error) {
	exts := r.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	var tried []string
	for _, base := range r.bases(raw) {
		tried = append(tried, base)
		if isRegular(base) {
			return Resolution{
				Path:        canonicalPath(base),
				Ext:         filepath.Ext(base),
				ExplicitExt: true,
			}, nil
		}

		var found []string
		var infos []os.FileInfo
	candidates:
		for _, ext := range exts {
			for _, variant := range extVariants(ext) {
				candidate := base + variant
				info, err := os.Stat(candidate)
				if err != nil || !info.Mode().IsRegular() {
					continue
				}
				// case-insensitive filesystems report plot.pdf and plot.PDF as one file
				for _, seen := range infos {
					if os.SameFile(seen, info) {
						continue candidates
					}
				}
				infos = append(infos, info)
				found = append(found, candidate)
			}
		}
		if len(found) > 0 {
			return Resolution{
				Path:         canonicalPath(found[0]),
				Ext:          filepath.Ext(found[0]),
				Alternatives: found[1:],
			}, nil
		}
	}

	return Resolution{}, &UnresolvedFigureError{Raw: raw, Line: line, Tried: tried}
}

func (r *Resolver) bases(raw string) []string {
	if raw == "" {
		return nil
	}

	rel := filepath.FromSlash(raw)
	if filepath.IsAbs(rel) {
		return []string{filepath.Clean(rel)}
	}

	seen := make(map[string]bool)
	var bases []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			bases = append(bases, p)
		}
	}

	for _, root := range r.Roots {
		add(filepath.Join(root, rel))
		add(filepath.Join(root, filepath.Base(rel)))
	}

	return bases
}

func extVariants(ext string) []string {
	upper := strings.ToUpper(ext)
	if upper == ext {
		return []string{ext}
	}
	return []string{ext, upper}
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// canonicalPath is the mapping key: two spellings of one file yield the same string.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}
