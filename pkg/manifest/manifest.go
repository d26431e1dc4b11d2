// Package manifest records which source file became which canonical figure,
// so the renaming of a submission can be traced back later.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hellenic-development/texsubmit/pkg/figures"
	"gopkg.in/yaml.v3"
)

// FileName is the manifest's name inside the output directory.
const FileName = "figures.yaml"

// Entry describes one canonical figure.
type Entry struct {
	Name      string   `yaml:"name"`
	File      string   `yaml:"file"`
	Source    string   `yaml:"source"`
	FirstLine int      `yaml:"first_line"`
	Spellings []string `yaml:"spellings"`
}

// Manifest is the YAML document written next to the converted main file.
type Manifest struct {
	Document  string  `yaml:"document"`
	FigureDir string  `yaml:"figure_dir"`
	Generated string  `yaml:"generated"`
	Figures   []Entry `yaml:"figures"`
}

// FromMapping builds a manifest from the figures assigned during a conversion.
func FromMapping(document, figureDir string, m *figures.Mapping) Manifest {
	man := Manifest{
		Document:  document,
		FigureDir: figureDir,
		Generated: time.Now().Format(time.RFC3339),
		Figures:   make([]Entry, 0, m.Len()),
	}

	for _, f := range m.Figures() {
		man.Figures = append(man.Figures, Entry{
			Name:      f.Name,
			File:      f.FileName(),
			Source:    f.Source,
			FirstLine: f.First.Line,
			Spellings: f.Spellings,
		})
	}

	return man
}

// Write saves the manifest as YAML at path.
func Write(path string, man Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(&man)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	return nil
}

// Load reads a manifest written by Write.
func Load(path string) (Manifest, error) {
	var man Manifest

	data, err := os.ReadFile(path)
	if err != nil {
		return man, fmt.Errorf("failed to read manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &man); err != nil {
		return man, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	return man, nil
}
