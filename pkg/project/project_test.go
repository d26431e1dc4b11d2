package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	mainFile := filepath.Join(dir, "Main.tex")
	auxFile := filepath.Join(dir, "Main.aux")
	figDir := filepath.Join(dir, "Figures")
	tool := filepath.Join(dir, "latexpand")

	writeFile(t, mainFile, `\documentclass{article}`)
	writeFile(t, auxFile, "")
	writeFile(t, tool, "#!/usr/bin/perl\n")
	if err := os.Mkdir(figDir, 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		in       Inputs
		wantErrs []string
	}{
		{
			name: "all inputs present",
			in:   Inputs{MainFile: mainFile, FigureDir: figDir, Flattener: tool, AuxFile: auxFile},
		},
		{
			name: "flattener and aux optional",
			in:   Inputs{MainFile: mainFile, FigureDir: figDir},
		},
		{
			name:     "missing main and aux",
			in:       Inputs{MainFile: filepath.Join(dir, "Other.tex"), FigureDir: figDir, AuxFile: filepath.Join(dir, "Other.aux")},
			wantErrs: []string{"Other.tex", "compile the document first"},
		},
		{
			name:     "figure path is a file",
			in:       Inputs{MainFile: mainFile, FigureDir: mainFile},
			wantErrs: []string{"is not a directory"},
		},
		{
			name:     "flattener is a directory",
			in:       Inputs{MainFile: mainFile, FigureDir: figDir, Flattener: figDir},
			wantErrs: []string{"is a directory, not an executable file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if len(tt.wantErrs) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want errors containing %q", tt.wantErrs)
			}
			for _, want := range tt.wantErrs {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() = %q, want it to contain %q", err.Error(), want)
				}
			}
		})
	}
}

func TestCopySupportFiles(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	writeFile(t, filepath.Join(src, "elsarticle.cls"), "cls")
	writeFile(t, filepath.Join(src, "macros.sty"), "sty")
	writeFile(t, filepath.Join(src, "apa.bst"), "bst")
	writeFile(t, filepath.Join(src, "notes.txt"), "ignored")

	copied, err := CopySupportFiles(src, dst)
	if err != nil {
		t.Fatalf("CopySupportFiles() error = %v", err)
	}
	if copied.Total() != 3 {
		t.Errorf("CopySupportFiles() copied %d files, want 3", copied.Total())
	}
	if got := copied["style"]; len(got) != 1 || got[0] != "macros.sty" {
		t.Errorf("copied[style] = %v, want [macros.sty]", got)
	}
	if _, err := os.Stat(filepath.Join(dst, "notes.txt")); !os.IsNotExist(err) {
		t.Errorf("notes.txt should not be copied, stat err = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dst, "elsarticle.cls"))
	if err != nil || string(data) != "cls" {
		t.Errorf("elsarticle.cls = %q, %v; want %q", data, err, "cls")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Main.tex")
	writeFile(t, path, "old")

	if err := WriteFileAtomic(path, []byte("new"), 0644); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Errorf("content = %q, want %q", data, "new")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1 (temporary file left behind?)", len(entries))
	}
}

func TestCopyFileOntoItself(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elsarticle.cls")
	writeFile(t, path, "class")

	if err := CopyFile(path, path); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "class" {
		t.Errorf("content = %q, want %q", data, "class")
	}
}
