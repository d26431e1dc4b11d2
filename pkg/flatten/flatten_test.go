package flatten

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/unicode"
)

func TestNormalize(t *testing.T) {
	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(`\section{Über}`))
	if err != nil {
		t.Fatal(err)
	}
	utf16be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(`\section{Über}`))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		in      []byte
		want    string
		wantEnc Encoding
	}{
		{name: "plain utf-8", in: []byte(`\section{Über}`), want: `\section{Über}`, wantEnc: UTF8},
		{name: "utf-8 with bom", in: append([]byte{0xEF, 0xBB, 0xBF}, `\section{A}`...), want: `\section{A}`, wantEnc: UTF8BOM},
		{name: "utf-16le", in: utf16le, want: `\section{Über}`, wantEnc: UTF16LE},
		{name: "utf-16be", in: utf16be, want: `\section{Über}`, wantEnc: UTF16BE},
		{name: "latin1 passes through", in: []byte("caf\xe9"), want: "caf\xe9", wantEnc: Legacy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, enc, err := Normalize(tt.in)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
			if enc != tt.wantEnc {
				t.Errorf("Normalize() encoding = %q, want %q", enc, tt.wantEnc)
			}
		})
	}
}

func TestFlattenWithoutTool(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "Main.tex")
	if err := os.WriteFile(mainPath, []byte("\\begin{document}x\\end{document}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	f := &Flattener{}
	got, enc, err := f.Flatten(context.Background(), mainPath)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	if !strings.Contains(got, "\\begin{document}") || enc != UTF8 {
		t.Errorf("Flatten() = %q, %q", got, enc)
	}
}

// writeScript creates an executable shell script standing in for latexpand.
func writeScript(t *testing.T, dir, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(dir, "fake-latexpand")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFlattenRunsTool(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "Main.tex")
	if err := os.WriteFile(mainPath, []byte("\\input{intro}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "intro.tex"), []byte("Intro text\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// The script runs in the document directory and receives the main file's base name.
	tool := writeScript(t, dir, `[ "$1" = "Main.tex" ] || exit 3; cat intro.tex`)

	f := &Flattener{Tool: tool}
	got, _, err := f.Flatten(context.Background(), mainPath)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	if got != "Intro text\n" {
		t.Errorf("Flatten() = %q, want %q", got, "Intro text\n")
	}
}

func TestFlattenWithInterpreter(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "Main.tex")
	if err := os.WriteFile(mainPath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	tool := writeScript(t, dir, `echo "flat $1"`)

	f := &Flattener{Tool: tool, Interpreter: "sh"}
	got, _, err := f.Flatten(context.Background(), mainPath)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	if got != "flat Main.tex\n" {
		t.Errorf("Flatten() = %q, want %q", got, "flat Main.tex\n")
	}
}

func TestFlattenErrors(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "Main.tex")
	if err := os.WriteFile(mainPath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("empty output", func(t *testing.T) {
		tool := writeScript(t, t.TempDir(), "exit 0")
		_, _, err := (&Flattener{Tool: tool}).Flatten(context.Background(), mainPath)
		if !errors.Is(err, ErrEmptyOutput) {
			t.Errorf("Flatten() error = %v, want ErrEmptyOutput", err)
		}
	})

	t.Run("tool failure reports stderr", func(t *testing.T) {
		tool := writeScript(t, t.TempDir(), "echo 'cannot open intro.tex' >&2; exit 1")
		_, _, err := (&Flattener{Tool: tool}).Flatten(context.Background(), mainPath)
		if err == nil || !strings.Contains(err.Error(), "cannot open intro.tex") {
			t.Errorf("Flatten() error = %v, want stderr in message", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		tool := writeScript(t, t.TempDir(), "exec sleep 5")
		_, _, err := (&Flattener{Tool: tool, Timeout: 50 * time.Millisecond}).Flatten(context.Background(), mainPath)
		if err == nil || !strings.Contains(err.Error(), "timed out") {
			t.Errorf("Flatten() error = %v, want timeout", err)
		}
	})
}
