package main

import "testing"

func TestApplyEnv(t *testing.T) {
	t.Setenv("TEXSUBMIT_FIGURES", "/env/Figures")
	t.Setenv("TEXSUBMIT_LATEXPAND", "")
	t.Setenv("TEXSUBMIT_BIBEXPORT", "/env/bibexport")

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--bibexport", "/flag/bibexport"}); err != nil {
		t.Fatal(err)
	}
	if err := applyEnv(cmd); err != nil {
		t.Fatalf("applyEnv() error = %v", err)
	}

	if figureDir != "/env/Figures" {
		t.Errorf("figures = %q, want value from environment", figureDir)
	}
	if latexpand != "" {
		t.Errorf("latexpand = %q, want empty value from environment", latexpand)
	}
	if bibTool != "/flag/bibexport" {
		t.Errorf("bibexport = %q, want command-line value", bibTool)
	}
}
