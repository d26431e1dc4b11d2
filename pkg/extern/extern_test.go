package extern

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		want    string
		wantErr string
	}{
		{
			name: "stdout",
			cmd:  Command{Name: "sh", Args: []string{"-c", "printf hello"}},
			want: "hello",
		},
		{
			name: "working directory",
			cmd:  Command{Name: "sh", Args: []string{"-c", "basename \"$PWD\""}, Dir: "/"},
			want: "/\n",
		},
		{
			name:    "stderr tail",
			cmd:     Command{Name: "sh", Args: []string{"-c", "echo one >&2; echo two >&2; exit 3"}},
			wantErr: "one\ntwo",
		},
		{
			name:    "timeout",
			cmd:     Command{Name: "sh", Args: []string{"-c", "exec sleep 5"}, Timeout: 50 * time.Millisecond},
			wantErr: "timed out after 50ms",
		},
		{
			name:    "missing executable",
			cmd:     Command{Name: "texsubmit-no-such-tool"},
			wantErr: "texsubmit-no-such-tool",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Run(context.Background(), tt.cmd)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Run() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("Run() = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestLastLines(t *testing.T) {
	got := lastLines("a\nb\nc\nd\n", 2)
	if got != "c\nd" {
		t.Errorf("lastLines() = %q, want %q", got, "c\nd")
	}
}
