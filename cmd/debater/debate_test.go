package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/lorenzotomasdiez/llm-debate/internal/debate"
)

func TestDebateRejectsInvalidInputBeforeCreatingOutput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"blank topic", []string{"--topic", "  "}, debate.ErrEmptyTopic},
		{"empty judge", []string{"--topic", "X", "--judge", ""}, debate.ErrMissingModel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range flagEnv {
				t.Setenv(key, "")
			}
			dir := t.TempDir()
			out := filepath.Join(dir, "output")

			root := newRootCmd()
			root.SetArgs(append([]string{"debate",
				"--output-dir", out,
				"--env-file", filepath.Join(dir, "missing.env"),
			}, tt.args...))
			root.SetOut(io.Discard)
			root.SetErr(io.Discard)

			if err := root.Execute(); !errors.Is(err, tt.want) {
				t.Fatalf("Execute() = %v, want %v", err, tt.want)
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				entries, _ := os.ReadDir(out)
				t.Errorf("output directory should not exist, found %d entries (stat err %v)", len(entries), err)
			}
		})
	}
}
