package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			assert.Contains(t, executeRoot(t, "completion", shell), "vtcss")
		})
	}
}

func TestFlagValueCompletion(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "generate format", args: []string{"__complete", "generate", "--format", ""}, want: []string{"css", "json"}},
		{name: "check output format", args: []string{"__complete", "check", "--output-format", ""}, want: []string{"issues", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := executeRoot(t, tt.args...)
			for _, want := range tt.want {
				assert.Contains(t, out, want+"\n")
			}
		})
	}
}
