package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mj1618/flow/internal/runner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// scriptedRunner answers focus and front-window scripts with canned output
// and records every invocation.
type scriptedRunner struct {
	focusOut string
	focusErr error
	frontOut string
	frontErr error
	openErr  error
	calls    [][]string
}

func (r *scriptedRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	switch {
	case name == "open":
		return "", r.openErr
	case len(args) == 2 && strings.HasPrefix(args[1], "set targetTitle"):
		return r.focusOut, r.focusErr
	default:
		return r.frontOut, r.frontErr
	}
}

func useRunner(t *testing.T, r runner.Runner) {
	t.Helper()
	orig := newRunner
	newRunner = func() runner.Runner { return r }
	t.Cleanup(func() { newRunner = orig })
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	_, err := rootCmd.ExecuteC()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"validate", "focus-cursor-window", "capture", "serve"}
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, c := range commands {
		found[c.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestRootCommand_RejectsUnknownFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "agent", "validate", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}
