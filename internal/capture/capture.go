// Package capture is the stdout-capture prototype: it assembles a shell
// command from an argument vector and, on request, runs it and saves its
// combined output to a file.
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/kballard/go-shellquote"
)

// ErrNoCommand is returned when there is nothing to run.
var ErrNoCommand = errors.New("no command provided")

// Command joins args into a single shell command line, quoting as needed.
// A lone "-c" argument passes the following argument through unquoted so
// callers can hand over an already-formed shell snippet.
func Command(args []string) (string, error) {
	if len(args) == 0 {
		return "", ErrNoCommand
	}
	if args[0] == "-c" {
		if len(args) != 2 {
			return "", fmt.Errorf("-c expects exactly one command string, got %d", len(args)-1)
		}
		if _, err := shellquote.Split(args[1]); err != nil {
			return "", fmt.Errorf("invalid command %q: %w", args[1], err)
		}
		return args[1], nil
	}
	return shellquote.Join(args...), nil
}

// DefaultOutputPath is ~/Desktop/output.txt, or ./output.txt without a home dir.
func DefaultOutputPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "output.txt"
	}
	return filepath.Join(home, "Desktop", "output.txt")
}

// Result is the outcome of a captured run.
type Result struct {
	Command  string `yaml:"command"  json:"command"`
	Output   string `yaml:"output"   json:"output"`
	File     string `yaml:"file"     json:"file"`
	ExitCode int    `yaml:"exit"     json:"exit"`
}

// Run executes command with sh -c, writes the combined output to outPath and
// returns it. A non-zero exit of the command is reported in Result, not as an
// error.
func Run(ctx context.Context, command, outPath string) (*Result, error) {
	slog.Debug("capturing command", "command", command, "out", outPath)

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	res := &Result{Command: command, File: outPath}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("run %q: %w", command, err)
		}
		res.ExitCode = exitErr.ExitCode()
	}
	res.Output = buf.String()

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", filepath.Dir(outPath), err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", outPath, err)
	}
	return res, nil
}
