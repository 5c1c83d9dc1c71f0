// Package runner executes external interpreters and maps their exit status
// to Go errors.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// ErrInterpreterNotFound is returned when the interpreter binary is not on PATH.
var ErrInterpreterNotFound = errors.New("interpreter not found in PATH")

// Runner runs an external program and returns its trimmed stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// NotFoundError reports a missing interpreter binary.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found in PATH", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrInterpreterNotFound
}

// ExitError reports an interpreter that ran and exited unsuccessfully.
type ExitError struct {
	Name    string
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exec implements Runner with os/exec.
type Exec struct{}

// New returns a Runner backed by os/exec.
func New() *Exec {
	return &Exec{}
}

func (r *Exec) Run(ctx context.Context, name string, args ...string) (string, error) {
	slog.Debug("running interpreter", "name", name, "args", len(args))

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", &NotFoundError{Name: name}
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("failed to run %s: %w", name, err)
		}
		msg := FailureMessage(name, stdout.String(), stderr.String())
		slog.Debug("interpreter failed", "name", name, "exit", exitErr.ExitCode())
		return "", &ExitError{Name: name, Message: msg, Err: err}
	}

	return strings.TrimSpace(stdout.String()), nil
}

// FailureMessage builds the error text for a failed run: stderr first,
// then stdout, then a generic message.
func FailureMessage(name, stdout, stderr string) string {
	out := strings.TrimSpace(stdout)
	msg := strings.TrimSpace(stderr)
	switch {
	case msg == "":
		msg = out
	case out != "":
		msg = msg + "; " + out
	}
	if msg == "" {
		msg = name + " exited with an error"
	}
	return msg
}
