// Package focus raises an application window by exact title through the
// macOS scripting bridge and verifies which window ended up in front.
package focus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mj1618/flow/internal/runner"
)

const (
	DefaultApp         = "Cursor"
	DefaultInterpreter = "osascript"
)

// Outcome classifies a focus attempt.
type Outcome string

const (
	Focused              Outcome = "focused"
	NotRunning           Outcome = "not-running"
	NotFound             Outcome = "not-found"
	FocusedButMismatched Outcome = "focused-mismatched"
	FocusedButUnnamed    Outcome = "focused-unnamed"
	VerificationFailed   Outcome = "verification-failed"
)

// Result is the outcome of one focus attempt.
type Result struct {
	Outcome Outcome `yaml:"outcome"          json:"outcome"`
	App     string  `yaml:"app"              json:"app"`
	Title   string  `yaml:"title"            json:"title"`
	Actual  string  `yaml:"actual,omitempty" json:"actual,omitempty"`
}

// OK reports whether the target window is confirmed in front.
func (r Result) OK() bool {
	return r.Outcome == Focused
}

// Message renders the result as a single human-readable line.
func (r Result) Message() string {
	switch r.Outcome {
	case Focused:
		return fmt.Sprintf("Focused %s window \"%s\"", r.App, r.Title)
	case NotRunning:
		return fmt.Sprintf("%s is not running", r.App)
	case NotFound:
		return fmt.Sprintf("No %s window titled \"%s\" was found", r.App, r.Title)
	case FocusedButMismatched:
		return fmt.Sprintf("%s focused \"%s\" instead", r.App, r.Actual)
	case FocusedButUnnamed:
		return fmt.Sprintf("%s focused an unnamed window; please try again", r.App)
	case VerificationFailed:
		return fmt.Sprintf("Unable to verify %s window state", r.App)
	default:
		return fmt.Sprintf("Unable to focus %s window \"%s\"", r.App, r.Title)
	}
}

// Focuser focuses windows of App by running scripts through Interpreter.
type Focuser struct {
	Runner      runner.Runner
	App         string
	Interpreter string
}

// New returns a Focuser for app using the osascript interpreter.
func New(r runner.Runner, app string) *Focuser {
	if app == "" {
		app = DefaultApp
	}
	return &Focuser{Runner: r, App: app, Interpreter: DefaultInterpreter}
}

// Focus raises the window of f.App whose name equals title and verifies the
// front window afterwards. Benign outcomes are reported in Result; only
// infrastructure failures are returned as errors.
func (f *Focuser) Focus(ctx context.Context, title string) (Result, error) {
	target := NormalizeTitle(title)
	if target == "" {
		return Result{}, ErrEmptyTitle
	}
	res := Result{App: f.App, Title: target}

	raw, err := f.run(ctx, FocusScript(f.App, target))
	if err != nil {
		return Result{}, err
	}
	sentinel, err := ParseSentinel(raw)
	if err != nil {
		return Result{}, err
	}
	slog.Debug("focus script finished", "sentinel", string(sentinel))

	switch sentinel {
	case SentinelNotRunning:
		res.Outcome = NotRunning
		return res, nil
	case SentinelNotFound:
		res.Outcome = NotFound
		return res, nil
	}

	current, err := f.FrontWindowTitle(ctx)
	if err != nil {
		slog.Debug("front window query failed", "err", err)
		res.Outcome = VerificationFailed
		return res, nil
	}

	switch current = NormalizeTitle(current); {
	case current == target:
		res.Outcome = Focused
	case current == "":
		res.Outcome = FocusedButUnnamed
	default:
		res.Outcome = FocusedButMismatched
		res.Actual = current
	}
	return res, nil
}

// FrontWindowTitle returns the title of the main window of f.App, or "" when
// the app is not running or has no windows.
func (f *Focuser) FrontWindowTitle(ctx context.Context) (string, error) {
	return f.run(ctx, FrontWindowScript(f.App))
}

func (f *Focuser) run(ctx context.Context, script string) (string, error) {
	interpreter := f.Interpreter
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}
	return f.Runner.Run(ctx, interpreter, "-e", script)
}
