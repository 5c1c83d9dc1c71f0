package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mj1618/flow/internal/focus"
	"github.com/mj1618/flow/internal/history"
	"github.com/mj1618/flow/internal/output"
	"github.com/mj1618/flow/internal/runner"
	"github.com/spf13/cobra"
)

const (
	stateFileEnv = "FLOW_CURSOR_LAST_WINDOW_FILE"
	focusDBEnv   = "FLOW_WINDOW_FOCUS_DB"
)

// FocusReport is the output of focus-cursor-window.
type FocusReport struct {
	Source       string `yaml:"source"           json:"source"`
	focus.Result `yaml:",inline"`
	OK           bool   `yaml:"ok"               json:"ok"`
	Opened       string `yaml:"opened,omitempty" json:"opened,omitempty"`
}

func (r FocusReport) Text() string {
	if r.Opened != "" {
		return fmt.Sprintf("%s; opened %s in %s instead", r.Message(), r.Opened, r.App)
	}
	return r.Message()
}

// focusRequest describes where the title comes from and what to do with it.
type focusRequest struct {
	StateFile    string
	DB           string
	App          string
	OpenFallback bool
}

var focusWindowCmd = &cobra.Command{
	Use:   "focus-cursor-window",
	Short: "Focus the most recent Cursor window recorded in a state file",
	Long: `Read a window title from a state file (or the latest entry of a window
focus database) and bring the matching application window to the front.

Benign outcomes (app not running, no such window, another window in front)
are reported on stdout and exit 0. A missing osascript, an unreadable state
file or an empty title are errors.`,
	Args: cobra.NoArgs,
	RunE: runFocusWindow,
}

func init() {
	rootCmd.AddCommand(focusWindowCmd)
	focusWindowCmd.Flags().String("state-file", "", "File that stores the last Cursor window title (env "+stateFileEnv+")")
	focusWindowCmd.Flags().String("db", "", "Window focus SQLite database to read the latest title from (env "+focusDBEnv+")")
	focusWindowCmd.Flags().String("app", focus.DefaultApp, "Application whose window is focused")
	focusWindowCmd.Flags().Bool("open-fallback", false, "Open the entry's workspace when the window cannot be focused (--db only)")
}

func runFocusWindow(cmd *cobra.Command, args []string) error {
	stateFile, _ := cmd.Flags().GetString("state-file")
	dbPath, _ := cmd.Flags().GetString("db")
	app, _ := cmd.Flags().GetString("app")
	openFallback, _ := cmd.Flags().GetBool("open-fallback")

	if stateFile != "" && dbPath != "" {
		return fmt.Errorf("specify only one of --state-file or --db")
	}
	if stateFile == "" && dbPath == "" {
		stateFile = lookupEnv(stateFileEnv)
		if stateFile == "" {
			dbPath = lookupEnv(focusDBEnv)
		}
	}
	if stateFile == "" && dbPath == "" {
		return fmt.Errorf("specify --state-file (or %s) or --db (or %s)", stateFileEnv, focusDBEnv)
	}

	req := focusRequest{StateFile: stateFile, DB: dbPath, App: app, OpenFallback: openFallback}
	var announce func(source, title string)
	if output.OutputFormat == output.FormatText {
		announce = func(source, title string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Latest %s window from %s: %s\n", req.app(), source, title)
		}
	}

	report, err := focusWindow(cmd.Context(), newRunner(), req, announce)
	if err != nil {
		return err
	}
	return output.Fprint(cmd.OutOrStdout(), report)
}

func (r focusRequest) app() string {
	if r.App == "" {
		return focus.DefaultApp
	}
	return r.App
}

// focusWindow resolves the target title and runs one focus attempt.
// announce, when set, is called once the title is known.
func focusWindow(ctx context.Context, r runner.Runner, req focusRequest, announce func(source, title string)) (*FocusReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		title  string
		source string
		entry  *history.Entry
		err    error
	)
	if req.DB != "" {
		entry, err = history.Latest(req.DB)
		if err != nil {
			return nil, fmt.Errorf("load latest window_focus entry: %w", err)
		}
		source = fmt.Sprintf("%s (entry #%d)", req.DB, entry.ID)
		title = entry.WindowTitle
	} else {
		source = req.StateFile
		title, err = focus.ReadTitle(req.StateFile)
		if err != nil {
			return nil, err
		}
	}

	if announce != nil {
		desc := title
		if entry != nil {
			desc = entry.Description()
		}
		announce(source, desc)
	}

	focuser := focus.New(r, req.app())
	report := &FocusReport{Source: source}

	if title == "" && entry != nil && req.OpenFallback {
		report.Result = focus.Result{Outcome: focus.NotFound, App: focuser.App, Title: entry.Description()}
	} else {
		res, err := focuser.Focus(ctx, title)
		if err != nil {
			return nil, fmt.Errorf("focus %s window %q: %w", focuser.App, title, err)
		}
		report.Result = res
	}
	report.OK = report.Result.OK()

	if report.OK || !req.OpenFallback || entry == nil {
		return report, nil
	}
	path := entry.OpenPath()
	if path == "" {
		return report, nil
	}
	if _, err := r.Run(ctx, "open", "-a", focuser.App, path); err != nil {
		return nil, fmt.Errorf("open %s in %s: %w", path, focuser.App, err)
	}
	report.Opened = path
	return report, nil
}

func lookupEnv(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
