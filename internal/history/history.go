// Package history reads the window focus log written by the focus tracker.
// The log is a SQLite database with a window_focus table.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNoEntry is returned when the log has no usable entry.
var ErrNoEntry = errors.New("no window_focus entry without a trailing '.' workspace name was found")

// Entry is one row of the window_focus table.
type Entry struct {
	ID            int64  `yaml:"id"                       json:"id"`
	WindowTitle   string `yaml:"window_title,omitempty"   json:"window_title,omitempty"`
	WorkspaceName string `yaml:"workspace_name,omitempty" json:"workspace_name,omitempty"`
	WorkspacePath string `yaml:"workspace_path,omitempty" json:"workspace_path,omitempty"`
	ActiveFile    string `yaml:"active_file,omitempty"    json:"active_file,omitempty"`
	FocusedAt     int64  `yaml:"focused_at"               json:"focused_at"`
}

// OpenPath returns the path to open when the window cannot be focused:
// an absolute active file, else the workspace path.
func (e *Entry) OpenPath() string {
	if e == nil {
		return ""
	}
	if active := strings.TrimSpace(e.ActiveFile); active != "" && filepath.IsAbs(active) {
		return active
	}
	return strings.TrimSpace(e.WorkspacePath)
}

// Description is the window title, or the workspace name when untitled.
func (e *Entry) Description() string {
	if e.WindowTitle != "" {
		return e.WindowTitle
	}
	return e.WorkspaceName
}

const latestQuery = `
SELECT
	id,
	window_title,
	workspace_name,
	workspace_path,
	active_file,
	focused_at
FROM window_focus
WHERE
	workspace_name IS NOT NULL
	AND workspace_name = rtrim(workspace_name, '.')
ORDER BY focused_at DESC
LIMIT 1;
`

// Latest returns the most recent entry whose workspace name does not end in '.'.
func Latest(dbPath string) (*Entry, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("window focus database path is empty")
	}
	dbPath = filepath.Clean(dbPath)
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("access %s: %w", dbPath, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open window focus database: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	var (
		entry                                                 Entry
		windowTitle, workspaceName, workspacePath, activeFile sql.NullString
	)
	err = db.QueryRow(latestQuery).Scan(
		&entry.ID,
		&windowTitle,
		&workspaceName,
		&workspacePath,
		&activeFile,
		&entry.FocusedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoEntry
		}
		return nil, fmt.Errorf("query window_focus: %w", err)
	}

	entry.WindowTitle = strings.TrimSpace(windowTitle.String)
	entry.WorkspaceName = strings.TrimSpace(workspaceName.String)
	entry.WorkspacePath = strings.TrimSpace(workspacePath.String)
	entry.ActiveFile = strings.TrimSpace(activeFile.String)
	return &entry, nil
}
