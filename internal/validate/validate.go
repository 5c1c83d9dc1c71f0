// Package validate checks a project directory against Flow conventions.
package validate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	IgnoreFile = ".gitignore"
	CoreMarker = "# core"
)

var (
	ErrPathNotFound  = errors.New("does not exist")
	ErrNotADirectory = errors.New("is not a directory")
)

// Report is the result of validating one directory.
type Report struct {
	Dir    string   `yaml:"dir"    json:"dir"`
	Issues []string `yaml:"issues" json:"issues"`
}

// OK reports whether no issues were found.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

// Err returns a *FailedError when the report has issues, nil otherwise.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return &FailedError{Issues: r.Issues}
}

// FailedError is returned by the CLI when validation found issues.
type FailedError struct {
	Issues []string
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("Validation failed with %d issue(s)", len(e.Issues))
}

// Dir validates the project directory at path ("" means the working directory).
// All convention checks run; issues are collected rather than returned early.
func Dir(path string) (*Report, error) {
	if path == "" {
		path = "."
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s %w", path, ErrPathNotFound)
		}
		return nil, fmt.Errorf("unable to resolve directory %s: %w", path, err)
	}

	dir, err := canonical(path)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve directory %s: %w", path, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s %w", dir, ErrNotADirectory)
	}

	report := &Report{Dir: dir, Issues: []string{}}

	ignorePath := filepath.Join(dir, IgnoreFile)
	data, err := os.ReadFile(ignorePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		report.Issues = append(report.Issues, fmt.Sprintf("Missing %s file at %s", IgnoreFile, ignorePath))
	case err != nil:
		return nil, fmt.Errorf("unable to read %s: %w", ignorePath, err)
	case !HasMarker(string(data), CoreMarker):
		report.Issues = append(report.Issues, fmt.Sprintf("%s missing required '%s' marker", ignorePath, CoreMarker))
	}

	return report, nil
}

// HasMarker reports whether any line of contents equals marker after trimming.
func HasMarker(contents, marker string) bool {
	for _, line := range strings.Split(contents, "\n") {
		if strings.TrimSpace(line) == marker {
			return true
		}
	}
	return false
}

func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
