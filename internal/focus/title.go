package focus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyTitle is returned when no usable window title is available.
var ErrEmptyTitle = errors.New("window title cannot be empty")

// ReadTitle reads the window title stored in path. A blank file falls back
// to the file's base name.
func ReadTitle(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if title := NormalizeTitle(string(data)); title != "" {
		return title, nil
	}

	if fallback := strings.TrimSpace(filepath.Base(path)); fallback != "" && fallback != "." && fallback != string(filepath.Separator) {
		return fallback, nil
	}
	return "", fmt.Errorf("%s did not contain a window title: %w", path, ErrEmptyTitle)
}

// NormalizeTitle trims outer whitespace. Case and inner spacing are kept.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

// EscapeAppleScript escapes s for use inside an AppleScript string literal.
func EscapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
