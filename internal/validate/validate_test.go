package validate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeIgnore(t *testing.T, dir, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, IgnoreFile), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestDir_MissingIgnoreFile(t *testing.T) {
	dir := tempDir(t)

	report, err := Dir(dir)
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	want := "Missing .gitignore file at " + filepath.Join(dir, ".gitignore")
	if len(report.Issues) != 1 || report.Issues[0] != want {
		t.Fatalf("Issues = %q, want [%q]", report.Issues, want)
	}
	if report.OK() {
		t.Error("report should not be OK")
	}

	var failed *FailedError
	if !errors.As(report.Err(), &failed) {
		t.Fatalf("Err() = %v, want *FailedError", report.Err())
	}
	if failed.Error() != "Validation failed with 1 issue(s)" {
		t.Errorf("error = %q", failed.Error())
	}

	writeIgnore(t, dir, "# core\n")
	report, err = Dir(dir)
	if err != nil {
		t.Fatalf("Dir after fix: %v", err)
	}
	if !report.OK() || report.Err() != nil {
		t.Errorf("expected pass after adding marker, got %q", report.Issues)
	}
}

func TestDir_Passes(t *testing.T) {
	dir := tempDir(t)
	writeIgnore(t, dir, "node_modules\n# core\n")

	report, err := Dir(dir)
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	if !report.OK() {
		t.Errorf("unexpected issues: %q", report.Issues)
	}
	if report.Dir != dir {
		t.Errorf("Dir = %q, want %q", report.Dir, dir)
	}
}

func TestDir_MissingMarker(t *testing.T) {
	dir := tempDir(t)
	writeIgnore(t, dir, "node_modules\n# core stuff\n#core\n")

	report, err := Dir(dir)
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	want := filepath.Join(dir, ".gitignore") + " missing required '# core' marker"
	if len(report.Issues) != 1 || report.Issues[0] != want {
		t.Errorf("Issues = %q, want [%q]", report.Issues, want)
	}
}

func TestDir_Errors(t *testing.T) {
	dir := tempDir(t)
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Dir(filepath.Join(dir, "missing")); !errors.Is(err, ErrPathNotFound) {
		t.Errorf("missing path: expected ErrPathNotFound, got %v", err)
	}
	if _, err := Dir(file); !errors.Is(err, ErrNotADirectory) {
		t.Errorf("file path: expected ErrNotADirectory, got %v", err)
	}
}

func TestDir_DefaultsToWorkingDirectory(t *testing.T) {
	dir := tempDir(t)
	writeIgnore(t, dir, "# core")
	t.Chdir(dir)

	report, err := Dir("")
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	if report.Dir != dir || !report.OK() {
		t.Errorf("report = %+v", report)
	}
}

func TestHasMarker(t *testing.T) {
	tests := []struct {
		contents string
		want     bool
	}{
		{"# core", true},
		{"# core\n", true},
		{"a\nb\n   # core   \nc", true},
		{"\t# core\r\n", true},
		{"x\n# core", true},
		{"", false},
		{"# Core", false},
		{"#core", false},
		{"# core # extra", false},
	}
	for _, tt := range tests {
		if got := HasMarker(tt.contents, CoreMarker); got != tt.want {
			t.Errorf("HasMarker(%q) = %v, want %v", tt.contents, got, tt.want)
		}
	}
}
