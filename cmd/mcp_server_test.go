package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	default:
		t.Fatalf("unexpected content type %T", c)
		return ""
	}
}

func TestMCPValidate(t *testing.T) {
	s := newMCPServer(&scriptedRunner{})
	dir := t.TempDir()

	res, err := s.handleValidate(context.Background(), toolRequest("validate", map[string]interface{}{"path": dir}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("missing .gitignore should be a tool error")
	}
	if !strings.Contains(resultText(t, res), "Missing .gitignore file at") {
		t.Errorf("text = %q", resultText(t, res))
	}

	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("# core\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err = s.handleValidate(context.Background(), toolRequest("validate", map[string]interface{}{"path": dir}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Errorf("expected success, got %q", resultText(t, res))
	}
}

func TestMCPFocusWindow(t *testing.T) {
	s := newMCPServer(&scriptedRunner{focusOut: "NOT_RUNNING"})
	path := stateFile(t, "proj")

	res, err := s.handleFocusWindow(context.Background(), toolRequest("focus_window", map[string]interface{}{"state-file": path}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if !strings.Contains(resultText(t, res), "outcome: not-running") {
		t.Errorf("text = %q", resultText(t, res))
	}
}

func TestMCPFocusWindow_RequiresOneSource(t *testing.T) {
	s := newMCPServer(&scriptedRunner{})

	res, err := s.handleFocusWindow(context.Background(), toolRequest("focus_window", map[string]interface{}{}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected tool error without a source")
	}
}

func TestParams(t *testing.T) {
	params := map[string]interface{}{"s": "x", "b": true, "n": 3.0}
	if stringParam(params, "s", "d") != "x" || stringParam(params, "missing", "d") != "d" || stringParam(params, "n", "d") != "d" {
		t.Error("stringParam")
	}
	if !boolParam(params, "b", false) || boolParam(params, "missing", false) {
		t.Error("boolParam")
	}
}
