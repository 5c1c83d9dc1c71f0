package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/flow/internal/focus"
	"github.com/mj1618/flow/internal/runner"
	"github.com/mj1618/flow/internal/validate"
	"github.com/mj1618/flow/internal/version"
	"gopkg.in/yaml.v3"
)

// mcpServer wraps the MCP server with the interpreter runner.
type mcpServer struct {
	runner  runner.Runner
	focusMu sync.Mutex
	mcp     *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

// newMCPServer creates and configures an MCP server with the flow tools.
func newMCPServer(r runner.Runner) *mcpServer {
	s := &mcpServer{runner: r}
	s.mcp = mcpserver.NewMCPServer("flow", version.Version)
	s.registerTools()
	return s
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	// validate
	s.mcp.AddTool(
		mcp.NewTool("validate",
			mcp.WithDescription("Validate a project directory against Flow conventions (.gitignore with a '# core' marker)"),
			mcp.WithString("path", mcp.Description("Project directory (default: server working directory)")),
		),
		s.handleValidate,
	)

	// focus_window
	s.mcp.AddTool(
		mcp.NewTool("focus_window",
			mcp.WithDescription("Focus an application window by the title stored in a state file or the latest window focus database entry"),
			mcp.WithString("state-file", mcp.Description("File holding the window title")),
			mcp.WithString("db", mcp.Description("Window focus SQLite database")),
			mcp.WithString("app", mcp.Description("Application name (default: Cursor)")),
			mcp.WithBoolean("open-fallback", mcp.Description("Open the entry's workspace when the window cannot be focused (db only)")),
		),
		s.handleFocusWindow,
	)
}

// toText serializes v to YAML for an MCP response.
func toText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func (s *mcpServer) handleValidate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	path := stringParam(params, "path", ".")

	report, err := validate.Dir(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !report.OK() {
		return mcp.NewToolResultError(toText(map[string]interface{}{
			"ok":     false,
			"error":  report.Err().Error(),
			"issues": report.Issues,
		})), nil
	}
	return mcp.NewToolResultText(toText(ValidateResult{OK: true, Action: "validate", Dir: report.Dir})), nil
}

func (s *mcpServer) handleFocusWindow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	req := focusRequest{
		StateFile:    stringParam(params, "state-file", ""),
		DB:           stringParam(params, "db", ""),
		App:          stringParam(params, "app", focus.DefaultApp),
		OpenFallback: boolParam(params, "open-fallback", false),
	}
	if (req.StateFile == "") == (req.DB == "") {
		return mcp.NewToolResultError("specify exactly one of state-file or db"), nil
	}

	s.focusMu.Lock()
	defer s.focusMu.Unlock()

	report, err := focusWindow(ctx, s.runner, req, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toText(report)), nil
}

func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return def
}

func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}
