package filemcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/localtools/localmcp/internal/fsops"
	"github.com/localtools/localmcp/internal/pathgate"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
)

// handleListDirectory handles the file.list_directory tool invocation
func (s *Server) handleListDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path := getStringDefault(args, "path", ".")
	recursive := getBoolDefault(args, "recursive", false)
	maxDepth := getIntDefault(args, "max_depth", fsops.DefaultMaxDepth)
	if maxDepth < 1 {
		return nil, newMCPError(ErrorCodeInvalidParams, "max_depth must be at least 1", map[string]interface{}{
			"param": "max_depth",
			"value": maxDepth,
		})
	}

	listing, err := s.fs.ListDirectory(path, recursive, maxDepth)
	if err != nil {
		return s.denied(err, "list directory", path)
	}

	return mcp.NewToolResultText(formatJSON(listing)), nil
}

// handleReadContent handles the file.read_content tool invocation
func (s *Server) handleReadContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	content, err := s.fs.ReadFile(path)
	if err != nil {
		return s.denied(err, "read file", path)
	}

	return mcp.NewToolResultText(formatJSON(content)), nil
}

// handleSearch handles the file.search tool invocation
func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	pattern, ok := args["pattern"].(string)
	if !ok || pattern == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "pattern parameter is required", map[string]interface{}{
			"param":  "pattern",
			"reason": "missing or empty",
		})
	}

	path := getStringDefault(args, "path", ".")
	recursive := getBoolDefault(args, "recursive", true)
	includeContent := getBoolDefault(args, "include_content", false)

	results, err := s.fs.Search(ctx, pattern, path, recursive, includeContent)
	if err != nil {
		if _, isDenial := pathgate.ReasonOf(err); isDenial {
			return s.denied(err, "search", path)
		}
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid pattern", map[string]interface{}{
			"param":  "pattern",
			"reason": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(results)), nil
}

// handleGetMetadata handles the file.get_metadata tool invocation
func (s *Server) handleGetMetadata(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	entry, err := s.fs.Metadata(path)
	if err != nil {
		return s.denied(err, "stat", path)
	}

	return mcp.NewToolResultText(formatJSON(entry)), nil
}

// handleAnalyzePath handles the file.analyze_path tool invocation
func (s *Server) handleAnalyzePath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	analysis, err := s.fs.Analyze(path)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "analysis failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(analysis)), nil
}

// denied maps an access denial onto a tool error result. Denial messages
// never include resolved absolute paths, only what the caller sent. I/O
// detail stays in the log.
func (s *Server) denied(err error, op, path string) (*mcp.CallToolResult, error) {
	reason, ok := pathgate.ReasonOf(err)
	if !ok {
		return nil, newMCPError(ErrorCodeInternalError, op+" failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	switch reason {
	case pathgate.ReasonTraversal:
		return mcp.NewToolResultError(fmt.Sprintf("access denied: %q resolves outside the served root", path)), nil
	case pathgate.ReasonExcluded:
		return mcp.NewToolResultError(fmt.Sprintf("access denied: %q is excluded by policy", path)), nil
	case pathgate.ReasonTooLarge:
		return mcp.NewToolResultError(fmt.Sprintf("%q exceeds the maximum file size", path)), nil
	case pathgate.ReasonNotFound:
		return mcp.NewToolResultError(fmt.Sprintf("%q not found", path)), nil
	case pathgate.ReasonInvalidType:
		return mcp.NewToolResultError(fmt.Sprintf("cannot %s %q: wrong file type", op, path)), nil
	default:
		s.log.Error("filesystem failure", "op", op, "path", path, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("internal error while trying to %s %q", op, path)), nil
	}
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a result as indented JSON
func formatJSON(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok && val != "" {
		return val
	}
	return defaultValue
}
