package timemcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
)

// dstWarningWindow is how close a DST transition has to be before
// conversions start carrying a warning.
const dstWarningWindow = 7 * 24 * time.Hour

// handleCurrentTime handles the time.current tool invocation
func (s *Server) handleCurrentTime(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	zone := getStringDefault(args, "timezone", "")

	info, err := s.tz.Current(zone)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatJSON(info)), nil
}

// handleConvertTime handles the time.convert tool invocation
func (s *Server) handleConvertTime(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	value, ok := args["time"].(string)
	if !ok || value == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "time parameter is required", map[string]interface{}{
			"param":  "time",
			"reason": "missing or empty",
		})
	}

	fromZone := getStringDefault(args, "from_timezone", "")
	toZone := getStringDefault(args, "to_timezone", "")

	conv, err := s.tz.Convert(value, fromZone, toZone)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := map[string]interface{}{
		"original":              conv.Original,
		"converted":             conv.Converted,
		"time_difference_hours": conv.TimeDifferenceHours,
	}
	if s.cfg.EnableDSTWarnings {
		if warnings := s.dstWarnings(conv.Original.Timezone, conv.Converted.Timezone); len(warnings) > 0 {
			response["dst_warnings"] = warnings
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleTimezoneInfo handles the time.timezone_info tool invocation
func (s *Server) handleTimezoneInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	zone, ok := args["timezone"].(string)
	if !ok || zone == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "timezone parameter is required", map[string]interface{}{
			"param":  "timezone",
			"reason": "missing or empty",
		})
	}

	details, err := s.tz.Info(zone)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatJSON(details)), nil
}

// handleListTimezones handles the time.list_timezones tool invocation
func (s *Server) handleListTimezones(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = map[string]interface{}{}
	}

	country := getStringDefault(args, "country", "")
	region := getStringDefault(args, "region", "")

	listing, err := s.tz.List(country, region)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "listing timezones failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(listing)), nil
}

// handleMelbourneTime handles the time.melbourne tool invocation
func (s *Server) handleMelbourneTime(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := s.tz.Current(melbourneZone)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "melbourne time unavailable", map[string]interface{}{
			"error": err.Error(),
		})
	}
	details, err := s.tz.Info(melbourneZone)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "melbourne time unavailable", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"current": info,
		"details": details,
	})), nil
}

// dstWarnings reports zones whose next DST transition falls inside the
// warning window. Conversions straddling a transition are where users
// get bitten, so the warning names the exact instant.
func (s *Server) dstWarnings(zones ...string) []string {
	var warnings []string
	seen := map[string]bool{}
	for _, zone := range zones {
		if seen[zone] {
			continue
		}
		seen[zone] = true

		details, err := s.tz.Info(zone)
		if err != nil || details.NextDSTTransition == "" {
			continue
		}
		loc, err := time.LoadLocation(zone)
		if err != nil {
			continue
		}
		at, err := time.ParseInLocation(s.cfg.DateTimeLayout, details.NextDSTTransition, loc)
		if err != nil {
			continue
		}
		if until := time.Until(at); until > 0 && until <= dstWarningWindow {
			verb := "ends"
			if details.NextDSTTransitionType == "start" {
				verb = "starts"
			}
			warnings = append(warnings,
				fmt.Sprintf("daylight saving %s in %s at %s", verb, zone, details.NextDSTTransition))
		}
	}
	return warnings
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

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok && val != "" {
		return val
	}
	return defaultValue
}
