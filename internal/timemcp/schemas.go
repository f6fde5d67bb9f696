package timemcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// currentTimeTool returns the tool definition for time.current
func currentTimeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "time.current",
		Description: "Get the current time in a timezone, including UTC offset and DST state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"timezone": map[string]interface{}{
					"type":        "string",
					"description": "IANA timezone name (e.g. 'Asia/Tokyo'); defaults to the configured timezone",
				},
			},
		},
	}
}

// convertTimeTool returns the tool definition for time.convert
func convertTimeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "time.convert",
		Description: "Convert a time from one timezone to another",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"time": map[string]interface{}{
					"type":        "string",
					"description": "Time to convert: 'YYYY-MM-DD HH:MM:SS', a date, or a time of day (anchored to today)",
				},
				"from_timezone": map[string]interface{}{
					"type":        "string",
					"description": "Source IANA timezone; defaults to the configured timezone",
				},
				"to_timezone": map[string]interface{}{
					"type":        "string",
					"description": "Target IANA timezone; defaults to the configured timezone",
				},
			},
			Required: []string{"time"},
		},
	}
}

// timezoneInfoTool returns the tool definition for time.timezone_info
func timezoneInfoTool() mcp.Tool {
	return mcp.Tool{
		Name:        "time.timezone_info",
		Description: "Get detailed information about a timezone: offset, DST state, abbreviations and the next DST transition",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"timezone": map[string]interface{}{
					"type":        "string",
					"description": "IANA timezone name",
				},
			},
			Required: []string{"timezone"},
		},
	}
}

// listTimezonesTool returns the tool definition for time.list_timezones
func listTimezonesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "time.list_timezones",
		Description: "List known timezones, optionally filtered by country code or region",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"country": map[string]interface{}{
					"type":        "string",
					"description": "ISO 3166 country code filter (e.g. 'AU')",
				},
				"region": map[string]interface{}{
					"type":        "string",
					"description": "Region filter, the part before the slash (e.g. 'Australia', 'Europe')",
				},
			},
		},
	}
}

// melbourneTimeTool returns the tool definition for time.melbourne
func melbourneTimeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "time.melbourne",
		Description: "Get the current time and timezone details for Melbourne, Australia",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
