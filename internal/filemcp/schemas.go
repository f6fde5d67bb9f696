package filemcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/localtools/localmcp/internal/fsops"
)

// listDirectoryTool returns the tool definition for file.list_directory
func listDirectoryTool() mcp.Tool {
	return mcp.Tool{
		Name:        "file.list_directory",
		Description: "List the contents of a directory inside the served root",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Directory path relative to the served root ('.' for the root itself)",
					"default":     ".",
				},
				"recursive": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, descend into subdirectories",
					"default":     false,
				},
				"max_depth": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum recursion depth when recursive is true",
					"default":     fsops.DefaultMaxDepth,
					"minimum":     1,
				},
			},
		},
	}
}

// readContentTool returns the tool definition for file.read_content
func readContentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "file.read_content",
		Description: "Read the content of a file inside the served root. Binary files return a placeholder instead of raw bytes",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "File path relative to the served root",
				},
			},
			Required: []string{"path"},
		},
	}
}

// searchTool returns the tool definition for file.search
func searchTool() mcp.Tool {
	return mcp.Tool{
		Name:        "file.search",
		Description: "Search for files by name. Plain patterns use gitignore-style globs; prefix with 'r/' for a regular expression",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"pattern": map[string]interface{}{
					"type":        "string",
					"description": "Glob pattern (e.g. '*.go', 'docs/**') or 'r/' followed by a regular expression",
				},
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Directory to search under, relative to the served root",
					"default":     ".",
				},
				"recursive": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, search subdirectories",
					"default":     true,
				},
				"include_content": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, include file contents for matches within the size limit",
					"default":     false,
				},
			},
			Required: []string{"pattern"},
		},
	}
}

// getMetadataTool returns the tool definition for file.get_metadata
func getMetadataTool() mcp.Tool {
	return mcp.Tool{
		Name:        "file.get_metadata",
		Description: "Get size, timestamps, MIME type and hash for a file or directory",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path relative to the served root",
				},
			},
			Required: []string{"path"},
		},
	}
}

// analyzePathTool returns the tool definition for file.analyze_path
func analyzePathTool() mcp.Tool {
	return mcp.Tool{
		Name:        "file.analyze_path",
		Description: "Explain how the access gate classifies a path: validity, existence, type and any denial reason",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to analyze, relative to the served root",
				},
			},
			Required: []string{"path"},
		},
	}
}
