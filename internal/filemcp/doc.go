// Package filemcp implements the file MCP server: read-only access to a
// configured root directory over stdio.
//
// # Surface
//
// Tools: file.list_directory, file.read_content, file.search,
// file.get_metadata and file.analyze_path. Resources: a file:/// root
// listing and a file:///{path} template for individual files. Prompts:
// file.code_review, file.summarize and file.project_structure.
//
// # Access Control
//
// Every path coming in over any surface goes through the pathgate
// before the filesystem is touched. Denials come back as tool errors
// describing the reason; resolved absolute paths and I/O detail stay
// out of responses and go to the log instead.
package filemcp
