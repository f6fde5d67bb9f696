// Package types provides shared type definitions for the localmcp servers.
//
// This package defines the response shapes produced by the file and time
// MCP servers: file entries, directory listings, search results, path
// analyses, and timezone information. All types serialize to the JSON
// payloads returned to MCP clients.
//
// # Core Types
//
// FileEntry is the metadata unit of the file server; every listing,
// search, and read response is built from it:
//
//	entry := types.FileEntry{
//	    Name:     "todo.txt",
//	    Path:     "notes/todo.txt",
//	    URI:      "file:///srv/data/notes/todo.txt",
//	    Size:     200,
//	    MIMEType: "text/plain",
//	}
//
// TimeInfo is the equivalent unit of the time server:
//
//	info := types.TimeInfo{
//	    Timezone:  "Australia/Melbourne",
//	    DateTime:  "2026-01-15 09:30:00",
//	    UTCOffset: "+1100",
//	    IsDST:     true,
//	}
//
// Paths in FileEntry are always relative to the server's root directory;
// absolute paths appear only in the URI and AbsolutePath fields, which
// handlers keep out of user-facing error messages.
package types
