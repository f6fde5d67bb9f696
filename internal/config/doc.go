// Package config loads the startup configuration for both localmcp
// servers.
//
// Configuration is read once at startup from a JSON file and is immutable
// for the process lifetime. The file server reads camelCase keys and falls
// back to .vscode/mcp.json in the working directory; the time server reads
// snake_case keys and falls back to ./config.json. Absent keys take
// built-in defaults, so an empty or missing file yields a fully usable
// configuration.
package config
