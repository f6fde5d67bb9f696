package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied when a config file omits a key or no file is found.
const (
	DefaultMaxFileSize          = 10 * 1024 * 1024
	DefaultMIMEType             = "application/octet-stream"
	DefaultMaxFilesPerDirectory = 1000
	DefaultMaxSearchResults     = 100

	DefaultTimezone     = "Australia/Melbourne"
	DefaultDateLayout   = "2006-01-02"
	DefaultTimeLayout   = "15:04:05"
	DefaultStampLayout  = "2006-01-02 15:04:05"
	DefaultMaxTimezones = 100
)

// FileConfig is the immutable startup configuration of the file server.
// Key names mirror the JSON config file (camelCase).
type FileConfig struct {
	RootDir              string
	ExcludePatterns      []string
	MaxFileSize          int64
	DefaultMIMEType      string
	MaxFilesPerDirectory int
	MaxSearchResults     int
	RespectGitignore     bool

	ServerName        string
	ServerVersion     string
	ServerDescription string
}

// fileConfigJSON shadows FileConfig with pointer fields so absent keys can
// be told apart from zero values when applying defaults.
type fileConfigJSON struct {
	RootDir              *string  `json:"rootDir"`
	ExcludePatterns      []string `json:"excludePatterns"`
	MaxFileSize          *int64   `json:"maxFileSize"`
	DefaultMIMEType      *string  `json:"defaultMimeType"`
	MaxFilesPerDirectory *int     `json:"maxFilesPerDirectory"`
	MaxSearchResults     *int     `json:"maxSearchResults"`
	RespectGitignore     *bool    `json:"respectGitignore"`
	ServerName           *string  `json:"serverName"`
	ServerVersion        *string  `json:"serverVersion"`
	ServerDescription    *string  `json:"serverDescription"`
}

// LoadFileConfig loads the file server configuration.
//
// Resolution order:
//  1. the explicit path, when given
//  2. .vscode/mcp.json in the working directory
//  3. built-in defaults
//
// rootDir in the file may be relative; it is resolved against the config
// file's directory. An empty rootDir falls back to the working directory.
func LoadFileConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{
		MaxFileSize:          DefaultMaxFileSize,
		DefaultMIMEType:      DefaultMIMEType,
		MaxFilesPerDirectory: DefaultMaxFilesPerDirectory,
		MaxSearchResults:     DefaultMaxSearchResults,
		RespectGitignore:     true,
		ServerName:           "File MCP Server",
		ServerVersion:        "0.1.0",
		ServerDescription:    "Secure, read-only access to files",
	}

	raw, src, err := readConfigFile(path, filepath.Join(".vscode", "mcp.json"))
	if err != nil {
		return nil, err
	}

	baseDir := ""
	if raw != nil {
		baseDir = filepath.Dir(src)

		var jc fileConfigJSON
		if err := json.Unmarshal(raw, &jc); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", src, err)
		}

		if jc.RootDir != nil {
			cfg.RootDir = *jc.RootDir
		}
		if jc.ExcludePatterns != nil {
			cfg.ExcludePatterns = jc.ExcludePatterns
		}
		if jc.MaxFileSize != nil {
			cfg.MaxFileSize = *jc.MaxFileSize
		}
		if jc.DefaultMIMEType != nil {
			cfg.DefaultMIMEType = *jc.DefaultMIMEType
		}
		if jc.MaxFilesPerDirectory != nil {
			cfg.MaxFilesPerDirectory = *jc.MaxFilesPerDirectory
		}
		if jc.MaxSearchResults != nil {
			cfg.MaxSearchResults = *jc.MaxSearchResults
		}
		if jc.RespectGitignore != nil {
			cfg.RespectGitignore = *jc.RespectGitignore
		}
		if jc.ServerName != nil {
			cfg.ServerName = *jc.ServerName
		}
		if jc.ServerVersion != nil {
			cfg.ServerVersion = *jc.ServerVersion
		}
		if jc.ServerDescription != nil {
			cfg.ServerDescription = *jc.ServerDescription
		}
	}

	if err := cfg.resolveRoot(baseDir); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveRoot makes RootDir absolute and verifies it is a directory.
func (c *FileConfig) resolveRoot(baseDir string) error {
	root := c.RootDir
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
		root = cwd
	} else if !filepath.IsAbs(root) {
		if baseDir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("determine working directory: %w", err)
			}
			baseDir = cwd
		}
		root = filepath.Join(baseDir, root)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve root directory: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("root directory %s: %w", abs, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root directory %s is not a directory", abs)
	}

	c.RootDir = abs
	return nil
}

// Validate checks limits that must be positive.
func (c *FileConfig) Validate() error {
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("maxFileSize must be positive, got %d", c.MaxFileSize)
	}
	if c.MaxFilesPerDirectory <= 0 {
		return fmt.Errorf("maxFilesPerDirectory must be positive, got %d", c.MaxFilesPerDirectory)
	}
	if c.MaxSearchResults <= 0 {
		return fmt.Errorf("maxSearchResults must be positive, got %d", c.MaxSearchResults)
	}
	return nil
}

// TimeConfig is the immutable startup configuration of the time server.
// Key names mirror the JSON config file (snake_case).
type TimeConfig struct {
	DefaultTimezone   string
	DateLayout        string
	TimeLayout        string
	DateTimeLayout    string
	MaxTimezones      int
	EnableDSTWarnings bool

	ServerName    string
	ServerVersion string
}

type timeConfigJSON struct {
	DefaultTimezone   *string `json:"default_timezone"`
	DateLayout        *string `json:"date_format"`
	TimeLayout        *string `json:"time_format"`
	DateTimeLayout    *string `json:"datetime_format"`
	MaxTimezones      *int    `json:"max_timezones"`
	EnableDSTWarnings *bool   `json:"enable_dst_warnings"`
}

// LoadTimeConfig loads the time server configuration from the explicit
// path, falling back to ./config.json, then to defaults.
func LoadTimeConfig(path string) (*TimeConfig, error) {
	cfg := &TimeConfig{
		DefaultTimezone:   DefaultTimezone,
		DateLayout:        DefaultDateLayout,
		TimeLayout:        DefaultTimeLayout,
		DateTimeLayout:    DefaultStampLayout,
		MaxTimezones:      DefaultMaxTimezones,
		EnableDSTWarnings: true,
		ServerName:        "Time MCP Server",
		ServerVersion:     "0.1.0",
	}

	raw, src, err := readConfigFile(path, "config.json")
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return cfg, nil
	}

	var jc timeConfigJSON
	if err := json.Unmarshal(raw, &jc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", src, err)
	}

	if jc.DefaultTimezone != nil {
		cfg.DefaultTimezone = *jc.DefaultTimezone
	}
	if jc.DateLayout != nil {
		cfg.DateLayout = *jc.DateLayout
	}
	if jc.TimeLayout != nil {
		cfg.TimeLayout = *jc.TimeLayout
	}
	if jc.DateTimeLayout != nil {
		cfg.DateTimeLayout = *jc.DateTimeLayout
	}
	if jc.MaxTimezones != nil {
		cfg.MaxTimezones = *jc.MaxTimezones
	}
	if jc.EnableDSTWarnings != nil {
		cfg.EnableDSTWarnings = *jc.EnableDSTWarnings
	}

	if cfg.MaxTimezones <= 0 {
		return nil, fmt.Errorf("max_timezones must be positive, got %d", cfg.MaxTimezones)
	}

	return cfg, nil
}

// readConfigFile reads the explicit path when set, otherwise tries the
// fallback relative to the working directory. A missing fallback is not an
// error; a missing explicit path is.
func readConfigFile(path, fallback string) ([]byte, string, error) {
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("read config %s: %w", path, err)
		}
		return raw, path, nil
	}

	raw, err := os.ReadFile(fallback)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("read config %s: %w", fallback, err)
	}
	return raw, fallback, nil
}
