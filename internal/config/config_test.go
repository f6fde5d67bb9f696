package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileConfig(t *testing.T) {
	t.Run("defaults with no file", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)

		cfg, err := LoadFileConfig("")
		require.NoError(t, err)

		assert.EqualValues(t, DefaultMaxFileSize, cfg.MaxFileSize)
		assert.Equal(t, DefaultMIMEType, cfg.DefaultMIMEType)
		assert.Equal(t, DefaultMaxFilesPerDirectory, cfg.MaxFilesPerDirectory)
		assert.Equal(t, DefaultMaxSearchResults, cfg.MaxSearchResults)
		assert.True(t, cfg.RespectGitignore)

		resolved, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)
		got, err := filepath.EvalSymlinks(cfg.RootDir)
		require.NoError(t, err)
		assert.Equal(t, resolved, got, "root falls back to the working directory")
	})

	t.Run("explicit file overrides", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
		path := writeConfig(t, dir, "server.json", `{
			"rootDir": "data",
			"excludePatterns": ["**/.git/**", "*.key"],
			"maxFileSize": 2048,
			"respectGitignore": false,
			"serverName": "files"
		}`)

		cfg, err := LoadFileConfig(path)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "data"), cfg.RootDir, "relative root resolves against the config file")
		assert.Equal(t, []string{"**/.git/**", "*.key"}, cfg.ExcludePatterns)
		assert.EqualValues(t, 2048, cfg.MaxFileSize)
		assert.False(t, cfg.RespectGitignore)
		assert.Equal(t, "files", cfg.ServerName)
		assert.Equal(t, DefaultMaxSearchResults, cfg.MaxSearchResults, "omitted keys keep defaults")
	})

	t.Run("vscode fallback file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
		writeConfig(t, dir, filepath.Join(".vscode", "mcp.json"), `{"rootDir": "../src", "maxFileSize": 512}`)
		t.Chdir(dir)

		cfg, err := LoadFileConfig("")
		require.NoError(t, err)
		assert.EqualValues(t, 512, cfg.MaxFileSize)
		assert.Equal(t, filepath.Join(dir, "src"), cfg.RootDir)
	})

	t.Run("missing explicit path is an error", func(t *testing.T) {
		_, err := LoadFileConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bad.json", `{"rootDir": `)
		_, err := LoadFileConfig(path)
		assert.ErrorContains(t, err, "parse config")
	})

	t.Run("root must exist", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "cfg.json", `{"rootDir": "missing-dir"}`)
		_, err := LoadFileConfig(path)
		assert.Error(t, err)
	})

	t.Run("root must be a directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "afile", "x")
		path := writeConfig(t, dir, "cfg.json", `{"rootDir": "afile"}`)
		_, err := LoadFileConfig(path)
		assert.ErrorContains(t, err, "not a directory")
	})
}

func TestFileConfigValidate(t *testing.T) {
	valid := &FileConfig{
		MaxFileSize:          1,
		MaxFilesPerDirectory: 1,
		MaxSearchResults:     1,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*FileConfig)
	}{
		{"zero max file size", func(c *FileConfig) { c.MaxFileSize = 0 }},
		{"negative directory cap", func(c *FileConfig) { c.MaxFilesPerDirectory = -1 }},
		{"zero search cap", func(c *FileConfig) { c.MaxSearchResults = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadTimeConfig(t *testing.T) {
	t.Run("defaults with no file", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := LoadTimeConfig("")
		require.NoError(t, err)

		assert.Equal(t, "Australia/Melbourne", cfg.DefaultTimezone)
		assert.Equal(t, DefaultStampLayout, cfg.DateTimeLayout)
		assert.Equal(t, DefaultMaxTimezones, cfg.MaxTimezones)
		assert.True(t, cfg.EnableDSTWarnings)
	})

	t.Run("explicit file overrides", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "time.json", `{
			"default_timezone": "Europe/Berlin",
			"datetime_format": "2006-01-02T15:04",
			"max_timezones": 5,
			"enable_dst_warnings": false
		}`)

		cfg, err := LoadTimeConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "Europe/Berlin", cfg.DefaultTimezone)
		assert.Equal(t, "2006-01-02T15:04", cfg.DateTimeLayout)
		assert.Equal(t, 5, cfg.MaxTimezones)
		assert.False(t, cfg.EnableDSTWarnings)
		assert.Equal(t, DefaultDateLayout, cfg.DateLayout, "omitted keys keep defaults")
	})

	t.Run("config.json fallback", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "config.json", `{"default_timezone": "UTC"}`)
		t.Chdir(dir)

		cfg, err := LoadTimeConfig("")
		require.NoError(t, err)
		assert.Equal(t, "UTC", cfg.DefaultTimezone)
	})

	t.Run("non-positive max_timezones rejected", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "time.json", `{"max_timezones": 0}`)
		_, err := LoadTimeConfig(path)
		assert.ErrorContains(t, err, "max_timezones")
	})
}
