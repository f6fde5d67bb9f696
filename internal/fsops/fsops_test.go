package fsops

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localtools/localmcp/internal/config"
	"github.com/localtools/localmcp/internal/logging"
	"github.com/localtools/localmcp/internal/pathgate"
	"github.com/localtools/localmcp/pkg/types"
)

// newTestFS builds an FS over a fixture tree:
//
//	readme.md            "# Hello\n"
//	data.bin             binary content
//	notes/todo.txt       "buy milk\n"
//	notes/deep/a/b.txt
//	.git/config
func newTestFS(t *testing.T, mutate func(cfg *config.FileConfig)) (*FS, string) {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "notes", "deep", "a"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.md"), []byte("# Hello\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "data.bin"), binaryBytes(), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes", "todo.txt"), []byte("buy milk\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes", "deep", "a", "b.txt"), []byte("deep\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "config"), []byte("[core]\n"), 0o644))

	cfg := &config.FileConfig{
		RootDir:              root,
		ExcludePatterns:      []string{"**/.git/**"},
		MaxFileSize:          config.DefaultMaxFileSize,
		DefaultMIMEType:      config.DefaultMIMEType,
		MaxFilesPerDirectory: config.DefaultMaxFilesPerDirectory,
		MaxSearchResults:     config.DefaultMaxSearchResults,
	}
	if mutate != nil {
		mutate(cfg)
	}

	gate, err := pathgate.New(pathgate.Config{
		Root:             cfg.RootDir,
		ExcludePatterns:  cfg.ExcludePatterns,
		MaxFileSize:      cfg.MaxFileSize,
		RespectGitignore: cfg.RespectGitignore,
	})
	require.NoError(t, err)

	return New(gate, cfg, logging.Default()), root
}

// binaryBytes returns content the binary heuristic must flag.
func binaryBytes() []byte {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i % 8) // control bytes
	}
	return data
}

func TestMetadata(t *testing.T) {
	f, _ := newTestFS(t, nil)

	entry, err := f.Metadata("readme.md")
	require.NoError(t, err)

	assert.Equal(t, "readme.md", entry.Name)
	assert.Equal(t, "readme.md", entry.Path)
	assert.True(t, strings.HasPrefix(entry.URI, "file:///"))
	assert.EqualValues(t, 8, entry.Size)
	assert.Equal(t, "8 B", entry.SizeHuman)
	assert.False(t, entry.IsDir)
	assert.Equal(t, "md", entry.Extension)
	assert.NotEmpty(t, entry.MIMEType)
	assert.Len(t, entry.Hash, 32, "MD5 hex digest expected for small files")

	t.Run("directory metadata", func(t *testing.T) {
		entry, err := f.Metadata("notes")
		require.NoError(t, err)
		assert.True(t, entry.IsDir)
		assert.Equal(t, "inode/directory", entry.MIMEType)
		assert.Empty(t, entry.Hash)
	})

	t.Run("excluded path denied", func(t *testing.T) {
		_, err := f.Metadata(".git/config")
		reason, ok := pathgate.ReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, pathgate.ReasonExcluded, reason)
	})
}

func TestReadFile(t *testing.T) {
	f, _ := newTestFS(t, nil)

	t.Run("text file", func(t *testing.T) {
		content, err := f.ReadFile("notes/todo.txt")
		require.NoError(t, err)
		assert.Equal(t, "buy milk\n", content.Content)
		assert.Equal(t, "notes/todo.txt", content.Path)
	})

	t.Run("binary placeholder", func(t *testing.T) {
		content, err := f.ReadFile("data.bin")
		require.NoError(t, err)
		assert.Equal(t, "[Binary file: 256 B]", content.Content)
	})

	t.Run("size ceiling", func(t *testing.T) {
		small, _ := newTestFS(t, func(cfg *config.FileConfig) {
			cfg.MaxFileSize = 4
		})

		_, err := small.ReadFile("readme.md")
		reason, ok := pathgate.ReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, pathgate.ReasonTooLarge, reason)
	})

	t.Run("directory rejected", func(t *testing.T) {
		_, err := f.ReadFile("notes")
		reason, ok := pathgate.ReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, pathgate.ReasonInvalidType, reason)
	})
}

func TestListDirectory(t *testing.T) {
	f, _ := newTestFS(t, nil)

	t.Run("flat listing excludes policy matches", func(t *testing.T) {
		listing, err := f.ListDirectory(".", false, 0)
		require.NoError(t, err)

		names := entryNames(listing)
		assert.Contains(t, names, "readme.md")
		assert.Contains(t, names, "notes")
		assert.NotContains(t, names, ".git", "excluded directory must not appear")
		assert.Equal(t, len(listing.Items), listing.Count)
	})

	t.Run("recursive respects depth", func(t *testing.T) {
		listing, err := f.ListDirectory(".", true, 2)
		require.NoError(t, err)

		paths := entryPaths(listing)
		assert.Contains(t, paths, "notes/todo.txt")
		assert.Contains(t, paths, "notes/deep")
		assert.NotContains(t, paths, "notes/deep/a/b.txt", "depth 3 entry beyond limit 2")
	})

	t.Run("recursive full depth", func(t *testing.T) {
		listing, err := f.ListDirectory(".", true, 5)
		require.NoError(t, err)
		assert.Contains(t, entryPaths(listing), "notes/deep/a/b.txt")
	})

	t.Run("listing cap truncates", func(t *testing.T) {
		capped, _ := newTestFS(t, func(cfg *config.FileConfig) {
			cfg.MaxFilesPerDirectory = 2
		})

		listing, err := capped.ListDirectory(".", false, 0)
		require.NoError(t, err)
		assert.Len(t, listing.Items, 2)
		assert.True(t, listing.Truncated)
	})

	t.Run("file rejected", func(t *testing.T) {
		_, err := f.ListDirectory("readme.md", false, 0)
		reason, ok := pathgate.ReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, pathgate.ReasonInvalidType, reason)
	})

	t.Run("subdirectory listing has root-relative paths", func(t *testing.T) {
		listing, err := f.ListDirectory("notes", false, 0)
		require.NoError(t, err)
		assert.Contains(t, entryPaths(listing), "notes/todo.txt")
	})
}

func TestSearch(t *testing.T) {
	f, _ := newTestFS(t, nil)
	ctx := context.Background()

	t.Run("glob matches recursively", func(t *testing.T) {
		res, err := f.Search(ctx, "*.txt", ".", true, false)
		require.NoError(t, err)

		paths := matchPaths(res)
		assert.Contains(t, paths, "notes/todo.txt")
		assert.Contains(t, paths, "notes/deep/a/b.txt")
		assert.NotContains(t, paths, "readme.md")
	})

	t.Run("non-recursive stays at top level", func(t *testing.T) {
		res, err := f.Search(ctx, "*.txt", ".", false, false)
		require.NoError(t, err)
		assert.Empty(t, res.Results)

		res, err = f.Search(ctx, "*.md", ".", false, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"readme.md"}, matchPaths(res))
	})

	t.Run("regex on names", func(t *testing.T) {
		res, err := f.Search(ctx, `r/^todo\.`, ".", true, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"notes/todo.txt"}, matchPaths(res))
	})

	t.Run("invalid regex rejected", func(t *testing.T) {
		_, err := f.Search(ctx, "r/((", ".", true, false)
		assert.Error(t, err)
	})

	t.Run("excluded subtrees pruned", func(t *testing.T) {
		res, err := f.Search(ctx, "config", ".", true, false)
		require.NoError(t, err)
		assert.Empty(t, res.Results, ".git/config is excluded")
	})

	t.Run("content loading", func(t *testing.T) {
		res, err := f.Search(ctx, "todo.txt", ".", true, true)
		require.NoError(t, err)
		require.Len(t, res.Results, 1)
		assert.Equal(t, "buy milk\n", res.Results[0].Content)
	})

	t.Run("content never follows symlinks outside the root", func(t *testing.T) {
		outside := t.TempDir()
		secret := filepath.Join(outside, "secret.txt")
		require.NoError(t, os.WriteFile(secret, []byte("s3cr3t\n"), 0o644))

		linked, root := newTestFS(t, nil)
		require.NoError(t, os.Symlink(secret, filepath.Join(root, "leak.txt")))

		res, err := linked.Search(ctx, "leak.txt", ".", true, true)
		require.NoError(t, err)
		require.Len(t, res.Results, 1)
		assert.Empty(t, res.Results[0].Content, "escaping symlink target must not be read")
	})

	t.Run("content honors the size ceiling through symlinks", func(t *testing.T) {
		small, root := newTestFS(t, func(cfg *config.FileConfig) {
			cfg.MaxFileSize = 4
		})
		require.NoError(t, os.Symlink(filepath.Join(root, "readme.md"), filepath.Join(root, "alias.md")))

		res, err := small.Search(ctx, "alias.md", ".", true, true)
		require.NoError(t, err)
		require.Len(t, res.Results, 1)
		assert.Empty(t, res.Results[0].Content, "resolved target exceeds the ceiling")
	})

	t.Run("result cap truncates", func(t *testing.T) {
		capped, _ := newTestFS(t, func(cfg *config.FileConfig) {
			cfg.MaxSearchResults = 1
		})

		res, err := capped.Search(ctx, "*.txt", ".", true, false)
		require.NoError(t, err)
		assert.Len(t, res.Results, 1)
		assert.True(t, res.Truncated)
	})

	t.Run("search below subdirectory", func(t *testing.T) {
		res, err := f.Search(ctx, "b.txt", "notes", true, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"notes/deep/a/b.txt"}, matchPaths(res))
	})
}

func TestAnalyze(t *testing.T) {
	f, root := newTestFS(t, nil)

	t.Run("valid existing file", func(t *testing.T) {
		a, err := f.Analyze("notes/todo.txt")
		require.NoError(t, err)
		assert.True(t, a.IsValid)
		assert.True(t, a.Exists)
		assert.Equal(t, "file", a.Type)
		assert.Equal(t, []string{"notes", "todo.txt"}, a.Components)
		assert.False(t, a.IsExcluded)
	})

	t.Run("traversal attempt", func(t *testing.T) {
		a, err := f.Analyze("../../etc/passwd")
		require.NoError(t, err)
		assert.False(t, a.IsValid)
		assert.False(t, a.Exists)
		assert.Equal(t, string(pathgate.ReasonTraversal), a.DenialReason)
	})

	t.Run("excluded path", func(t *testing.T) {
		a, err := f.Analyze(".git/config")
		require.NoError(t, err)
		assert.False(t, a.IsValid)
		assert.True(t, a.IsExcluded)
	})

	t.Run("missing path stays valid", func(t *testing.T) {
		a, err := f.Analyze("not-there.txt")
		require.NoError(t, err)
		assert.True(t, a.IsValid)
		assert.False(t, a.Exists)
		assert.Equal(t, string(pathgate.ReasonNotFound), a.DenialReason)
	})

	t.Run("directory type", func(t *testing.T) {
		a, err := f.Analyze(root)
		require.NoError(t, err)
		assert.Equal(t, "directory", a.Type)
	})
}

func entryNames(l *types.DirectoryListing) []string {
	names := make([]string, 0, len(l.Items))
	for _, e := range l.Items {
		names = append(names, e.Name)
	}
	return names
}

func entryPaths(l *types.DirectoryListing) []string {
	paths := make([]string, 0, len(l.Items))
	for _, e := range l.Items {
		paths = append(paths, e.Path)
	}
	return paths
}

func matchPaths(r *types.SearchResults) []string {
	paths := make([]string, 0, len(r.Results))
	for _, m := range r.Results {
		paths = append(paths, m.Path)
	}
	return paths
}
