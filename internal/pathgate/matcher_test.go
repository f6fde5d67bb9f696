package pathgate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcludeMatcher(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		rel      string
		isDir    bool
		want     bool
	}{
		{"double star dir", []string{"**/.git/**"}, ".git/config", false, true},
		{"double star nested", []string{"**/.git/**"}, "vendor/lib/.git/HEAD", false, true},
		{"basename glob", []string{"*.log"}, "sub/app.log", false, true},
		{"anchored path", []string{"/secrets"}, "secrets", true, true},
		{"anchored path not nested", []string{"/secrets"}, "sub/secrets", true, false},
		{"no match", []string{"*.log"}, "notes/todo.txt", false, false},
		{"dir only pattern on file", []string{"build/"}, "build", false, false},
		{"dir only pattern on dir", []string{"build/"}, "build", true, true},
		{"empty pattern set", nil, "anything", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := newExcludeMatcher(tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Matches(tt.rel, tt.isDir))
		})
	}
}

func TestGitignoreMatcher_Negation(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"),
		[]byte("*.log\n!keep.log\n"), 0o644))

	m, err := newGitignoreMatcher(root)
	require.NoError(t, err)

	assert.True(t, m.Matches("app.log", false))
	assert.False(t, m.Matches("keep.log", false), "negated rule re-includes")
	assert.False(t, m.Matches("readme.md", false))
}
