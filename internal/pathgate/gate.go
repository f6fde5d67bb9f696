package pathgate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Op names the operation a caller intends to perform on the resolved
// path. It selects the type and size checks applied after confinement.
type Op int

const (
	// OpStat permits any existing target; only confinement and policy apply.
	OpStat Op = iota
	// OpList requires the target to be a directory.
	OpList
	// OpRead requires a regular file within the size ceiling.
	OpRead
)

// Config holds the gate's immutable startup parameters.
type Config struct {
	// Root is the directory all access is confined beneath. Required.
	Root string
	// ExcludePatterns are gitignore-style patterns; a match denies access.
	ExcludePatterns []string
	// MaxFileSize is the read size ceiling in bytes. Zero disables the check.
	MaxFileSize int64
	// RespectGitignore enables hierarchical .gitignore files below Root.
	RespectGitignore bool
}

// Resolved is a canonicalized path verified to lie within the root.
type Resolved struct {
	// Path is the absolute, symlink-resolved location on disk.
	Path string
	// Rel is the root-relative path in forward-slash form; "." for the root.
	Rel string
	// Info is the stat result used for the type and size checks.
	Info os.FileInfo
}

// Gate decides whether read access to a requested path is permitted.
//
// A Gate is immutable after New and safe for concurrent use; each Resolve
// call is an independent, stateless decision.
type Gate struct {
	root        string // canonical absolute root
	maxFileSize int64
	matchers    []Matcher
}

// New builds a gate for the given configuration. The root must exist; it
// is canonicalized once so later prefix checks compare like with like.
func New(cfg Config) (*Gate, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("root directory is required")
	}

	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("canonicalize root %s: %w", abs, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	g := &Gate{root: root, maxFileSize: cfg.MaxFileSize}

	excl, err := newExcludeMatcher(cfg.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	g.matchers = append(g.matchers, excl)

	if cfg.RespectGitignore {
		ign, err := newGitignoreMatcher(root)
		if err != nil {
			return nil, err
		}
		g.matchers = append(g.matchers, ign)
	}

	return g, nil
}

// Root returns the canonical root directory.
func (g *Gate) Root() string {
	return g.root
}

// MaxFileSize returns the configured read size ceiling.
func (g *Gate) MaxFileSize() int64 {
	return g.maxFileSize
}

// Resolve validates a requested path and returns its confined canonical
// form. Relative paths are interpreted against the root; file:// prefixes
// are stripped. Every denial is a *Denial carrying a Reason; the only
// non-denial error is ErrEmptyPath for an empty request.
func (g *Gate) Resolve(requested string, op Op) (*Resolved, error) {
	if requested == "" {
		return nil, ErrEmptyPath
	}

	p := strings.TrimPrefix(requested, "file://")
	if p == "" {
		return nil, ErrEmptyPath
	}

	if filepath.IsAbs(p) {
		p = filepath.Clean(p)
	} else {
		p = filepath.Join(g.root, p)
	}

	// Lexical containment first: traversal via ".." is rejected before any
	// filesystem access, so probing cannot distinguish missing paths
	// outside the root from denied ones.
	if !within(g.root, p) {
		return nil, deny(ReasonTraversal, requested)
	}

	resolved, err := g.canonicalize(p)
	if err != nil {
		return nil, denyIO(requested, err)
	}

	// Re-check after symlink resolution; a link inside the root may point
	// anywhere.
	if !within(g.root, resolved) {
		return nil, deny(ReasonTraversal, requested)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, deny(ReasonNotFound, requested)
		}
		return nil, denyIO(requested, err)
	}

	rel, err := filepath.Rel(g.root, resolved)
	if err != nil {
		return nil, deny(ReasonTraversal, requested)
	}
	rel = filepath.ToSlash(rel)

	if rel != "." && g.Excluded(rel, info.IsDir()) {
		return nil, deny(ReasonExcluded, requested)
	}

	switch op {
	case OpList:
		if !info.IsDir() {
			return nil, deny(ReasonInvalidType, requested)
		}
	case OpRead:
		if !info.Mode().IsRegular() {
			return nil, deny(ReasonInvalidType, requested)
		}
		if g.maxFileSize > 0 && info.Size() > g.maxFileSize {
			return nil, deny(ReasonTooLarge, requested)
		}
	}

	return &Resolved{Path: resolved, Rel: rel, Info: info}, nil
}

// Excluded reports whether the root-relative path matches any exclusion
// pattern or ignore rule. Either kind of match is sufficient for denial.
func (g *Gate) Excluded(rel string, isDir bool) bool {
	for _, m := range g.matchers {
		if m.Matches(rel, isDir) {
			return true
		}
	}
	return false
}

// canonicalize resolves symlinks in p. When the target does not exist the
// deepest existing ancestor is resolved instead and the missing remainder
// re-appended, so symlinked parents cannot smuggle a path outside the root.
func (g *Gate) canonicalize(p string) (string, error) {
	resolved, err := filepath.EvalSymlinks(p)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	dir := p
	var tail []string
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return filepath.Clean(p), nil
		}
		tail = append(tail, filepath.Base(dir))
		dir = parent

		resolved, err = filepath.EvalSymlinks(dir)
		if err == nil {
			for i := len(tail) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, tail[i])
			}
			return resolved, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
	}
}

// within reports whether path equals root or is a descendant of it. The
// comparison is component-wise, so sibling directories sharing a name
// prefix (e.g. /root-evil vs /root) do not pass.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return !filepath.IsAbs(rel)
}
