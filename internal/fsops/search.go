package fsops

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/woozymasta/pathrules"
	"golang.org/x/sync/errgroup"

	"github.com/localtools/localmcp/internal/pathgate"
	"github.com/localtools/localmcp/pkg/types"
)

// regexPrefix marks a search pattern as a regular expression over entry
// names instead of a glob.
const regexPrefix = "r/"

// Search finds files below a directory whose names match the pattern.
// Patterns use gitignore-style glob syntax, or a regular expression when
// prefixed with "r/". Excluded directories are pruned, results are capped
// at the configured maximum, and content is loaded concurrently for
// matches under the size ceiling when includeContent is set.
func (f *FS) Search(ctx context.Context, pattern, requested string, recursive, includeContent bool) (*types.SearchResults, error) {
	if pattern == "" {
		return nil, fmt.Errorf("search pattern is empty")
	}

	res, err := f.gate.Resolve(requested, pathgate.OpList)
	if err != nil {
		return nil, err
	}

	match, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	results := &types.SearchResults{
		Pattern:      pattern,
		Path:         res.Rel,
		AbsolutePath: res.Path,
	}

	var matches []types.SearchMatch

	walkErr := filepath.WalkDir(res.Path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			f.log.Warn("walk error during search", "path", p, "error", err)
			return nil
		}
		if p == res.Path {
			return nil
		}

		rel := childRel(res.Rel, relFrom(res.Path, p))
		if f.gate.Excluded(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if !recursive {
				return filepath.SkipDir
			}
			return nil
		}

		relFromStart := filepath.ToSlash(relFrom(res.Path, p))
		if !match(relFromStart, d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			f.log.Warn("stat failed during search", "path", rel, "error", err)
			return nil
		}

		matches = append(matches, types.SearchMatch{FileEntry: f.entryFor(p, rel, info)})
		if len(matches) >= f.cfg.MaxSearchResults {
			f.log.Warn("search result limit reached", "pattern", pattern, "limit", f.cfg.MaxSearchResults)
			results.Truncated = true
			return filepath.SkipAll
		}
		return nil
	})
	if walkErr != nil {
		return nil, &pathgate.Denial{Reason: pathgate.ReasonIO, Requested: requested, Err: walkErr}
	}

	if includeContent {
		f.loadContent(ctx, matches)
	}

	results.Results = matches
	results.Count = len(matches)
	return results, nil
}

// loadContent fills match content with a bounded worker pool. Every
// match goes back through the gate as a read before it is touched, so
// symlinked entries that resolve outside the root, oversized targets
// and policy exclusions stay empty. Denials and read failures leave the
// content empty rather than failing the whole search.
func (f *FS) loadContent(ctx context.Context, matches []types.SearchMatch) {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := range matches {
		g.Go(func() error {
			res, err := f.gate.Resolve(matches[i].Path, pathgate.OpRead)
			if err != nil {
				f.log.Warn("content load denied", "path", matches[i].Path, "error", err)
				return nil
			}
			data, err := os.ReadFile(res.Path)
			if err != nil {
				f.log.Warn("content read failed", "path", matches[i].Path, "error", err)
				return nil
			}
			matches[i].Content = decodeContent(data)
			return nil
		})
	}

	_ = g.Wait()
}

// matchFunc tests one candidate; it receives both the path relative to
// the search directory and the bare entry name.
type matchFunc func(relFromStart, name string) bool

func compilePattern(pattern string) (matchFunc, error) {
	if strings.HasPrefix(pattern, regexPrefix) {
		re, err := regexp.Compile(strings.TrimPrefix(pattern, regexPrefix))
		if err != nil {
			return nil, fmt.Errorf("invalid search regexp: %w", err)
		}
		return func(_, name string) bool {
			return re.MatchString(name)
		}, nil
	}

	m, err := pathrules.NewMatcher(
		[]pathrules.Rule{{Pattern: pattern, Action: pathrules.ActionInclude}},
		pathrules.MatcherOptions{DefaultAction: pathrules.ActionExclude},
	)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern: %w", err)
	}
	return func(relFromStart, _ string) bool {
		return m.Included(relFromStart, false)
	}, nil
}
