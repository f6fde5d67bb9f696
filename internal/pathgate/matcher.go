package pathgate

import (
	"fmt"

	"github.com/woozymasta/pathrules"
)

// Matcher decides whether a root-relative path is barred by policy. The
// path uses forward slashes and never starts with "/" or "./".
//
// The gate treats a match from any configured matcher as a denial, so the
// gitignore-semantics implementation can be swapped without touching the
// traversal logic.
type Matcher interface {
	Matches(rel string, isDir bool) bool
}

// excludeMatcher applies the configured exclusion pattern set. Patterns
// use gitignore syntax; any match excludes.
type excludeMatcher struct {
	m *pathrules.Matcher
}

func newExcludeMatcher(patterns []string) (*excludeMatcher, error) {
	rules := make([]pathrules.Rule, 0, len(patterns))
	for _, p := range patterns {
		rules = append(rules, pathrules.Rule{Pattern: p, Action: pathrules.ActionExclude})
	}

	m, err := pathrules.NewMatcher(rules, pathrules.MatcherOptions{
		DefaultAction: pathrules.ActionInclude,
	})
	if err != nil {
		return nil, fmt.Errorf("compile exclude patterns: %w", err)
	}

	return &excludeMatcher{m: m}, nil
}

func (e *excludeMatcher) Matches(rel string, isDir bool) bool {
	return e.m.Excluded(rel, isDir)
}

// gitignoreMatcher applies hierarchical .gitignore files below the root.
// Rules files are loaded lazily per directory and cached by the provider.
type gitignoreMatcher struct {
	p *pathrules.Provider
}

func newGitignoreMatcher(root string) (*gitignoreMatcher, error) {
	p, err := pathrules.NewProvider(root, pathrules.ProviderOptions{
		RulesFileName: ".gitignore",
		MatcherOptions: pathrules.MatcherOptions{
			DefaultAction: pathrules.ActionInclude,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gitignore provider: %w", err)
	}

	return &gitignoreMatcher{p: p}, nil
}

func (g *gitignoreMatcher) Matches(rel string, isDir bool) bool {
	// The gate has already confined rel to the root, so provider errors
	// only occur for unreadable rules files; those paths stay accessible.
	excluded, err := g.p.Excluded(rel, isDir)
	if err != nil {
		return false
	}
	return excluded
}
