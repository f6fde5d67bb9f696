package fsops

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/localtools/localmcp/internal/pathgate"
	"github.com/localtools/localmcp/pkg/types"
)

// DefaultMaxDepth bounds recursive listings when the caller does not set
// a depth.
const DefaultMaxDepth = 3

// ListDirectory lists a directory's contents, filtered through the gate's
// exclusion rules and capped at the configured per-directory limit. With
// recursive set, subdirectories are walked down to maxDepth levels below
// the starting directory.
func (f *FS) ListDirectory(requested string, recursive bool, maxDepth int) (*types.DirectoryListing, error) {
	res, err := f.gate.Resolve(requested, pathgate.OpList)
	if err != nil {
		return nil, err
	}

	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	listing := &types.DirectoryListing{
		Path:         res.Rel,
		AbsolutePath: res.Path,
		Metadata:     f.entryFor(res.Path, res.Rel, res.Info),
	}

	var items []types.FileEntry
	if recursive {
		items, listing.Truncated, err = f.walk(res, maxDepth)
	} else {
		items, listing.Truncated, err = f.readDir(res)
	}
	if err != nil {
		return nil, err
	}

	listing.Items = items
	listing.Count = len(items)
	return listing, nil
}

// readDir lists a single directory level.
func (f *FS) readDir(res *pathgate.Resolved) ([]types.FileEntry, bool, error) {
	entries, err := os.ReadDir(res.Path)
	if err != nil {
		return nil, false, &pathgate.Denial{Reason: pathgate.ReasonIO, Requested: res.Rel, Err: err}
	}

	items := make([]types.FileEntry, 0, len(entries))
	for _, entry := range entries {
		rel := childRel(res.Rel, entry.Name())
		if f.gate.Excluded(rel, entry.IsDir()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			f.log.Warn("stat failed during listing", "path", rel, "error", err)
			continue
		}

		items = append(items, f.entryFor(filepath.Join(res.Path, entry.Name()), rel, info))
		if len(items) >= f.cfg.MaxFilesPerDirectory {
			f.log.Warn("directory listing limit reached", "path", res.Rel, "limit", f.cfg.MaxFilesPerDirectory)
			return items, true, nil
		}
	}

	return items, false, nil
}

// walk lists recursively with a depth limit. Excluded directories are
// pruned so their contents are never visited.
func (f *FS) walk(res *pathgate.Resolved, maxDepth int) ([]types.FileEntry, bool, error) {
	var items []types.FileEntry
	truncated := false

	err := filepath.WalkDir(res.Path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			f.log.Warn("walk error", "path", p, "error", err)
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

		if depthOf(res.Path, p) > maxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			f.log.Warn("stat failed during walk", "path", rel, "error", err)
			return nil
		}

		items = append(items, f.entryFor(p, rel, info))
		if len(items) >= f.cfg.MaxFilesPerDirectory {
			f.log.Warn("directory listing limit reached", "path", res.Rel, "limit", f.cfg.MaxFilesPerDirectory)
			truncated = true
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, false, &pathgate.Denial{Reason: pathgate.ReasonIO, Requested: res.Rel, Err: err}
	}

	return items, truncated, nil
}

// childRel joins a root-relative directory with an entry path, keeping
// the forward-slash form the gate expects.
func childRel(dirRel, name string) string {
	if dirRel == "." {
		return filepath.ToSlash(name)
	}
	return dirRel + "/" + filepath.ToSlash(name)
}

// relFrom returns p relative to base in native form; p is always below
// base here.
func relFrom(base, p string) string {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return filepath.Base(p)
	}
	return rel
}

// depthOf counts directory levels of p below base; direct children are
// depth one.
func depthOf(base, p string) int {
	rel := relFrom(base, p)
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}
