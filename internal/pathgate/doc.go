// Package pathgate implements the access-control gate the file server
// consults before every filesystem operation.
//
// Given a configured root directory, exclusion-pattern set, and size
// ceiling, the gate decides whether read access to a requested path is
// permitted and returns a normalized, confined absolute path or a
// classified denial.
//
// # Basic Usage
//
//	gate, err := pathgate.New(pathgate.Config{
//	    Root:             "/srv/data",
//	    ExcludePatterns:  []string{"**/.git/**", "*.key"},
//	    MaxFileSize:      10 << 20,
//	    RespectGitignore: true,
//	})
//
//	res, err := gate.Resolve("notes/todo.txt", pathgate.OpRead)
//	if reason, ok := pathgate.ReasonOf(err); ok {
//	    // classified denial: traversal, excluded, too large, ...
//	}
//
// # Guarantees
//
// No resolved path ever lies outside the root, including via ".."
// segments and symlink indirection: paths are checked lexically before
// any filesystem access and again after symlink canonicalization. For
// missing targets the deepest existing ancestor is resolved, so a
// symlinked parent directory cannot carry a nonexistent path outside the
// root either.
//
// Exclusion patterns use gitignore syntax; when gitignore support is
// enabled, .gitignore files anywhere below the root apply hierarchically.
// A match from either source denies access.
//
// The gate is stateless and immutable after construction; concurrent
// Resolve calls are independent.
package pathgate
