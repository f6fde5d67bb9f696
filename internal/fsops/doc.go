// Package fsops implements the read-only filesystem operations exposed by
// the file server: metadata retrieval, directory listing, file reading,
// searching, and path analysis.
//
// Every operation resolves its path argument through the pathgate before
// any disk access, so confinement, exclusion patterns, and the size
// ceiling apply uniformly. Listings and searches additionally filter each
// visited entry through the gate's exclusion rules and honor the
// configured result caps.
//
// Operations never mutate the filesystem; the only side effects are stat
// and read calls.
package fsops
