package fsops

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/localtools/localmcp/internal/config"
	"github.com/localtools/localmcp/internal/logging"
	"github.com/localtools/localmcp/internal/pathgate"
	"github.com/localtools/localmcp/pkg/types"
)

// hashCeiling bounds the file size for which an MD5 digest is computed.
const hashCeiling = 1 << 20

// FS performs read-only filesystem operations confined by the access
// gate. Every public method resolves its path argument through the gate
// before touching the disk.
type FS struct {
	gate *pathgate.Gate
	cfg  *config.FileConfig
	log  *logging.Logger
}

// New builds an FS over the given gate and configuration.
func New(gate *pathgate.Gate, cfg *config.FileConfig, log *logging.Logger) *FS {
	return &FS{gate: gate, cfg: cfg, log: log}
}

// Gate exposes the underlying access gate for callers that need raw
// resolution, e.g. the path analysis tool.
func (f *FS) Gate() *pathgate.Gate {
	return f.gate
}

// Metadata returns metadata for a file or directory.
func (f *FS) Metadata(requested string) (*types.FileEntry, error) {
	res, err := f.gate.Resolve(requested, pathgate.OpStat)
	if err != nil {
		return nil, err
	}

	entry := f.entryFor(res.Path, res.Rel, res.Info)
	return &entry, nil
}

// ReadFile returns the content of a regular file together with its
// metadata. Binary content is replaced by a size placeholder; invalid
// UTF-8 sequences in text are substituted.
func (f *FS) ReadFile(requested string) (*types.FileContent, error) {
	res, err := f.gate.Resolve(requested, pathgate.OpRead)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(res.Path)
	if err != nil {
		return nil, &pathgate.Denial{Reason: pathgate.ReasonIO, Requested: requested, Err: err}
	}

	return &types.FileContent{
		Path:         res.Rel,
		AbsolutePath: res.Path,
		Metadata:     f.entryFor(res.Path, res.Rel, res.Info),
		Content:      decodeContent(data),
	}, nil
}

// Analyze reports how the gate classifies a requested path without
// performing any operation on it.
func (f *FS) Analyze(requested string) (*types.PathAnalysis, error) {
	analysis := &types.PathAnalysis{OriginalPath: requested}

	res, err := f.gate.Resolve(requested, pathgate.OpStat)
	if err != nil {
		reason, ok := pathgate.ReasonOf(err)
		if !ok {
			return nil, err
		}
		analysis.DenialReason = string(reason)
		analysis.IsExcluded = reason == pathgate.ReasonExcluded
		analysis.IsValid = reason == pathgate.ReasonNotFound
		return analysis, nil
	}

	analysis.IsValid = true
	analysis.Exists = true
	analysis.NormalizedPath = res.Path
	analysis.RelativePath = res.Rel
	if res.Rel != "." {
		analysis.Components = strings.Split(res.Rel, "/")
	}

	switch mode := res.Info.Mode(); {
	case mode.IsDir():
		analysis.Type = "directory"
	case mode.IsRegular():
		analysis.Type = "file"
	default:
		analysis.Type = "other"
	}

	return analysis, nil
}

// entryFor builds a FileEntry from a resolved path and its stat info.
func (f *FS) entryFor(abs, rel string, info os.FileInfo) types.FileEntry {
	entry := types.FileEntry{
		Name:      info.Name(),
		Path:      rel,
		URI:       "file://" + abs,
		Size:      info.Size(),
		SizeHuman: humanize.IBytes(uint64(info.Size())),
		Modified:  info.ModTime().Format(time.RFC3339),
		IsDir:     info.IsDir(),
	}
	if rel == "." {
		entry.Name = filepath.Base(abs)
	}

	if info.IsDir() {
		entry.MIMEType = "inode/directory"
		return entry
	}

	entry.Extension = strings.TrimPrefix(path.Ext(entry.Name), ".")

	// Sniffing and hashing open the file, so irregular entries
	// (symlinks included, which resolve who-knows-where) get the
	// extension fallback only.
	if info.Mode().IsRegular() {
		entry.MIMEType = f.detectMIME(abs, entry.Name)
	} else {
		entry.MIMEType = f.mimeByExtension(entry.Name)
	}

	if info.Mode().IsRegular() && info.Size() <= hashCeiling {
		if sum, err := fileMD5(abs); err == nil {
			entry.Hash = sum
		} else {
			f.log.Warn("hashing failed", "path", rel, "error", err)
		}
	}

	return entry
}

// detectMIME sniffs content first and falls back to the extension, then
// to the configured default.
func (f *FS) detectMIME(abs, name string) string {
	if m, err := mimetype.DetectFile(abs); err == nil {
		return m.String()
	}
	return f.mimeByExtension(name)
}

func (f *FS) mimeByExtension(name string) string {
	if byExt := mime.TypeByExtension(path.Ext(name)); byExt != "" {
		return byExt
	}
	return f.cfg.DefaultMIMEType
}

func fileMD5(abs string) (string, error) {
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("read for hashing: %w", err)
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}

// decodeContent renders file bytes for transport. Binary data is replaced
// with a placeholder; text keeps its length but invalid UTF-8 sequences
// are substituted with the replacement character.
func decodeContent(data []byte) string {
	if isBinary(data) {
		return fmt.Sprintf("[Binary file: %s]", humanize.IBytes(uint64(len(data))))
	}
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "�")
}

// isBinary applies the same heuristic the original server used: more than
// 30% control bytes outside the usual whitespace range means binary.
func isBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	sample := data
	if len(sample) > 8192 {
		sample = sample[:8192]
	}

	control := 0
	for _, b := range sample {
		if b < 9 || (b > 13 && b < 32) {
			control++
		}
	}
	return control > len(sample)*3/10
}
