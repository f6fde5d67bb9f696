package types

// FileEntry describes a single file or directory served by the file server.
// Path is always relative to the configured root directory; URI is the
// file:// form of the absolute path.
type FileEntry struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	URI       string `json:"uri"`
	Size      int64  `json:"size"`
	SizeHuman string `json:"size_human"`
	Modified  string `json:"modified"`
	IsDir     bool   `json:"is_directory"`
	MIMEType  string `json:"mime_type"`
	Extension string `json:"extension,omitempty"`
	Hash      string `json:"hash,omitempty"` // MD5 hex, small regular files only
}

// DirectoryListing is the result of listing a directory.
type DirectoryListing struct {
	Path         string      `json:"path"`
	AbsolutePath string      `json:"absolutePath"`
	Metadata     FileEntry   `json:"metadata"`
	Items        []FileEntry `json:"items"`
	Count        int         `json:"count"`
	Truncated    bool        `json:"truncated,omitempty"`
}

// FileContent is the result of reading a file.
type FileContent struct {
	Path         string    `json:"path"`
	AbsolutePath string    `json:"absolutePath"`
	Metadata     FileEntry `json:"metadata"`
	Content      string    `json:"content"`
}

// SearchMatch is one entry matched by a file search; Content is populated
// only when the caller asked for it and the file fits the size ceiling.
type SearchMatch struct {
	FileEntry
	Content string `json:"content,omitempty"`
}

// SearchResults is the result of a file search.
type SearchResults struct {
	Pattern      string        `json:"pattern"`
	Path         string        `json:"path"`
	AbsolutePath string        `json:"absolutePath"`
	Results      []SearchMatch `json:"results"`
	Count        int           `json:"count"`
	Truncated    bool          `json:"truncated,omitempty"`
}

// PathAnalysis reports how the access gate classifies a requested path.
type PathAnalysis struct {
	OriginalPath   string   `json:"originalPath"`
	NormalizedPath string   `json:"normalizedPath,omitempty"`
	RelativePath   string   `json:"relativePath,omitempty"`
	IsValid        bool     `json:"isValid"`
	Exists         bool     `json:"exists"`
	Type           string   `json:"type,omitempty"` // file, directory, symlink, other
	IsExcluded     bool     `json:"isExcluded"`
	Components     []string `json:"components,omitempty"`
	DenialReason   string   `json:"denialReason,omitempty"`
}
