package filemcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/localtools/localmcp/internal/pathgate"
)

const fileURIPrefix = "file:///"

// registerResources exposes the served tree as MCP resources: a static
// root listing plus a template for individual files.
func (s *Server) registerResources() {
	root := mcp.NewResource(
		fileURIPrefix,
		"root-directory",
		mcp.WithResourceDescription("Listing of the served root directory"),
		mcp.WithMIMEType("application/json"),
	)
	s.mcp.AddResource(root, s.handleRootResource)

	tmpl := mcp.NewResourceTemplate(
		fileURIPrefix+"{path}",
		"file",
		mcp.WithTemplateDescription("Content of a file, or the listing of a directory, inside the served root"),
		mcp.WithTemplateMIMEType("text/plain"),
	)
	s.mcp.AddResourceTemplate(tmpl, s.handleFileResource)
}

func (s *Server) handleRootResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	listing, err := s.fs.ListDirectory(".", false, 0)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     formatJSON(listing),
		},
	}, nil
}

// handleFileResource serves file content for file URIs and a structured
// listing when the URI names a directory.
func (s *Server) handleFileResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rel := strings.TrimPrefix(request.Params.URI, fileURIPrefix)

	content, err := s.fs.ReadFile(rel)
	if err != nil {
		if reason, ok := pathgate.ReasonOf(err); ok && reason == pathgate.ReasonInvalidType {
			return s.directoryResource(request.Params.URI, rel)
		}
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: content.Metadata.MIMEType,
			Text:     content.Content,
		},
	}, nil
}

func (s *Server) directoryResource(uri, rel string) ([]mcp.ResourceContents, error) {
	listing, err := s.fs.ListDirectory(rel, false, 0)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     formatJSON(listing),
		},
	}, nil
}
