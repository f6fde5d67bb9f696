package filemcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerPrompts wires the reusable prompt templates. Each prompt reads
// through the same gate as the tools, so excluded or oversized files
// fail prompt expansion the same way they fail a read.
func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("file.code_review",
		mcp.WithPromptDescription("Review a source file for correctness, clarity and style"),
		mcp.WithArgument("path",
			mcp.ArgumentDescription("File to review, relative to the served root"),
			mcp.RequiredArgument(),
		),
	), s.handleCodeReviewPrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("file.summarize",
		mcp.WithPromptDescription("Summarize the content of a file"),
		mcp.WithArgument("path",
			mcp.ArgumentDescription("File to summarize, relative to the served root"),
			mcp.RequiredArgument(),
		),
	), s.handleSummarizePrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("file.project_structure",
		mcp.WithPromptDescription("Describe the layout of a directory tree"),
		mcp.WithArgument("path",
			mcp.ArgumentDescription("Directory to describe, relative to the served root; defaults to the root"),
		),
	), s.handleProjectStructurePrompt)
}

func (s *Server) handleCodeReviewPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	path := request.Params.Arguments["path"]
	if path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path argument is required", nil)
	}

	content, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf(
		"Please review the following file for correctness, clarity and style.\n"+
			"Point out bugs, risky constructs and naming issues, and suggest concrete improvements.\n\n"+
			"File: %s (%s)\n\n```\n%s\n```",
		content.Path, content.Metadata.MIMEType, content.Content)

	return mcp.NewGetPromptResult(
		fmt.Sprintf("Code review of %s", content.Path),
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

func (s *Server) handleSummarizePrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	path := request.Params.Arguments["path"]
	if path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path argument is required", nil)
	}

	content, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf(
		"Summarize the following file in a few short paragraphs.\n"+
			"Cover its purpose, key contents and anything unusual.\n\n"+
			"File: %s (%s, %s)\n\n```\n%s\n```",
		content.Path, content.Metadata.MIMEType, content.Metadata.SizeHuman, content.Content)

	return mcp.NewGetPromptResult(
		fmt.Sprintf("Summary of %s", content.Path),
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

func (s *Server) handleProjectStructurePrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	path := request.Params.Arguments["path"]
	if path == "" {
		path = "."
	}

	listing, err := s.fs.ListDirectory(path, true, 3)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf(
		"Describe the structure of this project directory.\n"+
			"Identify the main components, where configuration lives and how the pieces relate.\n\n"+
			"Directory: %s (%d entries)\n\n%s",
		listing.Path, listing.Count, formatJSON(listing.Items))

	return mcp.NewGetPromptResult(
		fmt.Sprintf("Structure of %s", listing.Path),
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}
