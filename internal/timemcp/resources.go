package timemcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const zoneURIPrefix = "time://zone/"

// registerResources exposes the clock as MCP resources.
func (s *Server) registerResources() {
	current := mcp.NewResource(
		"time://current",
		"current-time",
		mcp.WithResourceDescription("Current time in the configured default timezone"),
		mcp.WithMIMEType("application/json"),
	)
	s.mcp.AddResource(current, s.handleCurrentResource)

	melbourne := mcp.NewResource(
		"time://melbourne",
		"melbourne-time",
		mcp.WithResourceDescription("Current time in Melbourne, Australia"),
		mcp.WithMIMEType("application/json"),
	)
	s.mcp.AddResource(melbourne, s.handleMelbourneResource)

	zone := mcp.NewResourceTemplate(
		zoneURIPrefix+"{name}",
		"timezone",
		mcp.WithTemplateDescription("Details for one IANA timezone"),
		mcp.WithTemplateMIMEType("application/json"),
	)
	s.mcp.AddResourceTemplate(zone, s.handleZoneResource)
}

func (s *Server) handleCurrentResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	info, err := s.tz.Current("")
	if err != nil {
		return nil, err
	}
	return jsonContents(request.Params.URI, formatJSON(info)), nil
}

func (s *Server) handleMelbourneResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	info, err := s.tz.Current(melbourneZone)
	if err != nil {
		return nil, err
	}
	return jsonContents(request.Params.URI, formatJSON(info)), nil
}

func (s *Server) handleZoneResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	name := strings.TrimPrefix(request.Params.URI, zoneURIPrefix)

	details, err := s.tz.Info(name)
	if err != nil {
		return nil, err
	}
	return jsonContents(request.Params.URI, formatJSON(details)), nil
}

func jsonContents(uri, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		},
	}
}
