package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/regtrack/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for regtrack resources.
	uriScheme = "regtrack://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "agencies",
		Name:        "agencies",
		Description: "Summaries of all tracked agencies",
		MIMEType:    "application/json",
	}, s.handleAgenciesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "agencies/{slug}/history",
		Name:        "agency-history",
		Description: "Snapshot history of a specific agency",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// handleAgenciesResource returns the agency summaries as JSON.
func (s *Server) handleAgenciesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	summaries, err := s.ports.Report.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing agencies: %w", err)
	}

	outputs := make([]AgencySummaryOutput, len(summaries))
	for i := range summaries {
		outputs[i] = toSummaryOutput(&summaries[i])
	}
	return jsonResult(req.Params.URI, outputs)
}

// handleHistoryResource returns one agency's history as JSON.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	slug := extractSlug(req.Params.URI)
	if slug == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	history, err := s.ports.Report.AgencyHistory(ctx, slug)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting agency history: %w", err)
	}
	return jsonResult(req.Params.URI, toHistoryOutput(history))
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSlug extracts the slug from a URI like regtrack://agencies/{slug}/history.
func extractSlug(uri string) string {
	const prefix = uriScheme + "agencies/"
	const suffix = "/history"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return ""
	}

	slug := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	if strings.Contains(slug, "/") {
		return ""
	}
	return slug
}
