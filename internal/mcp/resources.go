package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/ghspec/internal/catalog"
	"github.com/usestring/ghspec/internal/mcp/tools"
	"github.com/usestring/ghspec/pkg/types"
)

// Resource URI scheme: ghspec://
// Supported URIs:
//   ghspec://spec
//   ghspec://endpoint/{id}
//   ghspec://command/{id}

const (
	resourceScheme = "ghspec://"
	specURI        = resourceScheme + "spec"
)

// registerResources registers resources and resource templates.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         specURI,
		Name:        "Spec Document",
		Description: "The whole API spec document as loaded by the validator. High context cost for large documents; prefer search_schemas and find_schema.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.3,
		},
	}, s.handleResourceSpec)

	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: resourceScheme + "endpoint/{id}",
		Name:        "Endpoint Schema",
		Description: "The entry and response schema an endpoint identifier resolves to. Identifiers containing '/' must be URL-escaped.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourceEntry)

	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: resourceScheme + "command/{id}",
		Name:        "Command Schema",
		Description: "The entry and output schema a gh command identifier resolves to.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourceEntry)
}

func (s *Server) handleResourceSpec(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	doc, err := s.deps.LoadDocument()
	if err != nil {
		return nil, err
	}
	result, err := toResourceResult(req.Params.URI, doc)
	if err != nil {
		return nil, err
	}
	if limit := s.deps.Config.ResourceMaxBytes; limit > 0 && len(result.Contents[0].Text) > limit {
		return nil, tools.ErrInvalidInput(fmt.Sprintf(
			"spec document is %d bytes, over the %d byte resource limit; use search_schemas and find_schema instead",
			len(result.Contents[0].Text), limit,
		))
	}
	return result, nil
}

func (s *Server) handleResourceEntry(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	target, id, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	doc, err := s.deps.LoadDocument()
	if err != nil {
		return nil, err
	}

	res, err := catalog.Find(doc, target, id)
	if err != nil {
		return nil, tools.ErrInvalidInput(err.Error())
	}
	if res.Match == nil {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}
	return toResourceResult(req.Params.URI, res)
}

// Helper functions

// parseResourceURI splits a ghspec://endpoint/{id} or ghspec://command/{id}
// URI into its target and unescaped identifier.
func parseResourceURI(uri string) (target, id string, err error) {
	if !strings.HasPrefix(uri, resourceScheme) {
		return "", "", tools.ErrInvalidInput("invalid URI scheme: expected " + resourceScheme)
	}

	target, rawID, ok := strings.Cut(strings.TrimPrefix(uri, resourceScheme), "/")
	if !ok || rawID == "" {
		return "", "", tools.ErrInvalidInput("resource URI requires a target and an identifier")
	}
	if target != types.TargetEndpoint && target != types.TargetCommand {
		return "", "", tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", target))
	}

	id, err = url.PathUnescape(rawID)
	if err != nil {
		return "", "", tools.ErrInvalidInput(fmt.Sprintf("bad identifier %q: %v", rawID, err))
	}
	return target, id, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
