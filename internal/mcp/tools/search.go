package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/ghspec/pkg/types"
)

// SearchSchemasInput is the input for search_schemas.
type SearchSchemasInput struct {
	Query   string                `json:"query,omitempty" jsonschema:"Free text over entry names, endpoint paths, command lines and descriptions. Tokens are ANDed."`
	Filters *SearchSchemasFilters `json:"filters,omitempty" jsonschema:"Structured filters"`
	Limit   int                   `json:"limit,omitempty" jsonschema:"Max results (default: 10, max: 100)"`
	Offset  int                   `json:"offset,omitempty" jsonschema:"Pagination offset"`
}

// SearchSchemasFilters contains filter criteria for search.
type SearchSchemasFilters struct {
	Kind       string `json:"kind,omitempty" jsonschema:"rest, graphql or cli"`
	Method     string `json:"method,omitempty" jsonschema:"HTTP method"`
	Field      string `json:"field,omitempty" jsonschema:"A word that must appear in a declared property path, e.g. login"`
	SchemaOnly bool   `json:"schema_only,omitempty" jsonschema:"Only entries that carry a schema"`
}

// SearchSchemasOutput is the output for search_schemas.
type SearchSchemasOutput struct {
	Results     []types.SearchResult `json:"results,omitzero"`
	TotalHint   int                  `json:"total_hint,omitempty"`
	IndexedAtMs int64                `json:"indexed_at_ms"`
	Hint        string               `json:"hint,omitempty"`
}

// ToolSearchSchemas searches the entries of the spec document.
func ToolSearchSchemas(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchSchemasInput) (*sdkmcp.CallToolResult, SearchSchemasOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchSchemasInput) (*sdkmcp.CallToolResult, SearchSchemasOutput, error) {
		limit := input.Limit
		if limit <= 0 {
			limit = d.Config.SearchLimit
		}

		searchReq := &types.SearchRequest{
			Query:  input.Query,
			Limit:  limit,
			Offset: input.Offset,
		}
		if f := input.Filters; f != nil {
			searchReq.Filters = &types.SearchFilters{
				Kind:       f.Kind,
				Method:     f.Method,
				Field:      f.Field,
				SchemaOnly: f.SchemaOnly,
			}
		}

		resp, err := d.Search.Search(ctx, searchReq)
		if err != nil {
			return nil, SearchSchemasOutput{}, WrapSpecError(err)
		}

		out := SearchSchemasOutput{
			Results:     resp.Results,
			TotalHint:   resp.TotalHint,
			IndexedAtMs: resp.IndexedAtMs,
		}
		if len(out.Results) == 0 {
			out.Hint = "no entries matched; drop a search term or a filter"
		} else if resp.TotalHint > input.Offset+len(out.Results) {
			out.Hint = fmt.Sprintf("%d more results; raise offset to page", resp.TotalHint-input.Offset-len(out.Results))
		}
		return nil, out, nil
	}
}
