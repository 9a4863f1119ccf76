package tools

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/ghspec/internal/catalog"
	"github.com/usestring/ghspec/pkg/types"
)

// FindSchemaInput is the input for find_schema.
type FindSchemaInput struct {
	Target string `json:"target" jsonschema:"endpoint or command"`
	ID     string `json:"id" jsonschema:"Identifier resolved exactly as validation resolves it"`
}

// FindSchemaOutput is the output for find_schema.
type FindSchemaOutput struct {
	Target string              `json:"target"`
	ID     string              `json:"id"`
	Found  bool                `json:"found"`
	Match  *types.EntrySummary `json:"match,omitempty"`
	Schema any                 `json:"schema,omitempty"`
	Hint   string              `json:"hint,omitempty"`
}

// ToolFindSchema resolves an identifier to its schema node.
func ToolFindSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input FindSchemaInput) (*sdkmcp.CallToolResult, FindSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input FindSchemaInput) (*sdkmcp.CallToolResult, FindSchemaOutput, error) {
		if input.ID == "" {
			return nil, FindSchemaOutput{}, ErrInvalidInput("id is required")
		}
		doc, err := d.LoadDocument()
		if err != nil {
			return nil, FindSchemaOutput{}, err
		}

		res, err := catalog.Find(doc, strings.ToLower(input.Target), input.ID)
		if err != nil {
			return nil, FindSchemaOutput{}, ErrInvalidInput(err.Error())
		}

		out := FindSchemaOutput{
			Target: res.Target,
			ID:     res.ID,
			Found:  res.Found,
			Match:  res.Match,
		}
		switch {
		case res.Match == nil:
			out.Hint = "no entry matched; try search_schemas"
		case !res.Found:
			out.Hint = "the first matching entry has no schema, so validation reports no schema found"
		}
		if res.Schema != nil {
			if out.Schema, err = types.ToAny(res.Schema); err != nil {
				return nil, FindSchemaOutput{}, err
			}
		}

		// The text content keeps property order; the structured copy cannot.
		result, err := MakeJSONToolResult(res)
		if err != nil {
			return nil, FindSchemaOutput{}, err
		}
		return result, out, nil
	}
}
