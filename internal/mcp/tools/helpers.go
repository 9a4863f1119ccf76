// Package tools contains MCP tool implementations for ghspec.
package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/ghspec/pkg/validate"
)

// MIME type constant.
const MimeJSON = "application/json"

// MakeJSONToolResult creates a CallToolResult with JSON text content.
func MakeJSONToolResult(v any) (*sdkmcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: string(b)},
		},
	}, nil
}

// decodeArgument turns a tool argument into a value the matcher can classify.
//
// Tool arguments arrive already decoded, with every number as float64. When
// text is set it is decoded instead, which keeps 1.0 a float. Otherwise value
// is re-encoded and decoded with number precision, so 1 becomes an integer.
func decodeArgument(name string, value any, text string) (any, error) {
	if strings.TrimSpace(text) != "" {
		v, err := validate.DecodeBytes([]byte(text))
		if err != nil {
			return nil, ErrInvalidInput(fmt.Sprintf("%s_json: %v", name, err))
		}
		return v, nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return nil, ErrInvalidInput(fmt.Sprintf("%s: %v", name, err))
	}
	v, err := validate.DecodeBytes(b)
	if err != nil {
		return nil, ErrInvalidInput(fmt.Sprintf("%s: %v", name, err))
	}
	return v, nil
}
