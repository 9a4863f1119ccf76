package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/ghspec/internal/mcp/tools"
)

// AddTool registers a tool with the server after checking that the zero value
// of Out passes the JSON schema the SDK infers for it. A slice field without
// omitzero marshals as null against an inferred "type": "array", which the
// SDK would otherwise only reject on the first call.
//
// AddTool panics with the offending field when the check fails. Use it in
// place of [sdkmcp.AddTool].
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
