// Package catalog resolves identifiers to document entries and describes
// what they resolved to.
package catalog

import (
	"fmt"

	"github.com/usestring/ghspec/pkg/apispec"
	"github.com/usestring/ghspec/pkg/types"
)

// Find resolves id the way validation does and reports the entry it matched.
// Found is true only when the match carries a usable schema; Match is set
// whenever an entry matched at all, so callers can explain a schema-less hit.
func Find(doc *apispec.Document, target, id string) (*types.FindResult, error) {
	res := &types.FindResult{Target: target, ID: id}

	switch target {
	case types.TargetEndpoint:
		if m, ok := doc.FindEndpoint(id); ok {
			res.Match = endpointSummary(m)
		}
		res.Schema, res.Found = apispec.FindEndpointSchema(doc, id)
	case types.TargetCommand:
		if m, ok := doc.FindCommand(id); ok {
			res.Match = commandSummary(m)
		}
		res.Schema, res.Found = apispec.FindCommandSchema(doc, id)
	default:
		return nil, fmt.Errorf("unknown target %q: want %q or %q", target, types.TargetEndpoint, types.TargetCommand)
	}
	return res, nil
}

func endpointSummary(m *apispec.EndpointMatch) *types.EntrySummary {
	s := &types.EntrySummary{Kind: string(m.Kind), Name: m.Name}
	if ep := m.Endpoint; ep != nil {
		s.Target = ep.Endpoint
		s.Method = ep.Method
		s.Description = ep.Description
		s.HasSchema = !ep.ResponseSchema().IsZero()
	}
	return s
}

func commandSummary(m *apispec.CommandMatch) *types.EntrySummary {
	s := &types.EntrySummary{Kind: "cli", Name: m.Name}
	if cmd := m.Command; cmd != nil {
		s.Target = cmd.Command
		s.Description = cmd.Description
		s.HasSchema = !cmd.Output.IsZero()
	}
	return s
}
