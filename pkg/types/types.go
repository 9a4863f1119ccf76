// Package types provides shared types for ghspec.
// These types are used across multiple packages and are designed for external consumption.
package types

import "encoding/json"

// ToAny round-trips a typed value through JSON to produce an untyped any.
// Use this when a tool output field must be any (instead of json.RawMessage)
// to satisfy the MCP SDK's schema validation.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EntrySummary is a compact representation of one endpoint or command entry.
type EntrySummary struct {
	Kind        string `json:"kind"` // "rest", "graphql" or "cli"
	Name        string `json:"name"`
	Target      string `json:"target,omitempty"` // Endpoint path, GraphQL query or command line
	Method      string `json:"method,omitempty"`
	Description string `json:"description,omitempty"`
	HasSchema   bool   `json:"has_schema"`
	FieldCount  int    `json:"field_count,omitempty"`
}

// ResourceRef points to an MCP resource.
type ResourceRef struct {
	URI  string `json:"uri"`
	MIME string `json:"mime"`
	Hint string `json:"hint,omitempty"`
}
