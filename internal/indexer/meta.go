// Package indexer maintains a searchable index over the entries of a
// specification document.
package indexer

import (
	"github.com/usestring/ghspec/pkg/apispec"
	"github.com/usestring/ghspec/pkg/types"
)

// Entry kinds. REST and GraphQL match the endpoint groups of a document.
const (
	KindREST    = string(apispec.APIRest)
	KindGraphQL = string(apispec.APIGraphQL)
	KindCLI     = "cli"
)

// EntryMeta holds the searchable fields of one endpoint or command entry.
// Schemas are not stored; only the property paths they declare.
type EntryMeta struct {
	DocID       uint32
	Kind        string
	Name        string
	Target      string // Endpoint path, GraphQL query or command line
	Method      string
	Description string
	HasSchema   bool
	Fields      []string // Property paths, "[]" marks array items
}

// ToSummary converts metadata to the shared summary type.
func (m *EntryMeta) ToSummary() *types.EntrySummary {
	return &types.EntrySummary{
		Kind:        m.Kind,
		Name:        m.Name,
		Target:      m.Target,
		Method:      m.Method,
		Description: m.Description,
		HasSchema:   m.HasSchema,
		FieldCount:  len(m.Fields),
	}
}

func fromEndpoint(kind apispec.APIKind, name string, ep *apispec.Endpoint) *EntryMeta {
	meta := &EntryMeta{Kind: string(kind), Name: name}
	if ep == nil {
		return meta
	}
	meta.Target = ep.Endpoint
	meta.Method = ep.Method
	meta.Description = ep.Description
	if s := ep.ResponseSchema(); !s.IsZero() {
		meta.HasSchema = true
		meta.Fields = fieldPaths(s)
	}
	return meta
}

func fromCommand(name string, cmd *apispec.Command) *EntryMeta {
	meta := &EntryMeta{Kind: KindCLI, Name: name}
	if cmd == nil {
		return meta
	}
	meta.Target = cmd.Command
	meta.Description = cmd.Description
	if !cmd.Output.IsZero() {
		meta.HasSchema = true
		meta.Fields = fieldPaths(cmd.Output)
	}
	return meta
}

// fieldPaths lists the property paths declared under s, parents first.
func fieldPaths(s *apispec.Schema) []string {
	var paths []string
	var walk func(s *apispec.Schema, prefix string)
	walk = func(s *apispec.Schema, prefix string) {
		if s == nil {
			return
		}
		if s.Items != nil {
			walk(s.Items, prefix+"[]")
		}
		if s.Properties == nil {
			return
		}
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			path := pair.Key
			if prefix != "" {
				path = prefix + "." + pair.Key
			}
			paths = append(paths, path)
			walk(pair.Value, path)
		}
	}
	walk(s, "")
	return paths
}
