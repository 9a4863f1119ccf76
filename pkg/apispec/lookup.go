package apispec

import (
	"log/slog"
	"strings"
)

// EndpointMatch is the entry an endpoint identifier resolved to.
type EndpointMatch struct {
	Kind     APIKind
	Name     string
	Endpoint *Endpoint
}

// CommandMatch is the entry a command identifier resolved to.
type CommandMatch struct {
	Name    string
	Command *Command
}

// FindEndpoint searches the REST endpoints and then the GraphQL endpoints, in
// document order, for an entry whose name or declared endpoint equals id.
func (d *Document) FindEndpoint(id string) (*EndpointMatch, bool) {
	for _, kind := range APIKinds {
		eps := d.Endpoints(kind)
		if eps == nil {
			continue
		}
		for pair := eps.Oldest(); pair != nil; pair = pair.Next() {
			ep := pair.Value
			if pair.Key == id || (ep != nil && ep.Endpoint != "" && ep.Endpoint == id) {
				return &EndpointMatch{Kind: kind, Name: pair.Key, Endpoint: ep}, true
			}
		}
	}
	return nil, false
}

// FindCommand searches gh_cli.commands, in document order, for an entry whose
// name equals id or whose command text contains id.
func (d *Document) FindCommand(id string) (*CommandMatch, bool) {
	cmds := d.Commands()
	if cmds == nil {
		return nil, false
	}
	for pair := cmds.Oldest(); pair != nil; pair = pair.Next() {
		cmd := pair.Value
		if pair.Key == id || (cmd != nil && strings.Contains(cmd.Command, id)) {
			return &CommandMatch{Name: pair.Key, Command: cmd}, true
		}
	}
	return nil, false
}

// FindEndpointSchema returns the response schema of the first endpoint that
// matches id. The first match decides: if it carries no schema the result is
// absent even when a later entry would also match.
func FindEndpointSchema(doc *Document, id string) (*Schema, bool) {
	m, ok := doc.FindEndpoint(id)
	if !ok {
		slog.Debug("no endpoint entry matched", slog.String("endpoint", id))
		return nil, false
	}
	s := m.Endpoint.ResponseSchema()
	if s.IsZero() {
		slog.Debug("matched endpoint has no response schema",
			slog.String("endpoint", id),
			slog.String("entry", m.Name),
		)
		return nil, false
	}
	return s, true
}

// FindCommandSchema returns the output schema of the first command that
// matches id.
func FindCommandSchema(doc *Document, id string) (*Schema, bool) {
	m, ok := doc.FindCommand(id)
	if !ok {
		slog.Debug("no command entry matched", slog.String("command", id))
		return nil, false
	}
	var s *Schema
	if m.Command != nil {
		s = m.Command.Output
	}
	if s.IsZero() {
		slog.Debug("matched command has no output schema",
			slog.String("command", id),
			slog.String("entry", m.Name),
		)
		return nil, false
	}
	return s, true
}
