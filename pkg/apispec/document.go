// Package apispec models the API specification document that describes
// GitHub REST and GraphQL responses and gh CLI command outputs, and resolves
// endpoint and command identifiers to their schema nodes.
package apispec

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultFile is the conventional name of the specification document.
const DefaultFile = "api-specs.json"

// Document is the root of a specification document.
type Document struct {
	GitHub GitHub `json:"github" yaml:"github"`
	GHCLI  GHCLI  `json:"gh_cli" yaml:"gh_cli"`
}

// Endpoints maps endpoint names to their specs in document order.
type Endpoints = orderedmap.OrderedMap[string, *Endpoint]

// Commands maps command names to their specs in document order.
type Commands = orderedmap.OrderedMap[string, *Command]

// GitHub groups the REST and GraphQL endpoint specs.
type GitHub struct {
	REST    *Endpoints `json:"rest,omitempty" yaml:"rest,omitempty"`
	GraphQL *Endpoints `json:"graphql,omitempty" yaml:"graphql,omitempty"`
}

// GHCLI groups the gh command specs.
type GHCLI struct {
	Commands *Commands `json:"commands,omitempty" yaml:"commands,omitempty"`
}

// Endpoint describes one API operation.
type Endpoint struct {
	Endpoint    string    `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Method      string    `json:"method,omitempty" yaml:"method,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Response    *Response `json:"response,omitempty" yaml:"response,omitempty"`
}

// Response wraps the schema of an endpoint's response body.
type Response struct {
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// ResponseSchema returns the endpoint's response schema or nil.
func (e *Endpoint) ResponseSchema() *Schema {
	if e == nil || e.Response == nil {
		return nil
	}
	return e.Response.Schema
}

// Command describes one gh CLI invocation.
type Command struct {
	Command     string  `json:"command,omitempty" yaml:"command,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Output      *Schema `json:"output,omitempty" yaml:"output,omitempty"`
}

// APIKind names a group of endpoints under "github".
type APIKind string

// Endpoint groups, in lookup order.
const (
	APIRest    APIKind = "rest"
	APIGraphQL APIKind = "graphql"
)

// APIKinds lists the endpoint groups in the order lookups search them.
var APIKinds = []APIKind{APIRest, APIGraphQL}

// Endpoints returns the endpoint map for the given group, or nil.
func (d *Document) Endpoints(kind APIKind) *Endpoints {
	if d == nil {
		return nil
	}
	switch kind {
	case APIRest:
		return d.GitHub.REST
	case APIGraphQL:
		return d.GitHub.GraphQL
	default:
		return nil
	}
}

// Commands returns the gh command map, or nil.
func (d *Document) Commands() *Commands {
	if d == nil {
		return nil
	}
	return d.GHCLI.Commands
}
