package apispec

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Schema type names recognized by the matcher.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// Properties maps property names to schema nodes in document order.
type Properties = orderedmap.OrderedMap[string, *Schema]

// NewProperties returns an empty ordered property map.
func NewProperties() *Properties {
	return orderedmap.New[string, *Schema]()
}

// Schema is a single constraint node of a specification document.
//
// Required lives on the property's own node rather than as a list on the
// parent object: {"properties": {"name": {"type": "string", "required": true}}}.
type Schema struct {
	Type        string      `json:"type,omitempty" yaml:"type,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Nullable    bool        `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Required    bool        `json:"required,omitempty" yaml:"required,omitempty"`
	Items       *Schema     `json:"items,omitempty" yaml:"items,omitempty"`
	Properties  *Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
	Enum        []any       `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Set by UnmarshalJSON: the source object had at least one key, and the
	// "type" key was present (possibly as "" or null).
	declared bool
	typeKey  bool
	typeNull bool
}

type schemaFields Schema

// UnmarshalJSON decodes a node, keeping enum numbers as json.Number so that
// integer literals stay distinguishable from floats. Keys outside the dialect
// are ignored but still make the node non-empty.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var raw struct {
		schemaFields
		Enum json.RawMessage `json:"enum"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	*s = Schema(raw.schemaFields)
	s.Enum = nil
	s.declared = len(keys) > 0
	if t, ok := keys["type"]; ok {
		s.typeKey = true
		s.typeNull = string(bytes.TrimSpace(t)) == "null"
	}

	if len(raw.Enum) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw.Enum))
		dec.UseNumber()
		if err := dec.Decode(&s.Enum); err != nil {
			return fmt.Errorf("decoding enum: %w", err)
		}
	}
	return nil
}

// IsZero reports whether the node declares nothing at all. Lookups treat an
// empty node the same as a missing one. A decoded node with any key, even one
// the matcher ignores, is not empty.
func (s *Schema) IsZero() bool {
	if s == nil {
		return true
	}
	return !s.declared &&
		s.Type == "" &&
		s.Description == "" &&
		!s.Nullable &&
		!s.Required &&
		s.Items == nil &&
		s.Properties == nil &&
		s.Enum == nil
}

// HasType reports whether the node constrains the value's type. A decoded
// "type" key counts even when its value is "" or null.
func (s *Schema) HasType() bool {
	return s != nil && (s.typeKey || s.Type != "")
}

// TypeName is the declared type as written, "null" for a JSON null.
func (s *Schema) TypeName() string {
	if s.typeNull {
		return "null"
	}
	return s.Type
}

// Property returns the named property node, if declared.
func (s *Schema) Property(name string) (*Schema, bool) {
	if s == nil || s.Properties == nil {
		return nil, false
	}
	return s.Properties.Get(name)
}
