// Package validate checks decoded API responses and gh CLI outputs against
// the schema nodes of a specification document.
//
// Validation reports at most one message per value: the first failure met in
// a depth-first walk. Schema-lookup misses are reported as messages too; only
// failures to load the specification document are returned as errors.
package validate

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/usestring/ghspec/pkg/apispec"
)

// acceptedKinds maps each schema type to the value kinds it admits.
var acceptedKinds = map[string][]Kind{
	apispec.TypeString:  {KindString},
	apispec.TypeInteger: {KindInteger},
	apispec.TypeNumber:  {KindInteger, KindFloat},
	apispec.TypeBoolean: {KindBoolean},
	apispec.TypeArray:   {KindArray},
	apispec.TypeObject:  {KindObject},
}

// ValidateType checks value against node and returns false with a message
// describing the first failure. A node without a type accepts anything.
//
// value must be in the decoded-JSON model (see KindOf); typed Go containers
// such as []string report as unknown. Pass them through Normalize first.
func ValidateType(value any, node *apispec.Schema) (bool, string) {
	if !node.HasType() {
		return true, ""
	}

	if node.Nullable && value == nil {
		return true, ""
	}

	kinds, ok := acceptedKinds[node.Type]
	if !ok {
		return false, fmt.Sprintf("Unknown type: %s", node.TypeName())
	}

	kind := KindOf(value)
	if !slices.Contains(kinds, kind) {
		return false, fmt.Sprintf("Expected %s, got %s", node.Type, kind)
	}

	switch node.Type {
	case apispec.TypeArray:
		if node.Items != nil {
			for i, item := range value.([]any) {
				if ok, msg := ValidateType(item, node.Items); !ok {
					return false, fmt.Sprintf("Array item %d: %s", i, msg)
				}
			}
		}
	case apispec.TypeObject:
		if node.Properties != nil {
			obj := value.(map[string]any)
			for pair := node.Properties.Oldest(); pair != nil; pair = pair.Next() {
				name, prop := pair.Key, pair.Value
				if v, present := obj[name]; present {
					if ok, msg := ValidateType(v, prop); !ok {
						return false, fmt.Sprintf("Property '%s': %s", name, msg)
					}
				} else if prop != nil && prop.Required {
					return false, fmt.Sprintf("Missing required property: %s", name)
				}
			}
		}
	}

	if node.Enum != nil && !inEnum(value, node.Enum) {
		return false, fmt.Sprintf("Value must be one of: %s", formatEnum(node.Enum))
	}

	return true, ""
}

func inEnum(value any, enum []any) bool {
	for _, allowed := range enum {
		if Equal(value, allowed) {
			return true
		}
	}
	return false
}

// formatEnum renders the allowed values as compact JSON, e.g. ["red","blue"].
func formatEnum(enum []any) string {
	b, err := json.Marshal(enum)
	if err != nil {
		return fmt.Sprint(enum)
	}
	return string(b)
}
