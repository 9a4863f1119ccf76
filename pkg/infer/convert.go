package infer

import (
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/usestring/ghspec/pkg/apispec"
)

// toSpec folds a draft into the spec dialect.
func toSpec(d *jsonschema.Schema) *apispec.Schema {
	if d == nil {
		return &apispec.Schema{}
	}

	alts := []*jsonschema.Schema{d}
	if d.Type == "" && len(d.AnyOf) > 0 {
		alts = d.AnyOf
	}

	nullable := false
	var rest []*jsonschema.Schema
	for _, alt := range alts {
		if alt.Type == "null" {
			nullable = true
			continue
		}
		rest = append(rest, alt)
	}

	var out *apispec.Schema
	switch len(rest) {
	case 0:
		out = &apispec.Schema{}
	case 1:
		out = typedSpec(rest[0])
	default:
		// The dialect has no unions; leave the type open.
		names := make([]string, 0, len(rest))
		for _, alt := range rest {
			names = append(names, alt.Type)
		}
		out = &apispec.Schema{Description: "one of: " + strings.Join(names, ", ")}
	}
	out.Nullable = nullable
	return out
}

func typedSpec(d *jsonschema.Schema) *apispec.Schema {
	out := &apispec.Schema{Type: d.Type}
	switch d.Type {
	case apispec.TypeArray:
		if d.Items != nil {
			out.Items = toSpec(d.Items)
		}
	case apispec.TypeObject:
		out.Properties = apispec.NewProperties()
		required := make(map[string]bool, len(d.Required))
		for _, name := range d.Required {
			required[name] = true
		}
		if d.Properties != nil {
			for pair := d.Properties.Oldest(); pair != nil; pair = pair.Next() {
				prop := toSpec(pair.Value)
				prop.Required = required[pair.Key]
				out.Properties.Set(pair.Key, prop)
			}
		}
	}
	return out
}

// applyEnums sets enum values on the string nodes whose field statistics
// detected a small closed set.
func applyEnums(root *apispec.Schema, fields []FieldStat) {
	for _, f := range fields {
		if f.Format != FormatEnum || len(f.EnumValues) == 0 {
			continue
		}
		node := nodeAt(root, f.Path)
		if node == nil || node.Type != apispec.TypeString {
			continue
		}
		node.Enum = make([]any, 0, len(f.EnumValues))
		for _, v := range f.EnumValues {
			node.Enum = append(node.Enum, v)
		}
	}
}

// nodeAt resolves a field path such as "owner.login" or "labels[].name".
func nodeAt(root *apispec.Schema, path string) *apispec.Schema {
	node := root
	for _, seg := range strings.Split(path, ".") {
		name := strings.TrimRight(seg, "[]")
		if name != "" {
			next, ok := node.Property(name)
			if !ok {
				return nil
			}
			node = next
		}
		for range strings.Count(seg[len(name):], "[]") {
			if node.Items == nil {
				return nil
			}
			node = node.Items
		}
	}
	return node
}
