package infer

import (
	"sort"

	"github.com/invopop/jsonschema"

	"github.com/usestring/ghspec/pkg/validate"
)

func draftFromValue(v any) *jsonschema.Schema {
	switch val := v.(type) {
	case []any:
		return draftArray(val)
	case map[string]any:
		return draftObject(val)
	}

	switch validate.KindOf(v) {
	case validate.KindNull:
		return &jsonschema.Schema{Type: "null"}
	case validate.KindBoolean:
		return &jsonschema.Schema{Type: "boolean"}
	case validate.KindInteger:
		return &jsonschema.Schema{Type: "integer"}
	case validate.KindFloat:
		// 1.0 stays a number: the validator would reject it as an integer.
		return &jsonschema.Schema{Type: "number"}
	case validate.KindString:
		return &jsonschema.Schema{Type: "string"}
	default:
		return &jsonschema.Schema{}
	}
}

func draftArray(arr []any) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "array"}
	if len(arr) == 0 {
		return s
	}
	items := make([]*jsonschema.Schema, 0, len(arr))
	for _, item := range arr {
		items = append(items, draftFromValue(item))
	}
	s.Items = mergeDrafts(items)
	return s
}

func draftObject(obj map[string]any) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	for _, k := range sortedKeys(obj) {
		s.Properties.Set(k, draftFromValue(obj[k]))
	}
	return s
}

// mergeDrafts unions drafts. Same-typed drafts merge structurally; differing
// types become an anyOf list with the composite members first.
func mergeDrafts(drafts []*jsonschema.Schema) *jsonschema.Schema {
	switch len(drafts) {
	case 0:
		return &jsonschema.Schema{}
	case 1:
		return drafts[0]
	}

	types := make(map[string]bool)
	var objects, arrays []*jsonschema.Schema
	for _, d := range drafts {
		switch d.Type {
		case "":
			continue
		case "object":
			objects = append(objects, d)
		case "array":
			arrays = append(arrays, d)
		}
		types[d.Type] = true
	}

	// Every integer is a number.
	if types["integer"] && types["number"] {
		delete(types, "integer")
	}

	if len(types) == 0 {
		return &jsonschema.Schema{}
	}
	if len(types) == 1 {
		for t := range types {
			switch t {
			case "object":
				return mergeObjects(objects)
			case "array":
				return mergeArrays(arrays)
			default:
				return &jsonschema.Schema{Type: t}
			}
		}
	}

	anyOf := make([]*jsonschema.Schema, 0, len(types))
	if len(objects) > 0 {
		anyOf = append(anyOf, mergeObjects(objects))
	}
	if len(arrays) > 0 {
		anyOf = append(anyOf, mergeArrays(arrays))
	}
	for _, t := range sortedKeys(types) {
		if t != "object" && t != "array" {
			anyOf = append(anyOf, &jsonschema.Schema{Type: t})
		}
	}
	return &jsonschema.Schema{AnyOf: anyOf}
}

func mergeObjects(objects []*jsonschema.Schema) *jsonschema.Schema {
	if len(objects) == 1 {
		return objects[0]
	}

	byName := make(map[string][]*jsonschema.Schema)
	for _, o := range objects {
		if o.Properties == nil {
			continue
		}
		for pair := o.Properties.Oldest(); pair != nil; pair = pair.Next() {
			byName[pair.Key] = append(byName[pair.Key], pair.Value)
		}
	}

	merged := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	for _, k := range sortedKeys(byName) {
		merged.Properties.Set(k, mergeDrafts(byName[k]))
	}
	return merged
}

func mergeArrays(arrays []*jsonschema.Schema) *jsonschema.Schema {
	if len(arrays) == 1 {
		return arrays[0]
	}

	var items []*jsonschema.Schema
	for _, a := range arrays {
		if a.Items != nil {
			items = append(items, a.Items)
		}
	}
	merged := &jsonschema.Schema{Type: "array"}
	if len(items) > 0 {
		merged.Items = mergeDrafts(items)
	}
	return merged
}

// markRequired lists, on every object draft, the properties present in all of
// the objects it was inferred from. samples must not contain nil.
func markRequired(d *jsonschema.Schema, samples []any, nullableOptional bool) {
	d = nonNullDraft(d)
	if d == nil || len(samples) == 0 {
		return
	}

	switch d.Type {
	case "array":
		if d.Items == nil {
			return
		}
		var items []any
		for _, s := range samples {
			arr, ok := s.([]any)
			if !ok {
				continue
			}
			items = append(items, nonNullValues(arr)...)
		}
		markRequired(d.Items, items, nullableOptional)

	case "object":
		if d.Properties == nil {
			return
		}
		var objects []map[string]any
		for _, s := range samples {
			if obj, ok := s.(map[string]any); ok {
				objects = append(objects, obj)
			}
		}

		var required []string
		for pair := d.Properties.Oldest(); pair != nil; pair = pair.Next() {
			present, null := 0, false
			var nested []any
			for _, obj := range objects {
				v, ok := obj[pair.Key]
				if !ok {
					continue
				}
				present++
				if v == nil {
					null = true
					continue
				}
				nested = append(nested, v)
			}
			if present == len(objects) && !(nullableOptional && null) {
				required = append(required, pair.Key)
			}
			markRequired(pair.Value, nested, nullableOptional)
		}
		sort.Strings(required)
		if len(required) > 0 {
			d.Required = required
		}
	}
}

// nonNullDraft returns d without its null alternative, or nil when what
// remains is not a single draft.
func nonNullDraft(d *jsonschema.Schema) *jsonschema.Schema {
	if d == nil || d.Type != "" {
		return d
	}
	var found *jsonschema.Schema
	for _, alt := range d.AnyOf {
		if alt.Type == "null" {
			continue
		}
		if found != nil {
			return nil
		}
		found = alt
	}
	return found
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
