package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking its output type with
// CheckOutputSchema, so a bad output type fails at startup instead of on the
// first call.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

// CheckOutputSchema panics when the zero value of T does not satisfy the JSON
// schema the SDK infers for T.
//
// The usual culprit is a slice field without omitzero: it marshals as null
// while the inferred schema says array. The check also rejects
// json.RawMessage fields, which the schema generator sees as an array of
// bytes. Schema values such as validation errors and inferred nodes should be
// carried as any.
//
// The untyped any output is skipped, as are types the SDK cannot infer a
// schema for; the SDK reports those itself.
func CheckOutputSchema[T any](toolName string) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if paths := rawMessagePaths(rt, nil, map[reflect.Type]bool{}); len(paths) > 0 {
		panic(fmt.Sprintf(
			"tool %q: output type %s has json.RawMessage at %s; use any and convert with types.ToAny",
			toolName, rt, strings.Join(paths, ", "),
		))
	}

	schema, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return
	}

	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return
	}

	if err := resolved.Validate(&v); err != nil {
		panic(fmt.Sprintf(
			"tool %q: zero value of output type %s fails its schema: %v\n  JSON: %s\n  add omitzero to slice fields or initialize them",
			toolName, rt, err, data,
		))
	}
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// rawMessagePaths lists the field paths of t that hold a json.RawMessage.
func rawMessagePaths(t reflect.Type, path []string, seen map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == rawMessageType {
		return []string{strings.Join(path, ".")}
	}
	if seen[t] {
		return nil
	}
	seen[t] = true
	defer delete(seen, t)

	var found []string
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			found = append(found, rawMessagePaths(f.Type, extendPath(path, f.Name), seen)...)
		}
	case reflect.Slice, reflect.Array:
		found = append(found, rawMessagePaths(t.Elem(), extendPath(path, "[]"), seen)...)
	case reflect.Map:
		found = append(found, rawMessagePaths(t.Elem(), extendPath(path, "[value]"), seen)...)
	}
	return found
}

func extendPath(path []string, elem string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, elem)
}
