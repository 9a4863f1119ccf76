package validate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/ghspec/pkg/apispec"
)

func mustSchema(t *testing.T, src string) *apispec.Schema {
	t.Helper()
	var s apispec.Schema
	require.NoError(t, json.Unmarshal([]byte(src), &s))
	return &s
}

func mustValue(t *testing.T, src string) any {
	t.Helper()
	v, err := DecodeBytes([]byte(src))
	require.NoError(t, err)
	return v
}

func TestValidateType(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		schema  string
		wantOK  bool
		wantMsg string
	}{
		// Untyped nodes accept anything.
		{"untyped accepts object", `{"a": 1}`, `{}`, true, ""},
		{"untyped accepts null", `null`, `{"description": "anything"}`, true, ""},
		{"untyped ignores enum", `2`, `{"enum": [1]}`, true, ""},

		// Nullable short-circuits every other check.
		{"nullable null", `null`, `{"type": "integer", "nullable": true}`, true, ""},
		{"nullable null skips enum", `null`, `{"type": "string", "nullable": true, "enum": ["a"]}`, true, ""},
		{"nullable non-null still typed", `"x"`, `{"type": "integer", "nullable": true}`, false, "Expected integer, got string"},
		{"null not nullable", `null`, `{"type": "string"}`, false, "Expected string, got null"},

		// Scalar types.
		{"string", `"hi"`, `{"type": "string"}`, true, ""},
		{"integer", `42`, `{"type": "integer"}`, true, ""},
		{"negative integer", `-7`, `{"type": "integer"}`, true, ""},
		{"float for integer", `3.5`, `{"type": "integer"}`, false, "Expected integer, got float"},
		{"whole float for integer", `3.0`, `{"type": "integer"}`, false, "Expected integer, got float"},
		{"exponent for integer", `1e3`, `{"type": "integer"}`, false, "Expected integer, got float"},
		{"number accepts integer", `3`, `{"type": "number"}`, true, ""},
		{"number accepts float", `3.5`, `{"type": "number"}`, true, ""},
		{"boolean", `false`, `{"type": "boolean"}`, true, ""},
		{"boolean for integer", `true`, `{"type": "integer"}`, false, "Expected integer, got boolean"},
		{"boolean for number", `false`, `{"type": "number"}`, false, "Expected number, got boolean"},
		{"integer for boolean", `1`, `{"type": "boolean"}`, false, "Expected boolean, got integer"},
		{"string for number", `"3"`, `{"type": "number"}`, false, "Expected number, got string"},
		{"unknown type", `"2024-01-01"`, `{"type": "date"}`, false, "Unknown type: date"},
		{"empty type is declared", `"x"`, `{"type": ""}`, false, "Unknown type: "},
		{"null type is declared", `"x"`, `{"type": null}`, false, "Unknown type: null"},
		{"nullable null before unknown type", `null`, `{"type": null, "nullable": true}`, true, ""},

		// Arrays.
		{"bare array ignores contents", `[1, "x", null]`, `{"type": "array"}`, true, ""},
		{"object for array", `{}`, `{"type": "array"}`, false, "Expected array, got object"},
		{"array items", `[1, 2, 3]`, `{"type": "array", "items": {"type": "integer"}}`, true, ""},
		{"array item failure", `[1, "x", 3]`, `{"type": "array", "items": {"type": "integer"}}`, false, "Array item 1: Expected integer, got string"},
		{"first failing item wins", `["a", 2, 3.5]`, `{"type": "array", "items": {"type": "string"}}`, false, "Array item 1: Expected string, got integer"},
		{"empty array", `[]`, `{"type": "array", "items": {"type": "string"}}`, true, ""},

		// Objects.
		{"array for object", `[]`, `{"type": "object"}`, false, "Expected object, got array"},
		{"required missing", `{}`, `{"type": "object", "properties": {"name": {"type": "string", "required": true}}}`, false, "Missing required property: name"},
		{"optional missing", `{}`, `{"type": "object", "properties": {"name": {"type": "string"}}}`, true, ""},
		{"property mismatch", `{"name": 5}`, `{"type": "object", "properties": {"name": {"type": "string"}}}`, false, "Property 'name': Expected string, got integer"},
		{"undeclared keys ignored", `{"name": "x", "extra": [1]}`, `{"type": "object", "properties": {"name": {"type": "string"}}}`, true, ""},
		{"required nullable present as null", `{"name": null}`, `{"type": "object", "properties": {"name": {"type": "string", "required": true, "nullable": true}}}`, true, ""},
		{"required nullable absent", `{}`, `{"type": "object", "properties": {"name": {"type": "string", "required": true, "nullable": true}}}`, false, "Missing required property: name"},
		{"untyped required property absent", `{}`, `{"type": "object", "properties": {"meta": {"required": true}}}`, false, "Missing required property: meta"},
		{"declared order decides first error", `{"a": 1, "b": 2}`, `{"type": "object", "properties": {"b": {"type": "string"}, "a": {"type": "string"}}}`, false, "Property 'b': Expected string, got integer"},
		{"missing before later mismatch", `{"b": 1}`, `{"type": "object", "properties": {"a": {"type": "string", "required": true}, "b": {"type": "string"}}}`, false, "Missing required property: a"},

		// Nesting composes prefixes.
		{"nested prefixes", `[{"topics": [{"name": "go"}, {"name": 7}]}]`,
			`{"type": "array", "items": {"type": "object", "properties": {"topics": {"type": "array", "items": {"type": "object", "properties": {"name": {"type": "string"}}}}}}}`,
			false, "Array item 0: Property 'topics': Array item 1: Property 'name': Expected string, got integer"},

		// Enums.
		{"enum member", `"red"`, `{"type": "string", "enum": ["red", "blue"]}`, true, ""},
		{"enum violation", `"green"`, `{"type": "string", "enum": ["red", "blue"]}`, false, `Value must be one of: ["red","blue"]`},
		{"enum numeric equality", `2`, `{"type": "integer", "enum": [1, 2, 3]}`, true, ""},
		{"enum float equals integer literal", `2.0`, `{"type": "number", "enum": [1, 2]}`, true, ""},
		{"enum numeric violation", `4`, `{"type": "integer", "enum": [1, 2, 3]}`, false, "Value must be one of: [1,2,3]"},
		{"enum boolean is not numeric", `true`, `{"type": "boolean", "enum": [1]}`, false, "Value must be one of: [1]"},
		{"enum runs after type check", `5`, `{"type": "string", "enum": ["a"]}`, false, "Expected string, got integer"},
		{"enum on object", `{"k": [1]}`, `{"type": "object", "enum": [{"k": [1]}]}`, true, ""},
		{"empty enum rejects all", `"a"`, `{"type": "string", "enum": []}`, false, "Value must be one of: []"},
		{"enum after properties", `{"k": 2}`, `{"type": "object", "properties": {"k": {"type": "integer"}}, "enum": [{"k": 1}]}`, false, `Value must be one of: [{"k":1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := ValidateType(mustValue(t, tt.value), mustSchema(t, tt.schema))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestValidateType_NilSchema(t *testing.T) {
	ok, msg := ValidateType(map[string]any{"x": 1}, nil)
	assert.True(t, ok)
	assert.Empty(t, msg)
}

func TestValidateType_GoNativeValues(t *testing.T) {
	intSchema := &apispec.Schema{Type: apispec.TypeInteger}
	numSchema := &apispec.Schema{Type: apispec.TypeNumber}

	ok, _ := ValidateType(42, intSchema)
	assert.True(t, ok)
	ok, _ = ValidateType(uint8(7), intSchema)
	assert.True(t, ok)

	ok, msg := ValidateType(3.5, intSchema)
	assert.False(t, ok)
	assert.Equal(t, "Expected integer, got float", msg)

	ok, _ = ValidateType(float32(1.25), numSchema)
	assert.True(t, ok)

	ok, msg = ValidateType(true, numSchema)
	assert.False(t, ok)
	assert.Equal(t, "Expected number, got boolean", msg)

	ok, msg = ValidateType(struct{}{}, &apispec.Schema{Type: apispec.TypeObject})
	assert.False(t, ok)
	assert.Equal(t, "Expected object, got unknown", msg)
}

func TestValidateType_Idempotent(t *testing.T) {
	schema := mustSchema(t, `{"type": "array", "items": {"type": "object", "properties": {"id": {"type": "integer", "required": true}}}}`)
	value := mustValue(t, `[{"id": 1}, {"name": "no id"}]`)

	ok1, msg1 := ValidateType(value, schema)
	ok2, msg2 := ValidateType(value, schema)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, msg1, msg2)
	assert.Equal(t, "Array item 1: Missing required property: id", msg1)
}
