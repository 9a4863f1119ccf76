package infer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/ghspec/pkg/apispec"
	"github.com/usestring/ghspec/pkg/validate"
)

func samples(docs ...string) [][]byte {
	out := make([][]byte, 0, len(docs))
	for _, d := range docs {
		out = append(out, []byte(d))
	}
	return out
}

func prop(t *testing.T, s *apispec.Schema, name string) *apispec.Schema {
	t.Helper()
	p, ok := s.Property(name)
	require.True(t, ok, "missing property %q", name)
	return p
}

func TestInfer_PrimitiveTypes(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		wantType string
		nullable bool
	}{
		{"string", `"hello"`, apispec.TypeString, false},
		{"integer", `42`, apispec.TypeInteger, false},
		{"float", `3.14`, apispec.TypeNumber, false},
		{"whole float", `1.0`, apispec.TypeNumber, false},
		{"exponent", `1e3`, apispec.TypeNumber, false},
		{"boolean", `true`, apispec.TypeBoolean, false},
		{"null", `null`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Infer([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, res.Schema.Type)
			assert.Equal(t, tt.nullable, res.Schema.Nullable)
			assert.Equal(t, 1, res.SampleCount)
		})
	}
}

func TestInfer_Object(t *testing.T) {
	res, err := Infer([]byte(`{"name": "Alice", "age": 30, "active": true, "bio": null}`))
	require.NoError(t, err)

	s := res.Schema
	assert.Equal(t, apispec.TypeObject, s.Type)
	assert.Equal(t, apispec.TypeString, prop(t, s, "name").Type)
	assert.Equal(t, apispec.TypeInteger, prop(t, s, "age").Type)
	assert.Equal(t, apispec.TypeBoolean, prop(t, s, "active").Type)

	// A single sample makes every present field required.
	assert.True(t, prop(t, s, "name").Required)
	assert.True(t, prop(t, s, "bio").Required)
	assert.True(t, prop(t, s, "bio").Nullable)

	assert.Equal(t, []string{"active", "age", "bio", "name"}, res.Draft.Required)
}

func TestInfer_MergeSamples(t *testing.T) {
	res, err := Infer(samples(
		`{"id": 1, "name": "a", "topics": ["x"]}`,
		`{"id": 2, "name": null}`,
		`{"id": 3.5, "name": "c", "extra": true}`,
	)...)
	require.NoError(t, err)

	s := res.Schema
	assert.False(t, res.AllMatch)
	assert.Equal(t, 3, res.SampleCount)

	id := prop(t, s, "id")
	assert.Equal(t, apispec.TypeNumber, id.Type, "integer and number widen to number")
	assert.True(t, id.Required)

	name := prop(t, s, "name")
	assert.Equal(t, apispec.TypeString, name.Type)
	assert.True(t, name.Nullable)
	assert.True(t, name.Required)

	assert.False(t, prop(t, s, "topics").Required)
	assert.False(t, prop(t, s, "extra").Required)
	assert.Equal(t, apispec.TypeString, prop(t, s, "topics").Items.Type)
}

func TestInfer_NullableOptional(t *testing.T) {
	opts := DefaultOptions()
	opts.NullableOptional = true

	res, err := InferWithOptions(opts, samples(`{"a": 1, "b": null}`, `{"a": 2, "b": "x"}`)...)
	require.NoError(t, err)

	assert.True(t, prop(t, res.Schema, "a").Required)
	b := prop(t, res.Schema, "b")
	assert.False(t, b.Required)
	assert.True(t, b.Nullable)
}

func TestInfer_NoStrictRequired(t *testing.T) {
	res, err := InferWithOptions(&Options{}, []byte(`{"a": 1}`))
	require.NoError(t, err)
	assert.False(t, prop(t, res.Schema, "a").Required)
}

func TestInfer_ArrayOfObjects(t *testing.T) {
	res, err := Infer([]byte(`[
		{"name": "cli", "description": null, "repositoryTopics": [{"name": "go"}]},
		{"name": "api", "description": "REST", "repositoryTopics": []}
	]`))
	require.NoError(t, err)

	s := res.Schema
	require.Equal(t, apispec.TypeArray, s.Type)
	require.NotNil(t, s.Items)
	item := s.Items
	assert.Equal(t, apispec.TypeObject, item.Type)
	assert.True(t, prop(t, item, "name").Required)
	assert.True(t, prop(t, item, "description").Nullable)

	topics := prop(t, item, "repositoryTopics")
	require.NotNil(t, topics.Items)
	assert.True(t, prop(t, topics.Items, "name").Required)
}

func TestInfer_MixedTypesLeaveTypeOpen(t *testing.T) {
	res, err := Infer(samples(`{"v": "a"}`, `{"v": true}`, `{"v": null}`)...)
	require.NoError(t, err)

	v := prop(t, res.Schema, "v")
	assert.Empty(t, v.Type)
	assert.True(t, v.Nullable)
	assert.Equal(t, "one of: boolean, string", v.Description)
}

func TestInfer_ValidatesItsSamples(t *testing.T) {
	docs := samples(
		`{"login": "octocat", "id": 1, "score": 1.5, "plan": {"name": "pro"}, "labels": [{"name": "bug"}]}`,
		`{"login": "hubot", "id": 2, "score": 2, "plan": null, "labels": []}`,
	)
	res, err := Infer(docs...)
	require.NoError(t, err)

	for _, d := range docs {
		v, err := validate.DecodeBytes(d)
		require.NoError(t, err)
		ok, msg := validate.ValidateType(v, res.Schema)
		assert.True(t, ok, msg)
	}
}

func TestInfer_DetectEnums(t *testing.T) {
	opts := DefaultOptions()
	opts.DetectEnums = true

	res, err := InferWithOptions(opts, []byte(`[
		{"state": "OPEN", "id": "a"}, {"state": "CLOSED", "id": "b"},
		{"state": "OPEN", "id": "c"}, {"state": "MERGED", "id": "d"},
		{"state": "OPEN", "id": "e"}, {"state": null, "id": "f"}
	]`))
	require.NoError(t, err)

	state := prop(t, res.Schema.Items, "state")
	assert.Equal(t, []any{"CLOSED", "MERGED", "OPEN"}, state.Enum)
	assert.Nil(t, res.Fields, "field stats are opt-in")
}

func TestInfer_MaxSamples(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxSamples = 1

	res, err := InferWithOptions(opts, samples(`{"a": 1}`, `{"b": 2}`)...)
	require.NoError(t, err)
	assert.Equal(t, 1, res.SampleCount)
	_, ok := res.Schema.Property("b")
	assert.False(t, ok)
}

func TestInfer_AllMatch(t *testing.T) {
	res, err := Infer(samples(`{"a": 1}`, `{"a": 2}`)...)
	require.NoError(t, err)
	assert.True(t, res.AllMatch)
}

func TestInfer_Errors(t *testing.T) {
	_, err := Infer()
	assert.ErrorIs(t, err, ErrNoSamples)

	_, err = Infer([]byte(`{"a": 1}`), []byte(`{bad`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample 2")
}

func TestInfer_SchemaMarshalsAsDialect(t *testing.T) {
	res, err := Infer([]byte(`{"b": [1], "a": "x"}`))
	require.NoError(t, err)

	out, err := json.Marshal(res.Schema)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"a": {"type": "string", "required": true},
			"b": {"type": "array", "required": true, "items": {"type": "integer"}}
		}
	}`, string(out))
}
