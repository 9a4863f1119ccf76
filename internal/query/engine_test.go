package query

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/ghspec/internal/cache"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	c, err := cache.NewQueryCache(8)
	require.NoError(t, err)
	return NewEngine(c)
}

func TestSelect(t *testing.T) {
	input := `{"data": {"viewer": {"login": "octocat", "id": 7, "score": 1.5, "ratio": 2.0}}, "items": [1, 2, 3]}`

	tests := []struct {
		name string
		expr string
		want any
	}{
		{"empty expression is identity", "", decode(t, input)},
		{"field path", ".data.viewer.login", "octocat"},
		{"integer stays integer", ".data.viewer.id", json.Number("7")},
		{"float stays float", ".data.viewer.score", json.Number("1.5")},
		{"whole float stays float", ".data.viewer.ratio", json.Number("2.0")},
		{"object", ".data.viewer | {login}", map[string]any{"login": "octocat"}},
		{"multiple outputs become array", ".items[]", []any{json.Number("1"), json.Number("2"), json.Number("3")}},
		{"null result", ".missing", nil},
	}

	e := newEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Select(context.Background(), decode(t, input), tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelect_Errors(t *testing.T) {
	e := newEngine(t)
	input := decode(t, `{"items": null, "name": "x"}`)

	_, err := e.Select(context.Background(), input, ".items[")
	assert.ErrorContains(t, err, "invalid jq expression")

	_, err = e.Select(context.Background(), input, "empty")
	assert.ErrorIs(t, err, ErrNoResult)

	_, err = e.Select(context.Background(), input, ".items[]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "the path may not exist")

	_, err = e.Select(context.Background(), input, `error("boom")`)
	assert.Error(t, err)
}

func TestCompile_UsesCache(t *testing.T) {
	c, err := cache.NewQueryCache(4)
	require.NoError(t, err)
	e := NewEngine(c)

	first, err := e.Compile(".a")
	require.NoError(t, err)
	second, err := e.Compile(".a")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Len())
}

func TestCompile_NoCache(t *testing.T) {
	e := NewEngine(nil)
	assert.NoError(t, e.ValidateExpression(".a | length"))
	assert.Error(t, e.ValidateExpression("]["))
}

func TestNumberConversion(t *testing.T) {
	big := json.Number("123456789012345678901234567890")
	assert.Equal(t, big, fromJQ(toJQ(big)))
	assert.Equal(t, json.Number("1e+20"), fromJQ(toJQ(json.Number("1e20"))))
}
