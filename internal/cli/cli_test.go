package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const specPath = "testdata/api-specs.json"

// run executes the command line with args and returns stdout and the error.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--spec", specPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "valid file",
			args: []string{"validate", "command", "repo_list", "testdata/repos.json"},
			want: "✓ Valid response\n",
		},
		{
			name:    "invalid file",
			args:    []string{"validate", "command", "gh repo list", "testdata/repos-bad.json"},
			want:    "Validation errors:\n  - Array item 1: Missing required property: name\n",
			wantErr: true,
		},
		{
			name:  "stdin",
			stdin: `{"login": "octocat", "id": 1}`,
			args:  []string{"validate", "endpoint", "/user"},
			want:  "✓ Valid response\n",
		},
		{
			name:  "stdin named twice",
			stdin: `[{"number": 1, "title": "a"}]`,
			args:  []string{"validate", "command", "issue_list", "-", "-"},
			want:  "<stdin>:\n✓ Valid response\n\n<stdin>:\n✓ Valid response\n",
		},
		{
			name:  "jq selection",
			stdin: `{"data": {"viewer": {"login": "octocat"}}}`,
			args:  []string{"validate", "endpoint", "get_user", "--jq", ".data.viewer | .id = 3"},
			want:  "✓ Valid response\n",
		},
		{
			name:    "unknown endpoint",
			stdin:   `{}`,
			args:    []string{"validate", "endpoint", "/nope"},
			want:    "Validation errors:\n  - No schema found for endpoint: /nope\n",
			wantErr: true,
		},
		{
			name:    "not json",
			stdin:   `not json`,
			args:    []string{"validate", "endpoint", "/user"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.stdin, tt.args...)
			if tt.wantErr {
				assert.ErrorIs(t, err, errInvalid)
			} else {
				require.NoError(t, err)
			}
			if tt.want != "" {
				assert.Equal(t, tt.want, out)
			}
		})
	}
}

func TestValidateCommand_multipleFilesJSON(t *testing.T) {
	out, err := run(t, "", "--json", "validate", "command", "repo_list", "testdata/repos.json", "testdata/repos-bad.json")
	assert.ErrorIs(t, err, errInvalid)

	var got struct {
		Reports []struct {
			Source string   `json:"source"`
			Valid  bool     `json:"valid"`
			Errors []string `json:"errors"`
		} `json:"reports"`
		Summary struct {
			Total   int `json:"total"`
			Invalid int `json:"invalid"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Reports, 2)
	assert.Equal(t, "testdata/repos.json", got.Reports[0].Source)
	assert.True(t, got.Reports[0].Valid)
	assert.False(t, got.Reports[1].Valid)
	assert.Equal(t, 2, got.Summary.Total)
	assert.Equal(t, 1, got.Summary.Invalid)
}

func TestValidateCommand_badQuery(t *testing.T) {
	_, err := run(t, `{}`, "validate", "endpoint", "/user", "--jq", ".[")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errInvalid)
}

func TestDemoCommand(t *testing.T) {
	out, err := run(t, "", "demo")
	require.NoError(t, err)
	assert.Equal(t, "✓ Valid response\n\n✓ Valid GitHub API response\n", out)
}

func TestDemoCommand_missingDocument(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--spec", "testdata/absent.json", "demo"})
	err := root.Execute()
	require.Error(t, err)
	assert.NotErrorIs(t, err, errInvalid)
}

func TestFindCommand(t *testing.T) {
	out, err := run(t, "", "find", "endpoint", "/user")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "get_user (rest): /user\n"))
	// Properties keep document order.
	assert.Less(t, strings.Index(out, `"login"`), strings.Index(out, `"public_repos"`))

	out, err = run(t, "", "find", "endpoint", "rate_limit")
	assert.ErrorIs(t, err, errInvalid)
	assert.Equal(t, "rate_limit (rest) has no schema\n", out)

	out, err = run(t, "", "find", "command", "gh gist")
	assert.ErrorIs(t, err, errInvalid)
	assert.Equal(t, "No entry matches command: gh gist\n", out)
}

func TestSearchCommand(t *testing.T) {
	out, err := run(t, "", "search", "repo", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Contains(t, lines[0], "KIND")
	assert.Contains(t, lines[1], "repo_list")

	out, err = run(t, "", "search", "--kind", "graphql", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "viewer"`)

	out, err = run(t, "", "search", "zzzz")
	require.NoError(t, err)
	assert.Equal(t, "No entries matched\n", out)
}

func TestInferCommand(t *testing.T) {
	out, err := run(t, "", "infer", "testdata/repos.json")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "array", schema["type"])
	items := schema["items"].(map[string]any)
	props := items["properties"].(map[string]any)
	name := props["name"].(map[string]any)
	assert.Equal(t, "string", name["type"])
	assert.Equal(t, true, name["required"])
	assert.Equal(t, true, props["description"].(map[string]any)["nullable"])
}

func TestLintCommand(t *testing.T) {
	out, err := run(t, "", "lint")
	require.NoError(t, err)
	assert.Contains(t, out, "warning /github/rest/rate_limit")

	_, err = run(t, "", "lint", "--strict")
	assert.ErrorIs(t, err, errInvalid)

	_, err = run(t, "", "lint", "testdata/repos.json")
	assert.ErrorIs(t, err, errInvalid)
}
