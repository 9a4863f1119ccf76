package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/ghspec/pkg/apispec"
)

var fixture = filepath.Join("testdata", "api-specs.json")

const repoListSample = `[
	{
		"name": "test-repo",
		"description": "A test repository",
		"repositoryTopics": [{"name": "python"}, {"name": "testing"}]
	}
]`

func TestCLIOutput_EndToEnd(t *testing.T) {
	doc, err := apispec.Load(fixture)
	require.NoError(t, err)

	errs := CLIOutput(doc, mustValue(t, repoListSample), "repo_list")
	assert.Empty(t, errs)
	assert.NotNil(t, errs)
}

func TestCLIOutput_NativeGoValues(t *testing.T) {
	doc, err := apispec.Load(fixture)
	require.NoError(t, err)

	type topic struct {
		Name string `json:"name"`
	}
	output := []map[string]any{{
		"name":             "test-repo",
		"description":      nil,
		"repositoryTopics": []topic{{Name: "go"}},
	}}
	assert.Empty(t, CLIOutput(doc, output, "repo_list"))

	bad := []map[string]any{{"name": 5}}
	assert.Equal(t, []string{"Array item 0: Property 'name': Expected string, got integer"}, CLIOutput(doc, bad, "repo_list"))
}

func TestSchemaWithOnlyIgnoredKeysAcceptsAnything(t *testing.T) {
	doc, err := apispec.Parse([]byte(`{
		"github": {"rest": {"u": {"endpoint": "/u", "response": {"schema": {"format": "x"}}}}},
		"gh_cli": {"commands": {"c": {"command": "gh c", "output": {"required": false}}}}
	}`), apispec.FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, []string{}, APIResponse(doc, mustValue(t, `1`), "/u"))
	assert.Equal(t, []string{}, CLIOutput(doc, mustValue(t, `{"any": "thing"}`), "c"))
}

func TestCLIOutput_Failures(t *testing.T) {
	doc, err := apispec.Load(fixture)
	require.NoError(t, err)

	tests := []struct {
		name    string
		output  string
		command string
		want    []string
	}{
		{"missing name", `[{"description": "x"}]`, "repo_list", []string{"Array item 0: Missing required property: name"}},
		{"nullable description", `[{"name": "r", "description": null}]`, "repo_list", []string{}},
		{"topic type", `[{"name": "r", "repositoryTopics": [{"name": 1}]}]`, "repo_list", []string{"Array item 0: Property 'repositoryTopics': Array item 0: Property 'name': Expected string, got integer"}},
		{"enum", `[{"number": 1, "title": "t", "state": "DRAFT"}]`, "gh issue list", []string{`Array item 0: Property 'state': Value must be one of: ["OPEN","CLOSED"]`}},
		{"not an array", `{"name": "r"}`, "repo_list", []string{"Expected array, got object"}},
		{"unknown command", `[]`, "gh release list", []string{"No schema found for command: gh release list"}},
		{"command without output", `"Logged in"`, "auth_status", []string{"No schema found for command: auth_status"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CLIOutput(doc, mustValue(t, tt.output), tt.command))
		})
	}
}

func TestAPIResponse(t *testing.T) {
	doc, err := apispec.Load(fixture)
	require.NoError(t, err)

	tests := []struct {
		name     string
		response string
		endpoint string
		want     []string
	}{
		{"valid user", `{"login": "aygp-dr", "id": 12345, "public_repos": 73}`, "/user", []string{}},
		{"valid by name", `{"login": "octocat", "id": 1, "type": "User"}`, "get_user", []string{}},
		{"missing login", `{"id": 1}`, "/user", []string{"Missing required property: login"}},
		{"float id", `{"login": "x", "id": 1.5}`, "/user", []string{"Property 'id': Expected integer, got float"}},
		{"bad enum", `{"login": "x", "id": 1, "type": "Robot"}`, "/user", []string{`Property 'type': Value must be one of: ["User","Organization","Bot"]`}},
		{"repos", `[{"id": 1, "full_name": "a/b", "private": false, "stargazers_count": 2.5}]`, "/user/repos", []string{}},
		{"graphql", `{"data": {"viewer": {"login": "octocat"}}}`, "viewer", []string{}},
		{"graphql missing viewer", `{"data": {}}`, "viewer", []string{"Property 'data': Missing required property: viewer"}},
		{"lookup miss", `{}`, "/nonexistent", []string{"No schema found for endpoint: /nonexistent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, APIResponse(doc, mustValue(t, tt.response), tt.endpoint))
		})
	}
}

func TestValidator_LoadsPerCall(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api-specs.json")
	writeSpec := func(typ string) {
		doc := `{"github": {"rest": {"ping": {"endpoint": "/ping", "response": {"schema": {"type": "` + typ + `"}}}}}}`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	}

	v := New(path)

	writeSpec("string")
	errs, err := v.ValidateAPIResponse("pong", "/ping")
	require.NoError(t, err)
	assert.Empty(t, errs)

	writeSpec("integer")
	errs, err = v.ValidateAPIResponse("pong", "/ping")
	require.NoError(t, err)
	assert.Equal(t, []string{"Expected integer, got string"}, errs)
}

func TestValidator_LoadFailure(t *testing.T) {
	v := New(filepath.Join(t.TempDir(), "missing.json"))

	errs, err := v.ValidateAPIResponse(map[string]any{}, "/user")
	require.Error(t, err)
	assert.Nil(t, errs)

	_, err = v.ValidateCLIOutput([]any{}, "repo_list")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidator_CLIOutput(t *testing.T) {
	v := New(fixture)
	errs, err := v.ValidateCLIOutput(mustValue(t, repoListSample), "repo_list")
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestNew_DefaultSource(t *testing.T) {
	assert.Equal(t, apispec.DefaultFile, New("").Source)
}
