package lint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLinter(t *testing.T) *Linter {
	t.Helper()
	l, err := New()
	require.NoError(t, err)
	return l
}

func findIssue(issues []Issue, path string) (Issue, bool) {
	for _, is := range issues {
		if is.Path == path {
			return is, true
		}
	}
	return Issue{}, false
}

func TestLintFile_Fixture(t *testing.T) {
	l := newLinter(t)

	issues, err := l.LintFile(filepath.Join("testdata", "api-specs.json"))
	require.NoError(t, err)
	assert.False(t, HasErrors(issues), "issues: %+v", issues)

	is, ok := findIssue(issues, "/github/rest/rate_limit")
	require.True(t, ok)
	assert.Equal(t, SeverityWarning, is.Severity)
	assert.Contains(t, is.Message, "no response schema")

	is, ok = findIssue(issues, "/gh_cli/commands/auth_status")
	require.True(t, ok)
	assert.Contains(t, is.Message, "no output schema")
}

func TestLintJSON(t *testing.T) {
	l := newLinter(t)

	tests := []struct {
		name     string
		doc      string
		path     string
		severity Severity
		contains string
	}{
		{
			name:     "unknown type name",
			doc:      `{"gh_cli":{"commands":{"c":{"command":"gh c","output":{"type":"str"}}}}}`,
			path:     "/gh_cli/commands/c/output/type",
			severity: SeverityError,
		},
		{
			name:     "required given as a list",
			doc:      `{"github":{"rest":{"e":{"response":{"schema":{"type":"object","required":["a"]}}}}}}`,
			path:     "/github/rest/e/response/schema/required",
			severity: SeverityError,
		},
		{
			name:     "nested property node checked",
			doc:      `{"github":{"graphql":{"q":{"response":{"schema":{"type":"object","properties":{"a":{"nullable":"yes"}}}}}}}}`,
			path:     "/github/graphql/q/response/schema/properties/a/nullable",
			severity: SeverityError,
		},
		{
			name:     "enum literal of the wrong type",
			doc:      `{"gh_cli":{"commands":{"c":{"command":"gh c","output":{"type":"integer","enum":[1,"two"]}}}}}`,
			path:     "/gh_cli/commands/c/output/enum/1",
			severity: SeverityError,
			contains: "Expected integer, got string",
		},
		{
			name:     "items on a non-array node",
			doc:      `{"gh_cli":{"commands":{"c":{"command":"gh c","output":{"type":"object","items":{"type":"string"}}}}}}`,
			path:     "/gh_cli/commands/c/output/items",
			severity: SeverityWarning,
			contains: "items is ignored",
		},
		{
			name:     "properties on a non-object node",
			doc:      `{"gh_cli":{"commands":{"c":{"command":"gh c","output":{"type":"array","properties":{"a":{}}}}}}}`,
			path:     "/gh_cli/commands/c/output/properties",
			severity: SeverityWarning,
			contains: "properties is ignored",
		},
		{
			name:     "required on a root node",
			doc:      `{"gh_cli":{"commands":{"c":{"command":"gh c","output":{"type":"object","required":true}}}}}`,
			path:     "/gh_cli/commands/c/output/required",
			severity: SeverityWarning,
			contains: "root schema",
		},
		{
			name:     "empty command text",
			doc:      `{"gh_cli":{"commands":{"c":{"output":{"type":"object"}}}}}`,
			path:     "/gh_cli/commands/c",
			severity: SeverityWarning,
			contains: "command text is empty",
		},
		{
			name:     "pointer tokens escaped",
			doc:      `{"github":{"rest":{"repos/{owner}/{repo}":{}}}}`,
			path:     "/github/rest/repos~1{owner}~1{repo}",
			severity: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, err := l.LintJSON([]byte(tt.doc))
			require.NoError(t, err)

			is, ok := findIssue(issues, tt.path)
			require.True(t, ok, "no issue at %s in %+v", tt.path, issues)
			assert.Equal(t, tt.severity, is.Severity)
			if tt.contains != "" {
				assert.Contains(t, is.Message, tt.contains)
			}
		})
	}
}

func TestLintJSON_EmptyDocument(t *testing.T) {
	l := newLinter(t)

	issues, err := l.LintJSON([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestLintJSON_NotAnObject(t *testing.T) {
	l := newLinter(t)

	issues, err := l.LintJSON([]byte(`[1, 2]`))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "/", issues[0].Path)
	assert.True(t, HasErrors(issues))
}

func TestLintJSON_Malformed(t *testing.T) {
	l := newLinter(t)

	_, err := l.LintJSON([]byte(`{"github":`))
	assert.Error(t, err)
}

func TestLintFile_Errors(t *testing.T) {
	l := newLinter(t)

	_, err := l.LintFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = l.LintFile("spec.toml")
	assert.Error(t, err)
}

func TestIssuesSortedByPath(t *testing.T) {
	l := newLinter(t)

	doc := `{"gh_cli":{"commands":{
		"b":{"command":"gh b"},
		"a":{"command":"gh a"}
	}}}`
	issues, err := l.LintJSON([]byte(doc))
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "/gh_cli/commands/a", issues[0].Path)
	assert.Equal(t, "/gh_cli/commands/b", issues[1].Path)
}
