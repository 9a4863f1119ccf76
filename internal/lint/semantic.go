package lint

import (
	"fmt"
	"slices"
	"strings"

	"github.com/usestring/ghspec/pkg/apispec"
	"github.com/usestring/ghspec/pkg/validate"
)

// semantic reports constructs that are well-formed but that the matcher
// ignores or can never satisfy.
func semantic(doc *apispec.Document) []Issue {
	var issues []Issue

	for _, kind := range apispec.APIKinds {
		eps := doc.Endpoints(kind)
		if eps == nil {
			continue
		}
		for pair := eps.Oldest(); pair != nil; pair = pair.Next() {
			base := []string{"github", string(kind), pair.Key}
			s := pair.Value.ResponseSchema()
			if s.IsZero() {
				issues = append(issues, Issue{
					Path:     pointer(base...),
					Message:  "endpoint has no response schema; lookups report it as not found",
					Severity: SeverityWarning,
				})
				continue
			}
			issues = checkRoot(issues, s, extend(base, "response", "schema"))
		}
	}

	if cmds := doc.Commands(); cmds != nil {
		for pair := cmds.Oldest(); pair != nil; pair = pair.Next() {
			base := []string{"gh_cli", "commands", pair.Key}
			cmd := pair.Value
			if cmd == nil || cmd.Output.IsZero() {
				issues = append(issues, Issue{
					Path:     pointer(base...),
					Message:  "command has no output schema; lookups report it as not found",
					Severity: SeverityWarning,
				})
				continue
			}
			if cmd.Command == "" {
				issues = append(issues, Issue{
					Path:     pointer(base...),
					Message:  "command text is empty; only the entry name can match",
					Severity: SeverityWarning,
				})
			}
			issues = checkRoot(issues, cmd.Output, extend(base, "output"))
		}
	}
	return issues
}

func checkRoot(issues []Issue, s *apispec.Schema, path []string) []Issue {
	if s.Required {
		issues = append(issues, Issue{
			Path:     pointer(extend(path, "required")...),
			Message:  "required has no effect on a root schema",
			Severity: SeverityWarning,
		})
	}
	return checkNode(issues, s, path)
}

func checkNode(issues []Issue, s *apispec.Schema, path []string) []Issue {
	if s == nil {
		return issues
	}

	if s.Items != nil && s.Type != apispec.TypeArray {
		issues = append(issues, Issue{
			Path:     pointer(extend(path, "items")...),
			Message:  fmt.Sprintf("items is ignored unless type is %q", apispec.TypeArray),
			Severity: SeverityWarning,
		})
	}
	if s.Properties != nil && s.Type != apispec.TypeObject {
		issues = append(issues, Issue{
			Path:     pointer(extend(path, "properties")...),
			Message:  fmt.Sprintf("properties is ignored unless type is %q", apispec.TypeObject),
			Severity: SeverityWarning,
		})
	}

	if s.HasType() {
		typeOnly := &apispec.Schema{Type: s.Type}
		for i, lit := range s.Enum {
			if ok, msg := validate.ValidateType(lit, typeOnly); !ok {
				issues = append(issues, Issue{
					Path:     pointer(extend(path, "enum", fmt.Sprint(i))...),
					Message:  "enum value can never match: " + msg,
					Severity: SeverityError,
				})
			}
		}
	}

	if s.Items != nil {
		issues = checkNode(issues, s.Items, extend(path, "items"))
	}
	if s.Properties != nil {
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			issues = checkNode(issues, pair.Value, extend(path, "properties", pair.Key))
		}
	}
	return issues
}

// extend returns path with tokens appended, never sharing path's backing array.
func extend(path []string, tokens ...string) []string {
	return append(slices.Clip(path), tokens...)
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// pointer builds a JSON pointer from unescaped reference tokens.
func pointer(tokens ...string) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(t))
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}
