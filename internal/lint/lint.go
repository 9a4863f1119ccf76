// Package lint checks a specification document for structural mistakes
// before it is used for validation.
package lint

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/ghspec/pkg/apispec"
)

//go:embed meta.json
var metaSchemaJSON []byte

const metaSchemaURL = "ghspec-meta.json"

// Severity grades an Issue.
type Severity string

// Issue severities. Errors make the document unusable or change how it is
// read; warnings flag keys the matcher ignores.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding, located by a JSON pointer into the document.
type Issue struct {
	Path     string   `json:"path"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Linter checks documents against the embedded meta-schema of the supported
// schema dialect.
type Linter struct {
	schema  *jsonschema.Schema
	printer *message.Printer
}

// New compiles the embedded meta-schema.
func New() (*Linter, error) {
	meta, err := jsonschema.UnmarshalJSON(bytes.NewReader(metaSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parsing meta-schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(metaSchemaURL, meta); err != nil {
		return nil, fmt.Errorf("adding meta-schema resource: %w", err)
	}
	compiled, err := compiler.Compile(metaSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling meta-schema: %w", err)
	}

	return &Linter{
		schema:  compiled,
		printer: message.NewPrinter(language.English),
	}, nil
}

// LintFile reads the document at path and lints it. A document that cannot
// be read or parsed is an error, not an Issue.
func (l *Linter) LintFile(path string) ([]Issue, error) {
	data, err := apispec.ReadJSON(path)
	if err != nil {
		return nil, err
	}
	return l.LintJSON(data)
}

// LintJSON lints a JSON document. Issues are sorted by path.
func (l *Linter) LintJSON(data []byte) ([]Issue, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing spec document: %w", err)
	}

	issues := l.structural(inst)

	// Semantic checks need the typed document; skip them when the structure is
	// too broken to decode.
	if doc, err := apispec.Parse(data, apispec.FormatJSON); err == nil {
		issues = append(issues, semantic(doc)...)
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Path < issues[j].Path
	})
	return issues, nil
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, is := range issues {
		if is.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (l *Linter) structural(inst any) []Issue {
	err := l.schema.Validate(inst)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []Issue{{Path: "/", Message: err.Error(), Severity: SeverityError}}
	}

	seen := make(map[string]bool)
	var issues []Issue
	l.collect(verr, seen, &issues)
	return issues
}

// collect gathers leaf errors, the ones naming a concrete failed keyword.
func (l *Linter) collect(err *jsonschema.ValidationError, seen map[string]bool, issues *[]Issue) {
	if err.ErrorKind != nil && len(err.Causes) == 0 {
		msg := err.ErrorKind.LocalizedString(l.printer)
		path := pointer(err.InstanceLocation...)
		if key := path + "\x00" + msg; !seen[key] {
			seen[key] = true
			*issues = append(*issues, Issue{Path: path, Message: msg, Severity: SeverityError})
		}
	}
	for _, cause := range err.Causes {
		l.collect(cause, seen, issues)
	}
}
