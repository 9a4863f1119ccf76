package validate

import (
	"fmt"

	"github.com/usestring/ghspec/pkg/apispec"
)

// APIResponse validates response against the schema registered for endpoint,
// which may be an entry name or its declared endpoint. An empty result means
// the response is valid. Native Go values are accepted and normalized first.
func APIResponse(doc *apispec.Document, response any, endpoint string) []string {
	schema, ok := apispec.FindEndpointSchema(doc, endpoint)
	if !ok {
		return []string{fmt.Sprintf("No schema found for endpoint: %s", endpoint)}
	}
	return check(Normalize(response), schema)
}

// CLIOutput validates output against the schema registered for command, which
// may be an entry name or a fragment of the declared command line.
func CLIOutput(doc *apispec.Document, output any, command string) []string {
	schema, ok := apispec.FindCommandSchema(doc, command)
	if !ok {
		return []string{fmt.Sprintf("No schema found for command: %s", command)}
	}
	return check(Normalize(output), schema)
}

func check(value any, schema *apispec.Schema) []string {
	if ok, msg := ValidateType(value, schema); !ok {
		return []string{msg}
	}
	return []string{}
}

// Validator validates against the specification document at Source. The
// document is read again on every call, so edits to the file take effect
// immediately and concurrent use needs no locking.
type Validator struct {
	Source string
}

// New returns a Validator reading from source, or from apispec.DefaultFile
// when source is empty.
func New(source string) *Validator {
	if source == "" {
		source = apispec.DefaultFile
	}
	return &Validator{Source: source}
}

// ValidateAPIResponse loads the document and validates response against the
// endpoint's schema. The error is non-nil only when the document cannot be
// loaded.
func (v *Validator) ValidateAPIResponse(response any, endpoint string) ([]string, error) {
	doc, err := apispec.Load(v.Source)
	if err != nil {
		return nil, err
	}
	return APIResponse(doc, response, endpoint), nil
}

// ValidateCLIOutput loads the document and validates output against the
// command's schema.
func (v *Validator) ValidateCLIOutput(output any, command string) ([]string, error) {
	doc, err := apispec.Load(v.Source)
	if err != nil {
		return nil, err
	}
	return CLIOutput(doc, output, command), nil
}
