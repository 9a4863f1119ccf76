package types

import "github.com/usestring/ghspec/pkg/apispec"

// Validation targets.
const (
	TargetEndpoint = "endpoint"
	TargetCommand  = "command"
)

// ValidationResult contains the result of validating a single value.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidationReport is the outcome of validating one input against one
// endpoint or command.
type ValidationReport struct {
	Target string   `json:"target"` // TargetEndpoint or TargetCommand
	ID     string   `json:"id"`
	Source string   `json:"source,omitempty"` // Input file, "-" for stdin
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
	// Error is set when the input could not be validated at all, for example
	// because it is not JSON or the document failed to load.
	Error string `json:"error,omitempty"`
}

// BatchSummary counts the outcomes of a batch of validations.
type BatchSummary struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
	Failed  int `json:"failed"`
}

// Add counts one report.
func (s *BatchSummary) Add(r *ValidationReport) {
	s.Total++
	switch {
	case r.Error != "":
		s.Failed++
	case r.Valid:
		s.Valid++
	default:
		s.Invalid++
	}
}

// FindResult is the outcome of resolving an identifier to a schema.
type FindResult struct {
	Target string          `json:"target"`
	ID     string          `json:"id"`
	Found  bool            `json:"found"`
	Match  *EntrySummary   `json:"match,omitempty"`
	Schema *apispec.Schema `json:"schema,omitempty"`
}

// InferSummary describes an inference run.
type InferSummary struct {
	SamplesRequested int  `json:"samples_requested"`
	SamplesUsed      int  `json:"samples_used"`
	AllMatch         bool `json:"all_match"`
}
