// Package infer derives spec-dialect schema nodes from sample outputs, so a
// new endpoint or command can be described from what it actually returns.
//
// Inference runs in two steps. Samples are first merged into a JSON Schema
// (Draft 2020-12) draft, where type unions are anyOf lists and required
// properties are listed on the parent. The draft is then folded into the
// spec dialect: a union with null becomes nullable, integer and number widen
// to number, and each required property carries its own required flag.
package infer

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/usestring/ghspec/pkg/apispec"
	"github.com/usestring/ghspec/pkg/validate"
)

// ErrNoSamples is returned when inference is asked to work from nothing.
var ErrNoSamples = errors.New("no samples to infer from")

// Result is an inferred schema with the data it came from.
type Result struct {
	Schema      *apispec.Schema    `json:"schema"`                // Spec-dialect node
	Draft       *jsonschema.Schema `json:"json_schema,omitempty"` // Intermediate JSON Schema (Draft 2020-12)
	SampleCount int                `json:"sample_count"`
	AllMatch    bool               `json:"all_match"` // Every sample produced the same draft
	Fields      []FieldStat        `json:"fields,omitempty"`
}

// Options controls inference.
type Options struct {
	// StrictRequired marks a property required when it is present in every
	// sample that has its parent object.
	StrictRequired bool
	// NullableOptional keeps properties that are ever null out of the
	// required set.
	NullableOptional bool
	// DetectEnums turns low-cardinality string fields into enums. It needs
	// several samples of a field before it applies.
	DetectEnums bool
	// FieldStats includes per-field statistics in the result.
	FieldStats bool
	// MaxSamples caps how many samples are used. Zero means no cap.
	MaxSamples int
}

// DefaultOptions returns the options used by Infer.
func DefaultOptions() *Options {
	return &Options{
		StrictRequired: true,
	}
}

// Infer derives a schema from one or more JSON samples.
func Infer(samples ...[]byte) (*Result, error) {
	return InferWithOptions(DefaultOptions(), samples...)
}

// InferWithOptions decodes samples and derives a schema from them. A sample
// that is not valid JSON fails the whole call.
func InferWithOptions(opts *Options, samples ...[]byte) (*Result, error) {
	values := make([]any, 0, len(samples))
	for i, data := range samples {
		v, err := validate.DecodeBytes(data)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i+1, err)
		}
		values = append(values, v)
	}
	return InferValues(opts, values...)
}

// InferValues derives a schema from already decoded values.
func InferValues(opts *Options, values ...any) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.MaxSamples > 0 && len(values) > opts.MaxSamples {
		values = values[:opts.MaxSamples]
	}
	if len(values) == 0 {
		return nil, ErrNoSamples
	}

	drafts := make([]*jsonschema.Schema, 0, len(values))
	for _, v := range values {
		drafts = append(drafts, draftFromValue(v))
	}

	allMatch := true
	if len(drafts) > 1 {
		first, _ := json.Marshal(drafts[0])
		for _, d := range drafts[1:] {
			other, _ := json.Marshal(d)
			if string(first) != string(other) {
				allMatch = false
				break
			}
		}
	}

	draft := mergeDrafts(drafts)
	if opts.StrictRequired {
		markRequired(draft, nonNullValues(values), opts.NullableOptional)
	}

	res := &Result{
		Schema:      toSpec(draft),
		Draft:       draft,
		SampleCount: len(values),
		AllMatch:    allMatch,
	}

	if opts.DetectEnums || opts.FieldStats {
		fields := ComputeFieldStats(draft, values)
		if opts.DetectEnums {
			applyEnums(res.Schema, fields)
		}
		if opts.FieldStats {
			res.Fields = fields
		}
	}
	return res, nil
}

func nonNullValues(values []any) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}
