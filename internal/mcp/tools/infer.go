package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/ghspec/pkg/infer"
	"github.com/usestring/ghspec/pkg/types"
)

// InferSchemaInput is the input for infer_schema.
type InferSchemaInput struct {
	Samples          []any    `json:"samples,omitempty" jsonschema:"Decoded sample outputs of one endpoint or command"`
	SamplesJSON      []string `json:"samples_json,omitempty" jsonschema:"Samples as JSON text. Used instead of samples when set"`
	DetectEnums      bool     `json:"detect_enums,omitempty" jsonschema:"Turn low-cardinality string fields into enums (needs 5+ samples of a field)"`
	FieldStats       bool     `json:"field_stats,omitempty" jsonschema:"Include per-field frequency, nullability and format statistics"`
	NullableOptional bool     `json:"nullable_optional,omitempty" jsonschema:"Do not mark fields that are ever null as required"`
}

// InferSchemaOutput is the output for infer_schema.
type InferSchemaOutput struct {
	Schema  any                `json:"schema"`
	Summary types.InferSummary `json:"summary"`
	Fields  []infer.FieldStat  `json:"fields,omitzero"`
}

// ToolInferSchema derives a spec-dialect schema node from samples.
func ToolInferSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, InferSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, InferSchemaOutput, error) {
		var values []any
		if len(input.SamplesJSON) > 0 {
			for i, text := range input.SamplesJSON {
				v, err := decodeArgument("samples", nil, text)
				if err != nil {
					return nil, InferSchemaOutput{}, ErrInvalidInput(fmt.Sprintf("sample %d: %v", i+1, err))
				}
				values = append(values, v)
			}
		} else {
			for i, s := range input.Samples {
				v, err := decodeArgument("samples", s, "")
				if err != nil {
					return nil, InferSchemaOutput{}, ErrInvalidInput(fmt.Sprintf("sample %d: %v", i+1, err))
				}
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			return nil, InferSchemaOutput{}, ErrInvalidInput("at least one sample is required")
		}

		opts := infer.DefaultOptions()
		opts.DetectEnums = input.DetectEnums
		opts.FieldStats = input.FieldStats
		opts.NullableOptional = input.NullableOptional
		opts.MaxSamples = d.Config.InferMaxSamples

		res, err := infer.InferValues(opts, values...)
		if err != nil {
			return nil, InferSchemaOutput{}, ErrInvalidInput(err.Error())
		}

		schema, err := types.ToAny(res.Schema)
		if err != nil {
			return nil, InferSchemaOutput{}, err
		}
		out := InferSchemaOutput{
			Schema: schema,
			Summary: types.InferSummary{
				SamplesRequested: len(values),
				SamplesUsed:      res.SampleCount,
				AllMatch:         res.AllMatch,
			},
			Fields: res.Fields,
		}

		// Text content carries the schema with property order intact.
		result, err := MakeJSONToolResult(struct {
			Schema  any                `json:"schema"`
			Summary types.InferSummary `json:"summary"`
			Fields  []infer.FieldStat  `json:"fields,omitempty"`
		}{res.Schema, out.Summary, res.Fields})
		if err != nil {
			return nil, InferSchemaOutput{}, err
		}
		return result, out, nil
	}
}
