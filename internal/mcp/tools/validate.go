package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/ghspec/internal/batch"
	"github.com/usestring/ghspec/internal/query"
	"github.com/usestring/ghspec/pkg/types"
)

// ValidateAPIResponseInput is the input for validate_api_response.
type ValidateAPIResponseInput struct {
	Endpoint     string `json:"endpoint" jsonschema:"Entry name (e.g. get_user) or declared endpoint (e.g. /user) to validate against"`
	Response     any    `json:"response,omitempty" jsonschema:"The decoded API response"`
	ResponseJSON string `json:"response_json,omitempty" jsonschema:"The API response as JSON text. Takes precedence over response and keeps 1.0 distinct from 1"`
	Query        string `json:"query,omitempty" jsonschema:"Optional jq expression selecting the part of the response to validate"`
}

// ValidateCLIOutputInput is the input for validate_cli_output.
type ValidateCLIOutputInput struct {
	Command    string `json:"command" jsonschema:"Command entry name (e.g. repo_list) or a fragment of the command line (e.g. gh repo list)"`
	Output     any    `json:"output,omitempty" jsonschema:"The decoded gh --json output"`
	OutputJSON string `json:"output_json,omitempty" jsonschema:"The command output as JSON text. Takes precedence over output"`
	Query      string `json:"query,omitempty" jsonschema:"Optional jq expression selecting the part of the output to validate"`
}

// ValidateOutput is the output for validate_api_response and validate_cli_output.
type ValidateOutput struct {
	Target string   `json:"target"`
	ID     string   `json:"id"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitzero"`
}

// ToolValidateAPIResponse validates a REST or GraphQL response.
func ToolValidateAPIResponse(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateAPIResponseInput) (*sdkmcp.CallToolResult, ValidateOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateAPIResponseInput) (*sdkmcp.CallToolResult, ValidateOutput, error) {
		if input.Endpoint == "" {
			return nil, ValidateOutput{}, ErrInvalidInput("endpoint is required")
		}
		value, err := d.selectValue(ctx, "response", input.Response, input.ResponseJSON, input.Query)
		if err != nil {
			return nil, ValidateOutput{}, err
		}

		errs, err := d.Validator.ValidateAPIResponse(value, input.Endpoint)
		if err != nil {
			return nil, ValidateOutput{}, WrapSpecError(err)
		}
		return nil, newValidateOutput(types.TargetEndpoint, input.Endpoint, errs), nil
	}
}

// ToolValidateCLIOutput validates the JSON output of a gh command.
func ToolValidateCLIOutput(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateCLIOutputInput) (*sdkmcp.CallToolResult, ValidateOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateCLIOutputInput) (*sdkmcp.CallToolResult, ValidateOutput, error) {
		if input.Command == "" {
			return nil, ValidateOutput{}, ErrInvalidInput("command is required")
		}
		value, err := d.selectValue(ctx, "output", input.Output, input.OutputJSON, input.Query)
		if err != nil {
			return nil, ValidateOutput{}, err
		}

		errs, err := d.Validator.ValidateCLIOutput(value, input.Command)
		if err != nil {
			return nil, ValidateOutput{}, WrapSpecError(err)
		}
		return nil, newValidateOutput(types.TargetCommand, input.Command, errs), nil
	}
}

func (d *Deps) selectValue(ctx context.Context, name string, value any, text, expr string) (any, error) {
	v, err := decodeArgument(name, value, text)
	if err != nil {
		return nil, err
	}
	if expr == "" {
		return v, nil
	}
	v, err = d.Query.Select(ctx, v, expr)
	if err != nil {
		if errors.Is(err, query.ErrNoResult) {
			return nil, ErrInvalidInput(fmt.Sprintf("query %q selected nothing", expr))
		}
		return nil, ErrInvalidInput(err.Error())
	}
	return v, nil
}

func newValidateOutput(target, id string, errs []string) ValidateOutput {
	slog.Debug("validated value",
		slog.String("target", target),
		slog.String("id", id),
		slog.Int("errors", len(errs)),
	)
	return ValidateOutput{
		Target: target,
		ID:     id,
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// ValidateFilesInput is the input for validate_files.
type ValidateFilesInput struct {
	Target string   `json:"target" jsonschema:"What to validate against: endpoint or command"`
	ID     string   `json:"id" jsonschema:"Endpoint or command identifier"`
	Paths  []string `json:"paths" jsonschema:"JSON files to validate"`
	Query  string   `json:"query,omitempty" jsonschema:"Optional jq expression applied to every file first"`
}

// ValidateFilesOutput is the output for validate_files.
type ValidateFilesOutput struct {
	Reports []*types.ValidationReport `json:"reports,omitzero"`
	Summary types.BatchSummary        `json:"summary"`
}

// ToolValidateFiles validates several files on disk against one entry.
func ToolValidateFiles(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateFilesInput) (*sdkmcp.CallToolResult, ValidateFilesOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateFilesInput) (*sdkmcp.CallToolResult, ValidateFilesOutput, error) {
		target := strings.ToLower(input.Target)
		if target != types.TargetEndpoint && target != types.TargetCommand {
			return nil, ValidateFilesOutput{}, ErrInvalidInput("target must be endpoint or command")
		}
		if input.ID == "" {
			return nil, ValidateFilesOutput{}, ErrInvalidInput("id is required")
		}
		if len(input.Paths) == 0 {
			return nil, ValidateFilesOutput{}, ErrInvalidInput("at least one path is required")
		}

		inputs := make([]batch.Input, len(input.Paths))
		for i, p := range input.Paths {
			inputs[i] = batch.Input{Source: p}
		}
		reports, summary, err := d.Batch.Run(ctx, batch.Request{Target: target, ID: input.ID, Query: input.Query}, inputs)
		if err != nil {
			return nil, ValidateFilesOutput{}, ErrInvalidInput(err.Error())
		}
		return nil, ValidateFilesOutput{Reports: reports, Summary: summary}, nil
	}
}
