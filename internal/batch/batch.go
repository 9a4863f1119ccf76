// Package batch validates many inputs against one endpoint or command
// concurrently.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/ghspec/internal/input"
	"github.com/usestring/ghspec/internal/query"
	"github.com/usestring/ghspec/pkg/types"
	"github.com/usestring/ghspec/pkg/validate"
)

// Input is one document to validate. When Data is nil the worker reads
// Source itself; stdin is read once per Run and shared by every "-" input.
type Input struct {
	Source string
	Data   []byte

	err error // stdin read failure, reported for this input
}

// Options configures a Runner.
type Options struct {
	Workers       int           // Concurrent validations, at least 1
	MaxInputBytes int           // Per-input size limit, 0 for none
	Engine        *query.Engine // Required when Request.Query is set
	Stdin         io.Reader     // Read for the "-" source
}

// Request names what every input is validated against.
type Request struct {
	Target string // types.TargetEndpoint or types.TargetCommand
	ID     string
	Query  string // Optional jq expression applied to each input first
}

// Runner validates inputs with a bounded worker pool. Each validation loads
// the document on its own.
type Runner struct {
	validator *validate.Validator
	opts      Options
}

// NewRunner creates a Runner over the given validator.
func NewRunner(v *validate.Validator, opts Options) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Runner{validator: v, opts: opts}
}

// Run validates every input and returns one report per input, in input
// order. A failure on one input is recorded in its report; Run itself fails
// only for a bad request or a cancelled context.
func (r *Runner) Run(ctx context.Context, req Request, inputs []Input) ([]*types.ValidationReport, types.BatchSummary, error) {
	var summary types.BatchSummary

	if req.Target != types.TargetEndpoint && req.Target != types.TargetCommand {
		return nil, summary, fmt.Errorf("unknown target %q", req.Target)
	}
	if req.Query != "" {
		if r.opts.Engine == nil {
			return nil, summary, fmt.Errorf("query %q given without a query engine", req.Query)
		}
		if err := r.opts.Engine.ValidateExpression(req.Query); err != nil {
			return nil, summary, err
		}
	}

	inputs = r.shareStdin(inputs)
	reports := make([]*types.ValidationReport, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = r.validateOne(ctx, req, in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, summary, err
	}

	for _, rep := range reports {
		summary.Add(rep)
	}
	slog.Debug("batch validated",
		slog.String("target", req.Target),
		slog.String("id", req.ID),
		slog.Int("total", summary.Total),
		slog.Int("invalid", summary.Invalid),
		slog.Int("failed", summary.Failed),
	)
	return reports, summary, nil
}

// shareStdin reads stdin up front when any input names it, so that workers
// never read the same stream concurrently.
func (r *Runner) shareStdin(inputs []Input) []Input {
	fromStdin := func(in Input) bool { return in.Source == input.Stdin && in.Data == nil }
	if !slices.ContainsFunc(inputs, fromStdin) {
		return inputs
	}

	data, err := input.Read(input.Stdin, r.opts.Stdin, r.opts.MaxInputBytes)
	out := slices.Clone(inputs)
	for i := range out {
		if fromStdin(out[i]) {
			out[i].Data, out[i].err = data, err
		}
	}
	return out
}

func (r *Runner) validateOne(ctx context.Context, req Request, in Input) *types.ValidationReport {
	rep := &types.ValidationReport{
		Target: req.Target,
		ID:     req.ID,
		Source: in.Source,
		Errors: []string{},
	}
	fail := func(err error) *types.ValidationReport {
		rep.Error = err.Error()
		slog.Debug("input not validated",
			slog.String("source", in.Source),
			slog.String("error", rep.Error),
		)
		return rep
	}

	if in.err != nil {
		return fail(in.err)
	}
	data := in.Data
	if data == nil {
		var err error
		if data, err = input.Read(in.Source, r.opts.Stdin, r.opts.MaxInputBytes); err != nil {
			return fail(err)
		}
	}

	value, err := validate.DecodeBytes(data)
	if err != nil {
		return fail(err)
	}
	if req.Query != "" {
		if value, err = r.opts.Engine.Select(ctx, value, req.Query); err != nil {
			return fail(err)
		}
	}

	var errs []string
	if req.Target == types.TargetEndpoint {
		errs, err = r.validator.ValidateAPIResponse(value, req.ID)
	} else {
		errs, err = r.validator.ValidateCLIOutput(value, req.ID)
	}
	if err != nil {
		return fail(err)
	}

	rep.Valid = len(errs) == 0
	rep.Errors = errs
	return rep
}
