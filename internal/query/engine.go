// Package query selects the part of a decoded document to validate using jq
// expressions.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/usestring/ghspec/internal/cache"
)

// ErrNoResult is returned when an expression produces no output.
var ErrNoResult = errors.New("jq expression produced no result")

// Engine executes jq expressions against decoded JSON values.
type Engine struct {
	cache *cache.QueryCache
}

// NewEngine creates a query engine. A nil cache compiles every expression anew.
func NewEngine(c *cache.QueryCache) *Engine {
	return &Engine{cache: c}
}

// Compile parses and compiles expression, consulting the cache first.
func (e *Engine) Compile(expression string) (*gojq.Code, error) {
	if e.cache != nil {
		if code, ok := e.cache.Get(expression); ok {
			return code, nil
		}
	}

	q, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	if e.cache != nil {
		e.cache.Put(expression, code)
	}
	return code, nil
}

// Select runs expression against input and returns its result. An empty
// expression returns input unchanged. When the expression yields several
// values they are returned as an array, in output order.
//
// Numbers cross the jq boundary as json.Number on both sides, so integers and
// floats keep their kind.
func (e *Engine) Select(ctx context.Context, input any, expression string) (any, error) {
	if strings.TrimSpace(expression) == "" {
		return input, nil
	}

	code, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}

	var results []any
	iter := code.RunWithContext(ctx, toJQ(input))
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, errors.New(formatJQError(err))
		}
		results = append(results, fromJQ(v))
	}

	switch len(results) {
	case 0:
		return nil, ErrNoResult
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

// ValidateExpression checks if a jq expression is valid without executing it.
func (e *Engine) ValidateExpression(expression string) error {
	_, err := e.Compile(expression)
	return err
}

// formatJQError adds hints for common runtime errors. gojq reports these as
// plain errors, so the hints are chosen by message text.
func formatJQError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return "query halted"
		}
		return fmt.Sprintf("query halted with: %v", haltErr.Value())
	}

	errStr := err.Error()
	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this document)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	}
	return "jq: " + errStr + hint
}

// toJQ converts json.Number values into the numeric types gojq operates on.
func toJQ(v any) any {
	switch val := v.(type) {
	case json.Number:
		s := string(val)
		if !strings.ContainsAny(s, ".eE") {
			if i, err := strconv.Atoi(s); err == nil {
				return i
			}
			if b, ok := new(big.Int).SetString(s, 10); ok {
				return b
			}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return s
		}
		return f
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = toJQ(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = toJQ(item)
		}
		return out
	default:
		return v
	}
}

// fromJQ converts gojq numbers back to json.Number. Floats always carry a
// fraction or exponent so they stay floats.
func fromJQ(v any) any {
	switch val := v.(type) {
	case int:
		return json.Number(strconv.Itoa(val))
	case *big.Int:
		return json.Number(val.String())
	case float64:
		if math.IsInf(val, 0) || math.IsNaN(val) {
			return val
		}
		s := strconv.FormatFloat(val, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return json.Number(s)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = fromJQ(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = fromJQ(item)
		}
		return out
	default:
		return v
	}
}
