package infer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

// FieldStat describes one field across all samples.
type FieldStat struct {
	Path          string   `json:"path"`                  // Dotted path, "[]" marks array items: "labels[].name"
	Type          string   `json:"type"`                  // Draft type, "a|b" for unions
	Frequency     float64  `json:"frequency"`             // Share of parent objects that have the field
	Required      bool     `json:"required"`              // Present in every parent object and never null
	Nullable      bool     `json:"nullable"`              // Null at least once
	DistinctCount int      `json:"distinct_count"`        // Distinct non-null values
	Examples      []any    `json:"examples,omitempty"`    // Up to three scalar examples
	Format        string   `json:"format,omitempty"`      // One of the Format* constants
	EnumValues    []string `json:"enum_values,omitempty"` // Distinct values when Format is "enum"
}

// Detected string formats.
const (
	FormatUUID    = "uuid"
	FormatISO8601 = "iso8601"
	FormatURL     = "url"
	FormatEmail   = "email"
	FormatEnum    = "enum"
)

const (
	maxStatDepth          = 6
	maxExamples           = 3
	minSamplesForFormat   = 5
	maxEnumDistinctValues = 10
)

var formatPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{FormatUUID, regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)},
	{FormatISO8601, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2})?`)},
	{FormatURL, regexp.MustCompile(`^https?://`)},
	{FormatEmail, regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)},
}

// ComputeFieldStats walks the draft alongside the decoded samples and returns
// one row per object field, parents before children.
func ComputeFieldStats(draft *jsonschema.Schema, samples []any) []FieldStat {
	if draft == nil || len(samples) == 0 {
		return nil
	}
	var stats []FieldStat
	walkFields(draft, "", nonNullValues(samples), 0, &stats)
	return stats
}

func walkFields(d *jsonschema.Schema, path string, samples []any, depth int, stats *[]FieldStat) {
	d = nonNullDraft(d)
	if d == nil || len(samples) == 0 {
		return
	}
	if depth > maxStatDepth {
		*stats = append(*stats, FieldStat{Path: path + " (truncated)", Type: "..."})
		return
	}

	switch d.Type {
	case "array":
		if d.Items == nil {
			return
		}
		var items []any
		for _, s := range samples {
			if arr, ok := s.([]any); ok {
				items = append(items, nonNullValues(arr)...)
			}
		}
		walkFields(d.Items, path+"[]", items, depth+1, stats)

	case "object":
		if d.Properties == nil {
			return
		}
		var objects []map[string]any
		for _, s := range samples {
			if obj, ok := s.(map[string]any); ok {
				objects = append(objects, obj)
			}
		}
		for pair := d.Properties.Oldest(); pair != nil; pair = pair.Next() {
			fieldPath := pair.Key
			if path != "" {
				fieldPath = path + "." + pair.Key
			}
			stat, nested := fieldStat(fieldPath, pair.Value, pair.Key, objects)
			*stats = append(*stats, stat)
			walkFields(pair.Value, fieldPath, nested, depth+1, stats)
		}
	}
}

// fieldStat summarizes one field and returns its non-null values for the
// walk into nested fields.
func fieldStat(path string, d *jsonschema.Schema, name string, objects []map[string]any) (FieldStat, []any) {
	stat := FieldStat{Path: path, Type: typeName(d)}

	present, nulls := 0, 0
	distinct := make(map[string]bool)
	var nested []any
	var strs []string

	for _, obj := range objects {
		v, ok := obj[name]
		if !ok {
			continue
		}
		present++
		if v == nil {
			nulls++
			continue
		}
		nested = append(nested, v)

		key := fmt.Sprintf("%v", v)
		if !distinct[key] {
			distinct[key] = true
			switch v.(type) {
			case map[string]any, []any:
			default:
				if len(stat.Examples) < maxExamples {
					stat.Examples = append(stat.Examples, v)
				}
			}
		}
		if s, ok := v.(string); ok {
			strs = append(strs, s)
		}
	}

	if len(objects) > 0 {
		stat.Frequency = float64(present) / float64(len(objects))
	}
	stat.Required = present == len(objects) && nulls == 0
	stat.Nullable = nulls > 0
	stat.DistinctCount = len(distinct)

	if len(strs) >= minSamplesForFormat && len(strs) == present-nulls {
		stat.Format, stat.EnumValues = detectFormat(strs)
	}
	return stat, nested
}

func detectFormat(values []string) (string, []string) {
	for _, p := range formatPatterns {
		if allMatch(p.re, values) {
			return p.name, nil
		}
	}

	distinct := make(map[string]bool)
	for _, v := range values {
		distinct[v] = true
	}
	if len(distinct) > maxEnumDistinctValues {
		return "", nil
	}
	enum := make([]string, 0, len(distinct))
	for v := range distinct {
		enum = append(enum, v)
	}
	sort.Strings(enum)
	return FormatEnum, enum
}

func allMatch(re *regexp.Regexp, values []string) bool {
	for _, v := range values {
		if !re.MatchString(v) {
			return false
		}
	}
	return true
}

func typeName(d *jsonschema.Schema) string {
	if d.Type != "" {
		return d.Type
	}
	if len(d.AnyOf) == 0 {
		return "unknown"
	}
	names := make([]string, 0, len(d.AnyOf))
	for _, alt := range d.AnyOf {
		if alt.Type != "" {
			names = append(names, alt.Type)
		}
	}
	return strings.Join(names, "|")
}
