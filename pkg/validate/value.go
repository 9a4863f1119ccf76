package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

// Kind is the runtime shape of a decoded value.
type Kind string

// Value kinds. Integer and float are distinct; boolean is never numeric.
const (
	KindNull    Kind = "null"
	KindBoolean Kind = "boolean"
	KindInteger Kind = "integer"
	KindFloat   Kind = "float"
	KindString  Kind = "string"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindUnknown Kind = "unknown"
)

// KindOf classifies v. A json.Number is an integer when its text has neither
// a fraction nor an exponent, so 3 is an integer and 3.0 is a float.
func KindOf(v any) Kind {
	switch val := v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case json.Number:
		if strings.ContainsAny(string(val), ".eE") {
			return KindFloat
		}
		return KindInteger
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInteger
	case float32, float64:
		return KindFloat
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindUnknown
	}
}

// Normalize converts v into the decoded-JSON value model. Values already in
// that model are returned unchanged. Typed slices, arrays and string-keyed maps
// become []any and map[string]any, named scalar types become their base kind,
// and anything else (structs, []byte, json.RawMessage) takes the form its JSON
// encoding decodes to. Scalars keep their kind: float64(3) stays a float.
func Normalize(v any) any {
	if isDecoded(v) {
		return v
	}
	return normalize(v)
}

func isDecoded(v any) bool {
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if !isDecoded(item) {
				return false
			}
		}
		return true
	case map[string]any:
		for _, item := range val {
			if !isDecoded(item) {
				return false
			}
		}
		return true
	}
	return KindOf(v) != KindUnknown
}

func normalize(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	}
	if KindOf(v) != KindUnknown {
		return v
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		if rv.IsNil() {
			return nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = normalize(iter.Value().Interface())
		}
		return out
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}

	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	out, err := DecodeBytes(b)
	if err != nil {
		return v
	}
	return out
}

// Decode reads a single JSON value from r, keeping numbers as json.Number so
// integers and floats stay distinguishable.
func Decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decoding JSON: unexpected data after top-level value")
	}
	return v, nil
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(data []byte) (any, error) {
	return Decode(bytes.NewReader(data))
}

// Equal compares two decoded values by value. Numbers compare numerically
// across representations (1, 1.0 and json.Number("1") are equal); booleans
// never equal numbers.
func Equal(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if isNumeric(ka) && isNumeric(kb) {
		return numericEqual(a, b)
	}
	if ka != kb {
		return false
	}

	switch ka {
	case KindNull:
		return true
	case KindBoolean:
		return a.(bool) == b.(bool)
	case KindString:
		return a.(string) == b.(string)
	case KindArray:
		x, y := a.([]any), b.([]any)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case KindObject:
		x, y := a.(map[string]any), b.(map[string]any)
		if len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isNumeric(k Kind) bool {
	return k == KindInteger || k == KindFloat
}

func numericEqual(a, b any) bool {
	if KindOf(a) == KindInteger && KindOf(b) == KindInteger {
		x, okA := toBigInt(a)
		y, okB := toBigInt(b)
		if okA && okB {
			return x.Cmp(y) == 0
		}
	}
	x, okA := toFloat64(a)
	y, okB := toFloat64(b)
	return okA && okB && x == y
}

func toBigInt(v any) (*big.Int, bool) {
	switch n := v.(type) {
	case json.Number:
		return new(big.Int).SetString(string(n), 10)
	case int:
		return big.NewInt(int64(n)), true
	case int8:
		return big.NewInt(int64(n)), true
	case int16:
		return big.NewInt(int64(n)), true
	case int32:
		return big.NewInt(int64(n)), true
	case int64:
		return big.NewInt(n), true
	case uint:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint64:
		return new(big.Int).SetUint64(n), true
	default:
		return nil, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	if i, ok := toBigInt(v); ok {
		f, _ := new(big.Float).SetInt(i).Float64()
		return f, true
	}
	return 0, false
}
