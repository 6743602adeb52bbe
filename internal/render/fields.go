package render

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/chatpilot/toolview/internal/text"
)

// Fields is a defensive view over a decoded JSON object. Every accessor
// tolerates absent keys, wrong types, and nil values.
type Fields map[string]any

// AsFields reports whether value is a structured object and exposes it.
func AsFields(value any) (Fields, bool) {
	switch v := value.(type) {
	case Fields:
		return v, v != nil
	case map[string]any:
		return Fields(v), v != nil
	default:
		return nil, false
	}
}

// ArgsFields extracts the argument object, empty when absent or malformed.
func (c Context) ArgsFields() Fields {
	if fields, ok := AsFields(c.Args); ok {
		return fields
	}
	return Fields{}
}

// Text coerces the value under key to normalized text. Non-scalar values and
// missing keys map to "".
func (f Fields) Text(key string) string {
	return text.Normalize(coerceText(f[key]))
}

// Count parses the value under key as a non-negative integer. Malformed and
// negative values floor to zero.
func (f Fields) Count(key string) int {
	value, ok := f[key]
	if !ok {
		return 0
	}
	parsed, ok := coerceInt(value)
	if !ok || parsed < 0 {
		return 0
	}
	return parsed
}

// List returns the sequence under key, nil when absent or not a list.
func (f Fields) List(key string) []any {
	if items, ok := f[key].([]any); ok {
		return items
	}
	return nil
}

// Map returns the nested object under key, empty when absent or malformed.
func (f Fields) Map(key string) Fields {
	if fields, ok := AsFields(f[key]); ok {
		return fields
	}
	return Fields{}
}

// Texts coerces the sequence under key into normalized non-empty strings.
func (f Fields) Texts(key string) []string {
	items := f.List(key)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if value := text.Normalize(coerceText(item)); value != "" {
			out = append(out, value)
		}
	}
	return out
}

// Has reports whether key holds a non-empty scalar.
func (f Fields) Has(key string) bool {
	return f.Text(key) != ""
}

func coerceText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return coerceText(float64(v))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func coerceInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case float32:
		return coerceInt(float64(v))
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			if f, ferr := v.Float64(); ferr == nil {
				return int(f), true
			}
			return 0, false
		}
		return int(parsed), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			if f, ferr := strconv.ParseFloat(strings.TrimSpace(v), 64); ferr == nil {
				return int(f), true
			}
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
