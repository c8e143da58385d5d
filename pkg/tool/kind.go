package tool

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the declared primitive type of a tool parameter.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindFloat   Kind = "float"
	KindBoolean Kind = "boolean"
)

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindString, KindInteger, KindFloat, KindBoolean:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// schemaType returns the JSON Schema type name for k.
func (k Kind) schemaType() string {
	if k == KindFloat {
		return "number"
	}
	return string(k)
}

// kindOf maps a JSON Schema type name to a Kind.
func kindOf(schemaType string) (Kind, bool) {
	switch schemaType {
	case "string":
		return KindString, true
	case "integer":
		return KindInteger, true
	case "number":
		return KindFloat, true
	case "boolean":
		return KindBoolean, true
	}
	return "", false
}

// Coerce converts v to the runtime representation of k: string, int64,
// float64 or bool. It returns ErrInvalidArgument when no lossless
// conversion exists.
func Coerce(v any, k Kind) (any, error) {
	var (
		out any
		ok  bool
	)
	switch k {
	case KindString:
		out, ok = toString(v)
	case KindInteger:
		out, ok = toInt(v)
	case KindFloat:
		out, ok = toFloat(v)
	case KindBoolean:
		out, ok = toBool(v)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrUnsupportedType, k)
	}
	if !ok {
		if v == nil {
			return nil, fmt.Errorf("%w: null is not %s", ErrInvalidArgument, k)
		}
		return nil, fmt.Errorf("%w: cannot convert %T %v to %s", ErrInvalidArgument, v, v, k)
	}
	return out, nil
}

func toString(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	if i, ok := asInt64(v); ok {
		return strconv.FormatInt(i, 10), true
	}
	if u, ok := v.(uint64); ok {
		return strconv.FormatUint(u, 10), true
	}
	return "", false
}

func toInt(v any) (int64, bool) {
	switch v := v.(type) {
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return i, err == nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return integral(f)
	case float32:
		return integral(float64(v))
	case float64:
		return integral(v)
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return asInt64(v)
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	if i, ok := asInt64(v); ok {
		return float64(i), true
	}
	if u, ok := v.(uint64); ok {
		return float64(u), true
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	switch v := v.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return b, err == nil
	}
	if f, ok := toFloat(v); ok {
		return f != 0, true
	}
	return false, false
}

func integral(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func asInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}
