package tool

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Call is one tool invocation requested by the model.
type Call struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
	ID        int            `json:"id"`
}

// ParseCall decodes the body of a <tool_call> tag. Slightly malformed JSON
// (trailing commas, single quotes, missing braces) is repaired before giving
// up.
func ParseCall(raw string) (*Call, error) {
	var call Call
	if err := unmarshalJSON([]byte(strings.TrimSpace(raw)), &call); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToolCall, err)
	}
	if call.Name == "" {
		return nil, fmt.Errorf("%w: missing name in %q", ErrInvalidToolCall, raw)
	}
	if call.Arguments == nil {
		call.Arguments = map[string]any{}
	}
	return &call, nil
}

// Validate checks call against sig and returns a copy whose arguments are
// coerced to the declared kinds. It never modifies call.
func Validate(call *Call, sig Signature) (*Call, error) {
	out := &Call{
		Name:      call.Name,
		ID:        call.ID,
		Arguments: make(map[string]any, len(call.Arguments)),
	}
	for _, name := range slices.Sorted(maps.Keys(call.Arguments)) {
		prop, ok := sig.Parameters.Properties[name]
		if !ok {
			return nil, fmt.Errorf("%w: tool %s has no parameter %q", ErrUnknownParameter, sig.Name, name)
		}
		v, err := Coerce(call.Arguments[name], prop.Type)
		if err != nil {
			return nil, fmt.Errorf("tool %s: argument %q: %w", sig.Name, name, err)
		}
		out.Arguments[name] = v
	}
	for _, name := range sig.Parameters.Required {
		if _, ok := out.Arguments[name]; !ok {
			return nil, fmt.Errorf("%w: tool %s requires %q", ErrMissingArgument, sig.Name, name)
		}
	}
	return out, nil
}

// Observation maps call ids to tool results for one round.
type Observation map[int]any

// String renders the observation as {0: 5, 1: "text"} with ids ascending.
func (o Observation) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, id := range slices.Sorted(maps.Keys(o)) {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(id))
		sb.WriteString(": ")
		sb.WriteString(formatValue(o[id]))
	}
	sb.WriteByte('}')
	return sb.String()
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case error:
		return strconv.Quote(v.Error())
	case fmt.Stringer:
		return v.String()
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// unmarshalJSON decodes data into v with numbers kept as json.Number, so
// integers beyond 2^53 reach Coerce intact. Invalid input is passed through
// jsonrepair once before decoding.
func unmarshalJSON(data []byte, v any) error {
	if !json.Valid(data) {
		fixed, err := jsonrepair.JSONRepair(string(data))
		if err != nil {
			return err
		}
		if !json.Valid([]byte(fixed)) {
			return fmt.Errorf("invalid JSON after repair: %q", fixed)
		}
		data = []byte(fixed)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
