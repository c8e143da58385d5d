package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/google/jsonschema-go/jsonschema"
)

// Func is the body of a tool. It receives arguments already validated and
// coerced to their declared kinds.
type Func func(ctx context.Context, args map[string]any) (any, error)

// Tool is a named callable with a signature. Tools are immutable once built.
type Tool struct {
	Name        string
	Description string
	Signature   Signature
	Schema      *jsonschema.Schema

	invoke Func
}

// String returns the signature JSON shown to the model.
func (t *Tool) String() string {
	return t.Signature.String()
}

// Invoke runs the tool body with args as given. Use Run to validate first.
func (t *Tool) Invoke(ctx context.Context, args map[string]any) (any, error) {
	return t.invoke(ctx, args)
}

// Run validates call against the signature and invokes the tool.
func (t *Tool) Run(ctx context.Context, call *Call) (any, error) {
	valid, err := Validate(call, t.Signature)
	if err != nil {
		return nil, err
	}
	return t.invoke(ctx, valid.Arguments)
}

// NewFunc builds a tool from an explicit parameter list.
func NewFunc(name, description string, params []Param, fn Func) (*Tool, error) {
	if name == "" {
		return nil, errors.New("tool: empty name")
	}
	if fn == nil {
		return nil, fmt.Errorf("tool %s: nil function", name)
	}
	sig, err := NewSignature(name, description, params)
	if err != nil {
		return nil, err
	}
	return &Tool{
		Name:        name,
		Description: description,
		Signature:   sig,
		Schema:      schemaOf(sig),
		invoke:      fn,
	}, nil
}

// New builds a tool whose parameters are the fields of the Args struct.
// Field names follow encoding/json; fields tagged omitempty or omitzero are
// optional. Every field must be a string, integer, float or bool; other field
// types fail with ErrUnsupportedType.
func New[Args, Result any](name, description string, fn func(context.Context, Args) (Result, error)) (*Tool, error) {
	if name == "" {
		return nil, errors.New("tool: empty name")
	}
	if fn == nil {
		return nil, fmt.Errorf("tool %s: nil function", name)
	}
	if k := reflect.TypeFor[Args]().Kind(); k != reflect.Struct {
		return nil, fmt.Errorf("%w: tool %s: arguments must be a struct, got %s", ErrUnsupportedType, name, k)
	}
	schema, err := jsonschema.For[Args](nil)
	if err != nil {
		return nil, fmt.Errorf("%w: tool %s: %v", ErrUnsupportedType, name, err)
	}
	params, err := paramsOf(schema)
	if err != nil {
		return nil, fmt.Errorf("tool %s: %w", name, err)
	}
	sig, err := NewSignature(name, description, params)
	if err != nil {
		return nil, err
	}
	invoke := func(ctx context.Context, args map[string]any) (any, error) {
		b, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("tool %s: encode arguments: %w", name, err)
		}
		var v Args
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, fmt.Errorf("%w: tool %s: %v", ErrInvalidArgument, name, err)
		}
		return fn(ctx, v)
	}
	return &Tool{
		Name:        name,
		Description: description,
		Signature:   sig,
		Schema:      schema,
		invoke:      invoke,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew[Args, Result any](name, description string, fn func(context.Context, Args) (Result, error)) *Tool {
	t, err := New(name, description, fn)
	if err != nil {
		panic(err)
	}
	return t
}

func paramsOf(s *jsonschema.Schema) ([]Param, error) {
	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}
	order := s.PropertyOrder
	if len(order) != len(s.Properties) {
		order = order[:0:0]
		for name := range s.Properties {
			order = append(order, name)
		}
	}
	params := make([]Param, 0, len(order))
	for _, name := range order {
		prop := s.Properties[name]
		if prop == nil || len(prop.Types) > 0 {
			return nil, fmt.Errorf("%w: parameter %q must be a single primitive type", ErrUnsupportedType, name)
		}
		kind, ok := kindOf(prop.Type)
		if !ok {
			return nil, fmt.Errorf("%w: parameter %q has type %q", ErrUnsupportedType, name, prop.Type)
		}
		params = append(params, Param{Name: name, Kind: kind, Optional: !required[name]})
	}
	return params, nil
}

func schemaOf(sig Signature) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(sig.Parameters.Properties)),
		Required:   sig.Parameters.Required,
	}
	for _, p := range sig.Parameters.Params() {
		s.Properties[p.Name] = &jsonschema.Schema{Type: p.Kind.schemaType()}
		s.PropertyOrder = append(s.PropertyOrder, p.Name)
	}
	return s
}
