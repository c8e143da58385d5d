// Package builtin provides ready-made tools for the agent commands.
package builtin

import (
	"context"
	"fmt"
	"net/http"

	"github.com/haivivi/agentpatterns/pkg/tool"
)

type addArgs struct {
	X int64 `json:"x" jsonschema:"the first integer"`
	Y int64 `json:"y" jsonschema:"the second integer"`
}

type pairArgs struct {
	A int64 `json:"a" jsonschema:"the first integer"`
	B int64 `json:"b" jsonschema:"the second integer"`
}

// Add returns the add(x, y) tool.
func Add() *tool.Tool {
	return tool.MustNew("add", "A simple function to add two numbers. Returns the sum of x and y.",
		func(_ context.Context, a addArgs) (int64, error) {
			return a.X + a.Y, nil
		})
}

// Sum returns the sum(a, b) tool.
func Sum() *tool.Tool {
	return tool.MustNew("sum", "Calculate the sum of two integers a and b.",
		func(_ context.Context, a pairArgs) (int64, error) {
			return a.A + a.B, nil
		})
}

// Multiply returns the multiply(a, b) tool.
func Multiply() *tool.Tool {
	return tool.MustNew("multiply", "Calculate the product of two integers a and b.",
		func(_ context.Context, a pairArgs) (int64, error) {
			return a.A * a.B, nil
		})
}

// Defaults returns every builtin tool, in a stable order.
func Defaults() []*tool.Tool {
	return []*tool.Tool{
		Sum(),
		Multiply(),
		Add(),
		(&HTTPGet{Client: http.DefaultClient}).Tool(),
	}
}

// ByName returns the builtin tools with the given names, in the order
// given. An empty list returns Defaults.
func ByName(names ...string) ([]*tool.Tool, error) {
	all := Defaults()
	if len(names) == 0 {
		return all, nil
	}
	index := make(map[string]*tool.Tool, len(all))
	for _, t := range all {
		index[t.Name] = t
	}
	out := make([]*tool.Tool, 0, len(names))
	for _, name := range names {
		t, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", tool.ErrUnknownTool, name)
		}
		out = append(out, t)
	}
	return out, nil
}
