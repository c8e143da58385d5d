package tool

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// ErrorPolicy decides what Dispatch does when a call in a round fails.
type ErrorPolicy int

const (
	// AbortOnError stops the round at the first failing call and returns
	// its error.
	AbortOnError ErrorPolicy = iota
	// ReportErrors records the failure as that call's observation and keeps
	// running the remaining calls.
	ReportErrors
)

func (p ErrorPolicy) String() string {
	switch p {
	case AbortOnError:
		return "abort"
	case ReportErrors:
		return "report"
	}
	return fmt.Sprintf("ErrorPolicy(%d)", int(p))
}

// Registry is an ordered set of tools with unique names.
type Registry struct {
	tools []*Tool
	index map[string]*Tool
}

// NewRegistry creates a registry holding tools in the given order.
func NewRegistry(tools ...*Tool) (*Registry, error) {
	r := &Registry{index: make(map[string]*Tool, len(tools))}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds t to the registry.
func (r *Registry) Register(t *Tool) error {
	if t == nil {
		return fmt.Errorf("tool: register nil tool")
	}
	if r.index == nil {
		r.index = make(map[string]*Tool)
	}
	if _, ok := r.index[t.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, t.Name)
	}
	r.index[t.Name] = t
	r.tools = append(r.tools, t)
	return nil
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (*Tool, error) {
	if r != nil {
		if t, ok := r.index[name]; ok {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []*Tool {
	if r == nil {
		return nil
	}
	out := make([]*Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Names returns the tool names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.tools))
	for i, t := range r.tools {
		out[i] = t.Name
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.tools)
}

// DescribeAll concatenates the signature JSON of every tool in registration
// order, for embedding in a system prompt.
func (r *Registry) DescribeAll() string {
	if r == nil {
		return ""
	}
	var sb strings.Builder
	for _, t := range r.tools {
		sb.WriteString(t.String())
	}
	return sb.String()
}

// Execute looks up, validates and runs one call.
func (r *Registry) Execute(ctx context.Context, call *Call) (any, error) {
	t, err := r.Get(call.Name)
	if err != nil {
		return nil, err
	}
	return t.Run(ctx, call)
}

// Dispatch parses and executes each raw <tool_call> body in order and
// collects the results by call id. A later call with an id already present
// overwrites the earlier result.
//
// Under ReportErrors a failed call stores "error: ..." as its observation. A
// body that cannot be parsed has no id and is recorded under -(i+1), where i
// is its position in raw, so it never collides with a model-chosen id.
func (r *Registry) Dispatch(ctx context.Context, raw []string, policy ErrorPolicy) (Observation, error) {
	obs := make(Observation, len(raw))
	for i, body := range raw {
		call, err := ParseCall(body)
		if err != nil {
			if policy != ReportErrors {
				return nil, err
			}
			obs[-(i+1)] = "error: " + err.Error()
			continue
		}
		slog.InfoContext(ctx, "tool: dispatch", "tool", call.Name, "id", call.ID)
		result, err := r.Execute(ctx, call)
		if err != nil {
			if policy != ReportErrors {
				return nil, fmt.Errorf("tool call %d: %w", call.ID, err)
			}
			result = "error: " + err.Error()
		}
		if _, ok := obs[call.ID]; ok {
			slog.WarnContext(ctx, "tool: duplicate call id, overwriting result", "tool", call.Name, "id", call.ID)
		}
		obs[call.ID] = result
	}
	return obs, nil
}
