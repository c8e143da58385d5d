package agent

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/haivivi/agentpatterns/pkg/genx"
	"github.com/haivivi/agentpatterns/pkg/tool"
	"github.com/haivivi/agentpatterns/pkg/tool/builtin"
)

var testToolPrompts = ToolPrompts{System: "Call functions with <tool_call>.\n<tools>\n{{ .Tools }}\n</tools>"}

func newAddRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	r, err := tool.NewRegistry(builtin.Add())
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestToolAgent_WithToolCall(t *testing.T) {
	mc := newMockCompleter(
		`<tool_call>{"name":"add","arguments":{"x":3,"y":5},"id":0}</tool_call>`,
		"The sum of 3 and 5 is 8.",
	)
	a, err := NewToolAgent(mc, "m", newAddRegistry(t), testToolPrompts)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(a.SystemPrompt(), `"name":"add"`) {
		t.Errorf("system prompt=%s", a.SystemPrompt())
	}
	got, err := a.Run(context.Background(), "Please add 3 and 5")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if got != "The sum of 3 and 5 is 8." {
		t.Errorf("got=%q", got)
	}
	if len(mc.calls) != 2 {
		t.Fatalf("calls=%d", len(mc.calls))
	}
	if r := roles(mc.calls[0]); !slices.Equal(r, []genx.Role{genx.RoleSystem, genx.RoleUser}) {
		t.Errorf("tool call roles=%v", r)
	}
	answer := mc.calls[1]
	if r := roles(answer); !slices.Equal(r, []genx.Role{genx.RoleUser, genx.RoleUser}) {
		t.Fatalf("answer roles=%v", r)
	}
	if answer[0].Content != "Please add 3 and 5" || answer[1].Content != "Observation: {0: 8}" {
		t.Errorf("answer history=%v", answer)
	}
}

func TestToolAgent_PassThrough(t *testing.T) {
	mc := newMockCompleter("I don't need tools.", "Hello!")
	a, _ := NewToolAgent(mc, "m", newAddRegistry(t), testToolPrompts)
	got, err := a.Run(context.Background(), "hi")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hello!" {
		t.Errorf("got=%q", got)
	}
	if len(mc.calls) != 2 || len(mc.calls[1]) != 1 || mc.calls[1][0].Content != "hi" {
		t.Errorf("calls=%v", mc.calls)
	}
}

func TestToolAgent_Errors(t *testing.T) {
	t.Run("tool", func(t *testing.T) {
		mc := newMockCompleter(`<tool_call>{"name":"add","arguments":{"x":"three","y":5},"id":0}</tool_call>`)
		a, _ := NewToolAgent(mc, "m", newAddRegistry(t), testToolPrompts)
		if _, err := a.Run(context.Background(), "q"); !errors.Is(err, tool.ErrInvalidArgument) {
			t.Errorf("err=%v", err)
		}
	})
	t.Run("model", func(t *testing.T) {
		mc := newMockCompleter("no tools")
		mc.failAt = 2
		a, _ := NewToolAgent(mc, "m", newAddRegistry(t), testToolPrompts)
		if _, err := a.Run(context.Background(), "q"); !errors.Is(err, genx.ErrModelCall) {
			t.Errorf("err=%v", err)
		}
	})
	t.Run("empty prompt", func(t *testing.T) {
		if _, err := NewToolAgent(newMockCompleter(), "m", nil, ToolPrompts{}); !errors.Is(err, ErrEmptyPrompt) {
			t.Errorf("err=%v", err)
		}
	})
}
