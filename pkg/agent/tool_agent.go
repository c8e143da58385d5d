package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/haivivi/agentpatterns/pkg/genx"
	"github.com/haivivi/agentpatterns/pkg/history"
	"github.com/haivivi/agentpatterns/pkg/tags"
	"github.com/haivivi/agentpatterns/pkg/tool"
)

// ToolAgent answers with the help of a single round of tool calls.
type ToolAgent struct {
	completer genx.Completer
	model     string
	tools     *tool.Registry
	system    string
	opts      options
}

// NewToolAgent creates a tool agent.
func NewToolAgent(c genx.Completer, model string, tools *tool.Registry, prompts ToolPrompts, opts ...Option) (*ToolAgent, error) {
	if c == nil {
		return nil, ErrNoCompleter
	}
	if tools == nil {
		tools = &tool.Registry{}
	}
	system, err := renderToolPrompt("tool system", prompts.System, tools)
	if err != nil {
		return nil, err
	}
	return &ToolAgent{
		completer: c,
		model:     model,
		tools:     tools,
		system:    system,
		opts:      newOptions(opts),
	}, nil
}

// SystemPrompt returns the rendered system prompt.
func (a *ToolAgent) SystemPrompt() string {
	return a.system
}

// Run makes exactly two model calls. The first, with the tool prompt, may
// request tool calls; their observation is added to a separate answer
// history that starts with userMsg alone. The second call on that answer
// history produces the output, also when no tool was called.
func (a *ToolAgent) Run(ctx context.Context, userMsg string) (string, error) {
	log := a.opts.logger.With("agent", "tool", "run_id", uuid.New().String())
	user := genx.User(userMsg)
	toolHistory := history.MustNew(0, history.EvictOldest, genx.System(a.system), user)
	answerHistory := history.MustNew(0, history.EvictOldest, user)

	out, err := a.completer.Complete(ctx, a.model, toolHistory.Items())
	if err != nil {
		return "", fmt.Errorf("tool call request: %w", err)
	}
	if calls := tags.Extract(out, TagToolCall); calls.Found {
		obs, err := a.tools.Dispatch(ctx, calls.Content, a.opts.toolPolicy)
		if err != nil {
			return "", err
		}
		log.InfoContext(ctx, "tool: observation", "calls", len(calls.Content), "observation", obs.String())
		answerHistory.Append(genx.User("Observation: " + obs.String()))
	} else {
		log.DebugContext(ctx, "tool: no tool calls")
	}

	answer, err := a.completer.Complete(ctx, a.model, answerHistory.Items())
	if err != nil {
		return "", fmt.Errorf("tool answer: %w", err)
	}
	return answer, nil
}
