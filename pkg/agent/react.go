package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/haivivi/agentpatterns/pkg/genx"
	"github.com/haivivi/agentpatterns/pkg/history"
	"github.com/haivivi/agentpatterns/pkg/tags"
	"github.com/haivivi/agentpatterns/pkg/tool"
)

// Tags used by the ReAct protocol.
const (
	TagQuestion    = "question"
	TagThought     = "thought"
	TagToolCall    = "tool_call"
	TagResponse    = "response"
	TagObservation = "observation"
)

// ReActResult is the outcome of a ReAct run.
type ReActResult struct {
	Output       string             `json:"output" yaml:"output"`
	State        ReActState         `json:"state" yaml:"state"`
	Rounds       int                `json:"rounds" yaml:"rounds"`
	Thoughts     []string           `json:"thoughts,omitempty" yaml:"thoughts,omitempty"`
	Observations []tool.Observation `json:"observations,omitempty" yaml:"observations,omitempty"`
}

// ReActAgent answers a question by reasoning over tool results.
type ReActAgent struct {
	completer genx.Completer
	model     string
	tools     *tool.Registry
	system    string
	opts      options
}

// NewReActAgent creates a ReAct agent. The system prompt is rendered with
// the signatures of tools once, here.
func NewReActAgent(c genx.Completer, model string, tools *tool.Registry, prompts ReActPrompts, opts ...Option) (*ReActAgent, error) {
	if c == nil {
		return nil, ErrNoCompleter
	}
	if tools == nil {
		tools = &tool.Registry{}
	}
	system, err := renderToolPrompt("react system", prompts.System, tools)
	if err != nil {
		return nil, err
	}
	o := newOptions(opts)
	if _, err := history.New[genx.Message](o.historySize, history.PinFirst); err != nil {
		return nil, fmt.Errorf("agent: react history: %w", err)
	}
	return &ReActAgent{
		completer: c,
		model:     model,
		tools:     tools,
		system:    system,
		opts:      o,
	}, nil
}

// SystemPrompt returns the rendered system prompt.
func (a *ReActAgent) SystemPrompt() string {
	return a.system
}

// Run answers userMsg. Each round the model either answers in <response>,
// or thinks and calls tools whose observation is fed back as the next user
// turn. After the round budget one more call is made and its raw text is the
// output. With no tools registered only that final call is made, and a
// <response> in it is returned with its tags.
func (a *ReActAgent) Run(ctx context.Context, userMsg string) (*ReActResult, error) {
	log := a.opts.logger.With("agent", "react", "run_id", uuid.New().String())
	h, err := history.New(a.opts.historySize, history.PinFirst,
		genx.System(a.system),
		genx.NewTaggedMessage(genx.RoleUser, userMsg, TagQuestion),
	)
	if err != nil {
		return nil, err
	}

	res := &ReActResult{State: ReActAwaitingModel}
	if a.tools.Len() > 0 {
		for round := 1; round <= a.opts.maxRounds; round++ {
			res.Rounds = round
			res.State = ReActAwaitingModel
			log.DebugContext(ctx, "react: round", "round", round, "max_rounds", a.opts.maxRounds, "history", h.Len())

			out, err := a.completer.Complete(ctx, a.model, h.Items())
			if err != nil {
				return res, fmt.Errorf("react round %d: %w", round, err)
			}
			if resp, ok := tags.First(out, TagResponse); ok {
				res.Output = resp
				res.State = ReActHaveFinalResponse
				log.DebugContext(ctx, "react: final response", "round", round)
				return res, nil
			}

			thoughts := tags.Extract(out, TagThought)
			calls := tags.Extract(out, TagToolCall)
			h.Append(genx.Assistant(out))

			if thoughts.Found {
				res.State = ReActHaveThought
				res.Thoughts = append(res.Thoughts, thoughts.Content...)
				for _, t := range thoughts.Content {
					log.DebugContext(ctx, "react: thought", "round", round, "thought", t)
				}
			}
			if !calls.Found {
				continue
			}

			res.State = ReActHaveToolCalls
			obs, err := a.tools.Dispatch(ctx, calls.Content, a.opts.toolPolicy)
			if err != nil {
				return res, fmt.Errorf("react round %d: %w", round, err)
			}
			res.Observations = append(res.Observations, obs)
			log.InfoContext(ctx, "react: observation", "round", round, "calls", len(calls.Content), "observation", obs.String())
			h.Append(genx.NewTaggedMessage(genx.RoleUser, obs.String(), TagObservation))
		}
	}

	log.DebugContext(ctx, "react: rounds exhausted, final call", "rounds", res.Rounds)
	out, err := a.completer.Complete(ctx, a.model, h.Items())
	if err != nil {
		return res, fmt.Errorf("react final call: %w", err)
	}
	res.Output = out
	res.State = ReActRoundsExhausted
	if log.Enabled(ctx, slog.LevelDebug) {
		log.DebugContext(ctx, "react: history", "messages", genx.InspectMessages(h.Items()))
	}
	return res, nil
}
