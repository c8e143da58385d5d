package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/haivivi/agentpatterns/pkg/genx"
	"github.com/haivivi/agentpatterns/pkg/history"
)

// SentinelOK is the critic's signal that the generation needs no more work.
const SentinelOK = "<OK>"

// ReflectionResult is the outcome of a reflection run.
type ReflectionResult struct {
	Output string          `json:"output" yaml:"output"`
	State  ReflectionState `json:"state" yaml:"state"`
	Steps  int             `json:"steps" yaml:"steps"`
}

// ReflectionAgent improves a generation by alternating it with critiques.
type ReflectionAgent struct {
	completer genx.Completer
	model     string
	prompts   ReflectionPrompts
	opts      options
}

// NewReflectionAgent creates a reflection agent.
func NewReflectionAgent(c genx.Completer, model string, prompts ReflectionPrompts, opts ...Option) (*ReflectionAgent, error) {
	if c == nil {
		return nil, ErrNoCompleter
	}
	if strings.TrimSpace(prompts.Generation) == "" {
		return nil, fmt.Errorf("%w: generation", ErrEmptyPrompt)
	}
	if strings.TrimSpace(prompts.Reflection) == "" {
		return nil, fmt.Errorf("%w: reflection", ErrEmptyPrompt)
	}
	o := newOptions(opts)
	if _, err := history.New[genx.Message](o.window, history.PinFirst); err != nil {
		return nil, fmt.Errorf("agent: reflection window: %w", err)
	}
	return &ReflectionAgent{
		completer: c,
		model:     model,
		prompts:   prompts,
		opts:      o,
	}, nil
}

// Generate asks the model for a new generation.
func (a *ReflectionAgent) Generate(ctx context.Context, messages []genx.Message) (string, error) {
	out, err := a.completer.Complete(ctx, a.model, messages)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return out, nil
}

// Reflect asks the model for a critique.
func (a *ReflectionAgent) Reflect(ctx context.Context, messages []genx.Message) (string, error) {
	out, err := a.completer.Complete(ctx, a.model, messages)
	if err != nil {
		return "", fmt.Errorf("reflect: %w", err)
	}
	return out, nil
}

// Run generates a response to userMsg and refines it with up to the
// configured number of critique steps. It returns as soon as a critique
// contains SentinelOK. A step budget of zero or less makes no model call
// and returns an empty output.
func (a *ReflectionAgent) Run(ctx context.Context, userMsg string) (*ReflectionResult, error) {
	log := a.opts.logger.With("agent", "reflection", "run_id", uuid.New().String())
	gen, err := history.New(a.opts.window, history.PinFirst,
		genx.System(a.prompts.Generation),
		genx.User(userMsg),
	)
	if err != nil {
		return nil, err
	}
	refl, err := history.New(a.opts.window, history.PinFirst,
		genx.System(a.prompts.Reflection),
	)
	if err != nil {
		return nil, err
	}

	res := &ReflectionResult{State: ReflectionStepsExhausted}
	total := a.opts.steps
	for step := 1; step <= total; step++ {
		res.Steps = step
		if a.opts.stepHook != nil {
			a.opts.stepHook(step, total)
		}

		generation, err := a.Generate(ctx, gen.Items())
		if err != nil {
			return res, fmt.Errorf("reflection step %d: %w", step, err)
		}
		res.Output = generation
		log.DebugContext(ctx, "reflection: generation", "step", step, "total", total, "text", generation)
		gen.Append(genx.Assistant(generation))
		refl.Append(genx.User(generation))

		critique, err := a.Reflect(ctx, refl.Items())
		if err != nil {
			return res, fmt.Errorf("reflection step %d: %w", step, err)
		}
		log.DebugContext(ctx, "reflection: critique", "step", step, "total", total, "text", critique)
		if strings.Contains(critique, SentinelOK) {
			res.State = ReflectionConverged
			log.DebugContext(ctx, "reflection: converged", "step", step)
			return res, nil
		}
		gen.Append(genx.User(critique))
		refl.Append(genx.Assistant(critique))
	}
	return res, nil
}
