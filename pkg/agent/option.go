package agent

import (
	"log/slog"

	"github.com/haivivi/agentpatterns/pkg/tool"
)

const (
	DefaultMaxRounds = 10
	DefaultSteps     = 10
	DefaultWindow    = 3
)

type options struct {
	maxRounds   int
	historySize int
	toolPolicy  tool.ErrorPolicy
	steps       int
	window      int
	stepHook    func(step, total int)
	logger      *slog.Logger
}

func newOptions(opts []Option) options {
	o := options{
		maxRounds: DefaultMaxRounds,
		steps:     DefaultSteps,
		window:    DefaultWindow,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures an agent. Options that do not apply to an agent type
// are ignored by it.
type Option func(*options)

// WithMaxRounds sets the ReAct round budget.
func WithMaxRounds(n int) Option {
	return func(o *options) { o.maxRounds = n }
}

// WithHistorySize bounds the ReAct history, keeping the system prompt
// pinned. Zero or less means unbounded.
func WithHistorySize(n int) Option {
	return func(o *options) { o.historySize = n }
}

// WithToolErrorPolicy sets how a failing tool call affects its round.
func WithToolErrorPolicy(p tool.ErrorPolicy) Option {
	return func(o *options) { o.toolPolicy = p }
}

// WithSteps sets the reflection step budget.
func WithSteps(n int) Option {
	return func(o *options) { o.steps = n }
}

// WithWindow sets the size of both reflection histories.
func WithWindow(n int) Option {
	return func(o *options) { o.window = n }
}

// WithStepHook registers a callback invoked before each reflection step.
func WithStepHook(fn func(step, total int)) Option {
	return func(o *options) { o.stepHook = fn }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
