package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/haivivi/agentpatterns/pkg/genx"
)

// MaxChatTurns caps chats started with no turn limit.
const MaxChatTurns = 100

// DefaultSummaryPrompt is used by ReflectionWithLLM when no prompt is set.
const DefaultSummaryPrompt = "Summarize the takeaway from the conversation. Do not add any introductory phrases."

// SummaryMethod selects how a chat result is summarized.
type SummaryMethod string

const (
	SummaryLastMessage       SummaryMethod = "last_msg"
	SummaryReflectionWithLLM SummaryMethod = "reflection_with_llm"
)

// ChatOptions configures InitiateChat.
type ChatOptions struct {
	// MaxTurns bounds the number of exchanges. Zero or less runs until a
	// termination predicate matches, up to MaxChatTurns.
	MaxTurns      int
	Summary       SummaryMethod
	SummaryPrompt string
}

// ChatTurn is one message of a chat transcript.
type ChatTurn struct {
	Name    string `json:"name" yaml:"name"`
	Content string `json:"content" yaml:"content"`
}

// ChatResult is the outcome of a chat.
type ChatResult struct {
	History []ChatTurn `json:"history" yaml:"history"`
	Summary string     `json:"summary" yaml:"summary"`
	Turns   int        `json:"turns" yaml:"turns"`
}

// ConversableAgent is a named participant in a two-party chat.
type ConversableAgent struct {
	Name          string
	SystemMessage string
	Model         string
	Completer     genx.Completer

	// IsTermination reports whether an incoming message ends the chat.
	IsTermination func(content string) bool

	Logger *slog.Logger
}

func (a *ConversableAgent) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func (a *ConversableAgent) terminates(content string) bool {
	return a.IsTermination != nil && a.IsTermination(content)
}

// GenerateReply returns a single reply to messages. The agent keeps no state
// between calls.
func (a *ConversableAgent) GenerateReply(ctx context.Context, messages []genx.Message) (string, error) {
	if a.Completer == nil {
		return "", fmt.Errorf("%w: %s", ErrNoCompleter, a.Name)
	}
	msgs := make([]genx.Message, 0, len(messages)+1)
	if strings.TrimSpace(a.SystemMessage) != "" {
		msgs = append(msgs, genx.System(a.SystemMessage))
	}
	msgs = append(msgs, messages...)
	out, err := a.Completer.Complete(ctx, a.Model, msgs)
	if err != nil {
		return "", fmt.Errorf("%s: %w", a.Name, err)
	}
	return out, nil
}

// view renders a transcript from a's side: its own turns are assistant
// messages and the peer's are user messages.
func (a *ConversableAgent) view(transcript []ChatTurn) []genx.Message {
	msgs := make([]genx.Message, 0, len(transcript))
	for _, t := range transcript {
		if t.Name == a.Name {
			msgs = append(msgs, genx.Assistant(t.Content))
		} else {
			msgs = append(msgs, genx.User(t.Content))
		}
	}
	return msgs
}

// InitiateChat sends message to recipient and lets the two agents take
// turns. One turn is a message from a followed by the reply of recipient.
// An agent whose IsTermination matches the incoming message does not reply
// and the chat ends.
func (a *ConversableAgent) InitiateChat(ctx context.Context, recipient *ConversableAgent, message string, opts ChatOptions) (*ChatResult, error) {
	if recipient == nil {
		return nil, fmt.Errorf("agent: %s: nil recipient", a.Name)
	}
	if a.Name == recipient.Name {
		return nil, fmt.Errorf("agent: chat participants share the name %q", a.Name)
	}
	switch opts.Summary {
	case "", SummaryLastMessage, SummaryReflectionWithLLM:
	default:
		return nil, fmt.Errorf("agent: unknown summary method %q", opts.Summary)
	}
	maxTurns := opts.MaxTurns
	if maxTurns <= 0 || maxTurns > MaxChatTurns {
		maxTurns = MaxChatTurns
	}
	log := a.logger().With("agent", "chat", "run_id", uuid.New().String(), "sender", a.Name, "recipient", recipient.Name)

	res := &ChatResult{History: []ChatTurn{{Name: a.Name, Content: message}}}
	last := func() string { return res.History[len(res.History)-1].Content }

	for turn := 1; turn <= maxTurns; turn++ {
		if turn > 1 {
			if a.terminates(last()) {
				log.DebugContext(ctx, "chat: terminated", "by", a.Name, "turn", turn)
				break
			}
			msg, err := a.GenerateReply(ctx, a.view(res.History))
			if err != nil {
				return res, fmt.Errorf("chat turn %d: %w", turn, err)
			}
			res.History = append(res.History, ChatTurn{Name: a.Name, Content: msg})
		}
		if recipient.terminates(last()) {
			log.DebugContext(ctx, "chat: terminated", "by", recipient.Name, "turn", turn)
			break
		}
		reply, err := recipient.GenerateReply(ctx, recipient.view(res.History))
		if err != nil {
			return res, fmt.Errorf("chat turn %d: %w", turn, err)
		}
		res.History = append(res.History, ChatTurn{Name: recipient.Name, Content: reply})
		res.Turns = turn
		log.DebugContext(ctx, "chat: turn", "turn", turn, "max_turns", maxTurns)
	}

	if opts.Summary == SummaryReflectionWithLLM {
		prompt := opts.SummaryPrompt
		if strings.TrimSpace(prompt) == "" {
			prompt = DefaultSummaryPrompt
		}
		summary, err := a.GenerateReply(ctx, append(a.view(res.History), genx.User(prompt)))
		if err != nil {
			return res, fmt.Errorf("chat summary: %w", err)
		}
		res.Summary = summary
	} else {
		res.Summary = last()
	}
	return res, nil
}
