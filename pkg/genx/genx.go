package genx

import (
	"context"
	"strings"
	"text/template"

	_ "embed"
)

var (
	//go:embed inspect_messages.gotmpl
	inspectMessagesTplContent string

	inspectMessagesTpl = template.Must(
		template.New("inspectMessages").
			Funcs(template.FuncMap{
				"trim": strings.Trim,
			}).
			Parse(inspectMessagesTplContent))
)

// Completer produces the next assistant turn for a conversation.
type Completer interface {
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}

// CompleteFunc adapts a function to the Completer interface.
type CompleteFunc func(ctx context.Context, model string, messages []Message) (string, error)

func (f CompleteFunc) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	return f(ctx, model, messages)
}

type ModelParams struct {
	MaxTokens        int     `json:"max_tokens,omitzero" yaml:"max_tokens,omitzero"`
	FrequencyPenalty float32 `json:"frequency_penalty,omitzero" yaml:"frequency_penalty,omitzero"`
	N                int     `json:"n,omitzero" yaml:"n,omitzero"`
	Temperature      float32 `json:"temperature,omitzero" yaml:"temperature,omitzero"`
	TopP             float32 `json:"top_p,omitzero" yaml:"top_p,omitzero"`
	PresencePenalty  float32 `json:"presence_penalty,omitzero" yaml:"presence_penalty,omitzero"`
	TopK             float32 `json:"top_k,omitzero" yaml:"top_k,omitzero"`
}

// InspectMessages renders messages for debug logs.
func InspectMessages(messages []Message) string {
	var sb strings.Builder
	if err := inspectMessagesTpl.Execute(&sb, messages); err != nil {
		return "inspect messages: " + err.Error()
	}
	return sb.String()
}
