package genx

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/param"
)

var _ Completer = (*OpenAICompleter)(nil)

// OpenAICompleter implements Completer with the OpenAI chat completions API
// and any server compatible with it.
type OpenAICompleter struct {
	Client *openai.Client `json:"-"`

	// Model overrides the model name passed to Complete when set.
	Model string `json:"model,omitzero"`

	Params *ModelParams `json:"params,omitzero"`

	// UseSystemRole sends system messages with the system role instead of
	// the developer role.
	UseSystemRole bool `json:"use_system_role,omitzero"`

	ExtraFields map[string]any `json:"extra_fields,omitzero"`
}

func (c *OpenAICompleter) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	if c.Model != "" {
		model = c.Model
	}
	if len(messages) == 0 {
		return "", modelCallError(model, ErrNoMessages)
	}
	params, err := c.chatCompletion(model, messages)
	if err != nil {
		return "", modelCallError(model, err)
	}
	resp, err := c.Client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", modelCallError(model, err)
	}
	if len(resp.Choices) == 0 {
		return "", modelCallError(model, errors.New("no choices"))
	}
	choice := resp.Choices[0]
	if choice.Message.Refusal != "" {
		return "", modelCallError(model, fmt.Errorf("blocked: %s", choice.Message.Refusal))
	}
	return choice.Message.Content, nil
}

func (c *OpenAICompleter) chatCompletion(model string, messages []Message) (openai.ChatCompletionNewParams, error) {
	msgs, err := c.convMessages(messages)
	if err != nil {
		return openai.ChatCompletionNewParams{}, err
	}
	params := openai.ChatCompletionNewParams{
		Messages: msgs,
		Model:    model,
	}
	if mp := c.Params; mp != nil {
		if mp.FrequencyPenalty > 0 {
			params.FrequencyPenalty = param.NewOpt(float64(mp.FrequencyPenalty))
		}
		if mp.MaxTokens > 0 {
			params.MaxCompletionTokens = param.NewOpt(int64(mp.MaxTokens))
		}
		if mp.N > 0 {
			params.N = param.NewOpt(int64(mp.N))
		}
		if mp.Temperature > 0 {
			params.Temperature = param.NewOpt(float64(mp.Temperature))
		}
		if mp.TopP > 0 {
			params.TopP = param.NewOpt(float64(mp.TopP))
		}
		if mp.PresencePenalty > 0 {
			params.PresencePenalty = param.NewOpt(float64(mp.PresencePenalty))
		}
	}
	if len(c.ExtraFields) > 0 {
		params.SetExtraFields(c.ExtraFields)
	}
	return params, nil
}

func (c *OpenAICompleter) convMessages(messages []Message) ([]openai.ChatCompletionMessageParamUnion, error) {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		text := msg.Text()
		switch msg.Role {
		case RoleSystem:
			if c.UseSystemRole {
				out = append(out, openai.SystemMessage(text))
			} else {
				out = append(out, openai.DeveloperMessage(text))
			}
		case RoleUser:
			out = append(out, openai.UserMessage(text))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(text))
		default:
			return nil, fmt.Errorf("unexpected message role: %q", msg.Role)
		}
	}
	return out, nil
}
