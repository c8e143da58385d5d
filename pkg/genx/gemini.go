package genx

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/genai"
)

var _ Completer = (*GeminiCompleter)(nil)

// GeminiCompleter implements Completer using Google Gemini API.
type GeminiCompleter struct {
	Client *genai.Client `json:"-"`

	// Model overrides the model name passed to Complete when set. It should
	// not start with "models/".
	Model string `json:"model,omitzero"`

	Params *ModelParams `json:"params,omitzero"`
}

func (c *GeminiCompleter) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	if c.Model != "" {
		model = c.Model
	}
	cfg, contents, err := geminiConvMessages(messages, c.Params)
	if err != nil {
		return "", modelCallError(model, err)
	}
	resp, err := c.Client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		if e, ok := err.(*apierror.APIError); ok {
			err = e.Unwrap()
		}
		return "", modelCallError(model, err)
	}
	if len(resp.Candidates) == 0 {
		return "", modelCallError(model, errors.New("no candidates"))
	}
	t := resp.Candidates[0]
	if t.Content == nil {
		return "", modelCallError(model, fmt.Errorf("no content, finish reason: %s", t.FinishReason))
	}
	var sb strings.Builder
	for _, p := range t.Content.Parts {
		if p.Text != "" && !p.Thought {
			sb.WriteString(p.Text)
		}
	}
	return sb.String(), nil
}

// geminiConvMessages moves system messages into the system instruction,
// maps assistant to the "model" role and merges consecutive messages of the
// same role, which the Gemini API requires to alternate.
func geminiConvMessages(messages []Message, mp *ModelParams) (*genai.GenerateContentConfig, []*genai.Content, error) {
	cfg := genai.GenerateContentConfig{
		SafetySettings: []*genai.SafetySetting{
			{
				Category:  genai.HarmCategoryHateSpeech,
				Threshold: genai.HarmBlockThresholdOff,
			},
			{
				Category:  genai.HarmCategoryHarassment,
				Threshold: genai.HarmBlockThresholdOff,
			},
			{
				Category:  genai.HarmCategoryDangerousContent,
				Threshold: genai.HarmBlockThresholdOff,
			},
		},
	}
	if mp != nil {
		cfg.MaxOutputTokens = int32(mp.MaxTokens)
		if mp.Temperature > 0 {
			cfg.Temperature = &mp.Temperature
		}
		if mp.TopP > 0 {
			cfg.TopP = &mp.TopP
		}
		if mp.TopK > 0 {
			cfg.TopK = &mp.TopK
		}
	}

	var (
		prompts  []*genai.Part
		contents []*genai.Content
		last     *genai.Content
	)
	for _, msg := range messages {
		var role string
		switch msg.Role {
		case RoleSystem:
			prompts = append(prompts, genai.NewPartFromText(msg.Text()))
			continue
		case RoleUser:
			role = "user"
		case RoleAssistant:
			role = "model"
		default:
			return nil, nil, fmt.Errorf("unexpected message role: %q", msg.Role)
		}
		part := genai.NewPartFromText(msg.Text())
		if last != nil && last.Role == role {
			last.Parts = append(last.Parts, part)
			continue
		}
		last = &genai.Content{Role: role, Parts: []*genai.Part{part}}
		contents = append(contents, last)
	}
	if len(prompts) > 0 {
		cfg.SystemInstruction = &genai.Content{Parts: prompts}
	}
	if len(contents) == 0 {
		return nil, nil, ErrNoMessages
	}
	return &cfg, contents, nil
}
