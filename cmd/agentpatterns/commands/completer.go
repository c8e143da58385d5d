package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/haivivi/agentpatterns/pkg/cli"
	"github.com/haivivi/agentpatterns/pkg/genx"
	"github.com/haivivi/agentpatterns/pkg/genx/generators"
	"github.com/haivivi/agentpatterns/pkg/genx/modelloader"
	"github.com/haivivi/agentpatterns/pkg/tool"
	"github.com/haivivi/agentpatterns/pkg/tool/builtin"
)

// resolveCompleter returns the completer and model name for a command.
// With --models the model configs in that directory are loaded into a mux
// and --model picks one of them; otherwise the resolved context is used.
func resolveCompleter(ctx context.Context) (genx.Completer, string, error) {
	if modelsDir != "" {
		return loadModels(modelsDir, modelName)
	}
	cctx, err := getContext()
	if err != nil {
		return nil, "", err
	}
	return contextCompleter(ctx, cctx, modelName)
}

func loadModelMux(dir string) (*generators.Mux, error) {
	mux := generators.NewMux()
	names, err := modelloader.LoadFromDir(mux, dir)
	if err != nil {
		return nil, fmt.Errorf("load models: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no models found in %s", dir)
	}
	return mux, nil
}

func loadModels(dir, model string) (genx.Completer, string, error) {
	mux, err := loadModelMux(dir)
	if err != nil {
		return nil, "", err
	}
	if model == "" {
		names := mux.Names()
		if len(names) > 1 {
			return nil, "", fmt.Errorf("--model is required, available: %s", strings.Join(names, ", "))
		}
		model = names[0]
	}
	printVerbose("using model %q from %s", model, dir)
	return mux, model, nil
}

func contextCompleter(ctx context.Context, cctx *cli.Context, model string) (genx.Completer, string, error) {
	if model == "" {
		model = cctx.Model
	}
	if model == "" {
		return nil, "", fmt.Errorf("context %q has no model, use --model", cctx.Name)
	}

	provider := cctx.ProviderName()
	apiKey := cctx.ResolvedAPIKey()
	if apiKey == "" {
		apiKey = os.Getenv(strings.ToUpper(provider) + "_API_KEY")
	}
	if apiKey == "" {
		return nil, "", fmt.Errorf("context %q has no api key", cctx.Name)
	}

	var c genx.Completer
	switch provider {
	case cli.ProviderOpenAI:
		c = &genx.OpenAICompleter{Client: modelloader.NewOpenAIClient(apiKey, cctx.BaseURL)}
	case cli.ProviderGemini:
		client, err := modelloader.NewGeminiClient(ctx, apiKey, cctx.BaseURL)
		if err != nil {
			return nil, "", fmt.Errorf("create gemini client: %w", err)
		}
		c = &genx.GeminiCompleter{Client: client}
	default:
		return nil, "", fmt.Errorf("unknown provider %q", cctx.Provider)
	}
	printVerbose("using %s model %q from context %q", provider, model, cctx.Name)
	return withTimeout(c, time.Duration(cctx.Timeout)*time.Second), model, nil
}

// withTimeout bounds every model call made through c. A zero timeout
// returns c unchanged.
func withTimeout(c genx.Completer, timeout time.Duration) genx.Completer {
	if timeout <= 0 {
		return c
	}
	return genx.CompleteFunc(func(ctx context.Context, model string, messages []genx.Message) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return c.Complete(ctx, model, messages)
	})
}

// buildRegistry registers the named builtin tools, or all of them when
// names is empty.
func buildRegistry(names []string) (*tool.Registry, error) {
	tools, err := builtin.ByName(names...)
	if err != nil {
		return nil, err
	}
	return tool.NewRegistry(tools...)
}
