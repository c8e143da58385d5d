package commands

import (
	_ "embed"
	"fmt"

	"github.com/haivivi/agentpatterns/pkg/agent"
	"github.com/haivivi/agentpatterns/pkg/cli"
)

//go:embed prompts.yaml
var defaultPromptsYAML []byte

func defaultPrompts() (*agent.Prompts, error) {
	p, err := agent.ParsePrompts(defaultPromptsYAML)
	if err != nil {
		return nil, fmt.Errorf("builtin prompts: %w", err)
	}
	return p, nil
}

// loadPrompts returns the builtin prompts overridden by the --prompts file,
// or by ~/.agentpatterns/agentpatterns/prompts.yaml when it exists.
func loadPrompts() (agent.Prompts, error) {
	base, err := defaultPrompts()
	if err != nil {
		return agent.Prompts{}, err
	}
	path := promptsFile
	if path == "" {
		if paths, err := cli.NewPaths(appName); err == nil && cli.Exists(paths.PromptsFile()) {
			path = paths.PromptsFile()
		}
	}
	if path == "" {
		return *base, nil
	}
	override, err := agent.LoadPrompts(path)
	if err != nil {
		return agent.Prompts{}, err
	}
	printVerbose("prompts loaded from %s", path)
	return override.Merge(*base), nil
}
