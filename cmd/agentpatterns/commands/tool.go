package commands

import (
	"github.com/spf13/cobra"

	"github.com/haivivi/agentpatterns/pkg/agent"
	"github.com/haivivi/agentpatterns/pkg/cli"
)

var toolTools []string

var toolCmd = &cobra.Command{
	Use:   "tool <request>",
	Short: "Answer with a single round of tool calls",
	Long: `Ask the model for tool calls once, run them, and let the model answer
from the observation.

Example:
  agentpatterns tool "Please add 3 and 5" --tools add`,
	Args: cobra.ExactArgs(1),
	RunE: runTool,
}

func init() {
	toolCmd.Flags().StringSliceVar(&toolTools, "tools", nil, "builtin tools to enable (default: all)")
}

type toolOutput struct {
	Output string `json:"output" yaml:"output"`
}

func runTool(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	request, err := cli.ReadText(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	completer, model, err := resolveCompleter(ctx)
	if err != nil {
		return err
	}
	prompts, err := loadPrompts()
	if err != nil {
		return err
	}
	registry, err := buildRegistry(toolTools)
	if err != nil {
		return err
	}

	a, err := agent.NewToolAgent(completer, model, registry, prompts.Tool)
	if err != nil {
		return err
	}
	printVerbose("tool system prompt:\n%s", a.SystemPrompt())

	out, err := a.Run(ctx, request)
	if err != nil {
		return err
	}
	format, err := outputFormat()
	if err != nil {
		return err
	}
	if format == cli.FormatRaw {
		return outputResult(out)
	}
	return outputResult(toolOutput{Output: out})
}
