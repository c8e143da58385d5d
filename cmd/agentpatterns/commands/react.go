package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/haivivi/agentpatterns/pkg/agent"
	"github.com/haivivi/agentpatterns/pkg/cli"
	"github.com/haivivi/agentpatterns/pkg/tool"
)

var (
	reactMaxRounds    int
	reactTools        []string
	reactHistory      int
	reactReportErrors bool
)

var reactCmd = &cobra.Command{
	Use:   "react <question>",
	Short: "Answer a question with the ReAct loop",
	Long: `Answer a question by letting the model think, call tools and read
their observations for up to --max-rounds rounds.

The question may be given inline, as @file, or as - to read stdin.

Examples:
  agentpatterns react "What is (3 + 4) * 5?" --tools sum,multiply
  agentpatterns react @question.txt --max-rounds 5 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runReact,
}

func init() {
	reactCmd.Flags().IntVar(&reactMaxRounds, "max-rounds", agent.DefaultMaxRounds, "maximum reasoning rounds")
	reactCmd.Flags().StringSliceVar(&reactTools, "tools", nil, "builtin tools to enable (default: all)")
	reactCmd.Flags().IntVar(&reactHistory, "history", 0, "bound the conversation history to N messages, system prompt pinned (0: unbounded)")
	reactCmd.Flags().BoolVar(&reactReportErrors, "report-tool-errors", false, "report failing tool calls to the model instead of aborting")
}

func runReact(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	question, err := cli.ReadText(args[0], cmd.InOrStdin())
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
	registry, err := buildRegistry(reactTools)
	if err != nil {
		return err
	}

	policy := tool.AbortOnError
	if reactReportErrors {
		policy = tool.ReportErrors
	}
	a, err := agent.NewReActAgent(completer, model, registry, prompts.ReAct,
		agent.WithMaxRounds(reactMaxRounds),
		agent.WithHistorySize(reactHistory),
		agent.WithToolErrorPolicy(policy),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := a.Run(ctx, question)
	if err != nil {
		return err
	}
	printVerbose("react finished in %s: state=%s rounds=%d", cli.FormatDuration(time.Since(start)), res.State, res.Rounds)
	return outputResult(res)
}
