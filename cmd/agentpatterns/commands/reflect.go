package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/haivivi/agentpatterns/pkg/agent"
	"github.com/haivivi/agentpatterns/pkg/cli"
)

var (
	reflectSteps  int
	reflectWindow int
)

var reflectCmd = &cobra.Command{
	Use:   "reflect <request>",
	Short: "Refine a generation with the reflection loop",
	Long: `Generate a response and refine it with up to --steps critique rounds.
The loop stops early when the critic answers <OK>.

Examples:
  agentpatterns reflect "Implement merge sort in Go" --steps 3
  echo "Write a haiku about Go" | agentpatterns reflect - --format raw`,
	Args: cobra.ExactArgs(1),
	RunE: runReflect,
}

func init() {
	reflectCmd.Flags().IntVar(&reflectSteps, "steps", agent.DefaultSteps, "maximum generate/reflect steps")
	reflectCmd.Flags().IntVar(&reflectWindow, "window", agent.DefaultWindow, "messages kept in each history, system prompt included")
}

type reflectOutput struct {
	Output  string                `json:"output" yaml:"output"`
	State   agent.ReflectionState `json:"state" yaml:"state"`
	Steps   int                   `json:"steps" yaml:"steps"`
	Elapsed string                `json:"elapsed" yaml:"elapsed"`
}

func runReflect(cmd *cobra.Command, args []string) error {
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

	stderr := cmd.ErrOrStderr()
	a, err := agent.NewReflectionAgent(completer, model, prompts.Reflection,
		agent.WithSteps(reflectSteps),
		agent.WithWindow(reflectWindow),
		agent.WithStepHook(func(step, total int) {
			if verbose {
				_ = cli.StepBanner(stderr, step, total)
			}
		}),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := a.Run(ctx, request)
	if err != nil {
		return err
	}
	if verbose {
		_ = cli.Banner(stderr, "FINAL RESPONSE")
	}
	format, err := outputFormat()
	if err != nil {
		return err
	}
	if format == cli.FormatRaw {
		return outputResult(res.Output)
	}
	return outputResult(reflectOutput{
		Output:  res.Output,
		State:   res.State,
		Steps:   res.Steps,
		Elapsed: cli.FormatDuration(time.Since(start)),
	})
}
