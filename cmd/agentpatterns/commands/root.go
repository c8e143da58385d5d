package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/haivivi/agentpatterns/pkg/cli"
	"github.com/haivivi/agentpatterns/pkg/genx/modelloader"
)

const appName = "agentpatterns"

var (
	// Global flags
	cfgFile     string
	contextName string
	modelsDir   string
	modelName   string
	promptsFile string
	outputFile  string
	outputFmt   string
	outputJSON  bool
	verbose     bool

	globalConfig *cli.Config
)

var rootCmd = &cobra.Command{
	Use:   "agentpatterns",
	Short: "Agentic design patterns on top of chat completion models",
	Long: `agentpatterns - run ReAct, reflection, tool calling and two-agent chat
loops against an OpenAI compatible or Gemini model.

Configuration is stored in ~/.agentpatterns/agentpatterns/ and supports
multiple contexts, similar to kubectl's context management. A directory of
model config files can be used instead with --models.

Examples:
  # Set up a context
  agentpatterns config add-context groq --provider openai \
    --base-url https://api.groq.com/openai/v1 --api-key '$GROQ_API_KEY' \
    --model llama-3.3-70b-versatile

  # Ask with tools
  agentpatterns react "What is (3 + 4) * 5?" --tools sum,multiply

  # Refine a generation, output as JSON
  agentpatterns reflect "Implement merge sort in Go" --steps 3 --json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		if p, err := cli.LoadDotEnv(); err != nil {
			return fmt.Errorf("load .env: %w", err)
		} else if p != "" {
			slog.Debug("loaded .env", "path", p)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", "config file (default is ~/.agentpatterns/agentpatterns/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&contextName, "context", "c", "", "context name to use")
	rootCmd.PersistentFlags().StringVar(&modelsDir, "models", "", "directory of model config files (overrides the context)")
	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "model name (default from the context)")
	rootCmd.PersistentFlags().StringVar(&promptsFile, "prompts", "", "prompts file (YAML), merged over the builtin prompts")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "format", "", "output format: yaml, json, raw or msgpack")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON (for piping)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(reactCmd)
	rootCmd.AddCommand(reflectCmd)
	rootCmd.AddCommand(toolCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(modelsCmd)
}

func initConfig() {
	var err error
	globalConfig, err = cli.LoadConfigWithPath(appName, cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
	modelloader.Verbose = verbose
}

func getConfig() *cli.Config {
	return globalConfig
}

// getContext returns the context configuration to use
func getContext() (*cli.Context, error) {
	cfg := getConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	ctx, err := cfg.ResolveContext(contextName)
	if err != nil {
		if contextName == "" {
			return nil, fmt.Errorf("no context specified. Use -c flag, --models, or set a default context with 'agentpatterns config use-context'")
		}
		return nil, err
	}
	return ctx, nil
}

func outputFormat() (cli.OutputFormat, error) {
	if outputJSON {
		return cli.FormatJSON, nil
	}
	return cli.ParseOutputFormat(outputFmt)
}

// outputResult writes result to stdout or the -o file.
func outputResult(result any) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	return cli.Output(result, cli.OutputOptions{
		Format: format,
		File:   outputFile,
	})
}

// printVerbose prints verbose output if enabled
func printVerbose(format string, args ...any) {
	cli.PrintVerbose(verbose, format, args...)
}
