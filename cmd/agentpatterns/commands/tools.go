package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/agentpatterns/pkg/tool"
	"github.com/haivivi/agentpatterns/pkg/tool/builtin"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List builtin tools",
	Long: `List the builtin tools with the signatures the model sees.

Example:
  agentpatterns tools --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tools := builtin.Defaults()
		if outputJSON {
			sigs := make([]tool.Signature, len(tools))
			for i, t := range tools {
				sigs[i] = t.Signature
			}
			return outputResult(sigs)
		}
		w := cmd.OutOrStdout()
		for _, t := range tools {
			fmt.Fprint(w, t.String())
		}
		return nil
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models loaded from --models",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if modelsDir == "" {
			return fmt.Errorf("--models is required")
		}
		mux, err := loadModelMux(modelsDir)
		if err != nil {
			return err
		}
		return outputResult(mux.Names())
	},
}
