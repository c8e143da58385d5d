// Package main is the entry point for the agentpatterns CLI.
//
// Usage:
//
//	agentpatterns [flags] <command> [args]
//
// Commands:
//
//	react    - Answer a question with the ReAct loop
//	reflect  - Refine a generation with the reflection loop
//	tool     - Answer with a single round of tool calls
//	chat     - Run a two-agent conversation
//	tools    - List builtin tools
//	models   - List models loaded from a models directory
//	config   - Configuration management (contexts)
package main

import (
	"fmt"
	"os"

	"github.com/haivivi/agentpatterns/cmd/agentpatterns/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
