// Package cli provides common utilities for the agentpatterns command.
//
// Configuration lives in ~/.agentpatterns/<app>/ and holds kubectl-like
// contexts, each naming a model provider with its credentials:
//
//	cfg, err := cli.LoadConfig("agentpatterns")
//	ctx, err := cfg.ResolveContext("")
//
// Results are written with Output in yaml, json, raw or msgpack form:
//
//	cli.Output(result, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    File:   outputPath,
//	})
package cli
