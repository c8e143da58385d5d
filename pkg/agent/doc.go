// Package agent implements the agent loops on top of a genx.Completer.
//
// # Loops
//
// ReActAgent alternates model turns and tool rounds. Each model turn may
// carry a <thought>, one or more <tool_call> bodies, or a final <response>:
//
//	question → model → tool calls → observation → model → ... → <response>
//
// If no <response> arrives within the round budget, one last unconstrained
// model call decides the output.
//
// ReflectionAgent runs a generate/critique cycle over two bounded histories
// until the critic answers with the <OK> sentinel or the step budget runs
// out.
//
// ToolAgent makes a single tool round: one call with the tool prompt, then
// one call on a separate answer history holding the user message and the
// observation.
//
// ConversableAgent pairs two named agents that take turns replying to each
// other until a termination predicate matches or the turn budget runs out.
//
// # Prompts
//
// Prompts are passed explicitly to each constructor. System prompts that
// list tools are text/template sources where {{ .Tools }} expands to the
// concatenated tool signatures:
//
//	prompts := agent.ReActPrompts{System: "You may call:\n<tools>\n{{ .Tools }}\n</tools>"}
//	a, err := agent.NewReActAgent(completer, "gpt-4o-mini", registry, prompts)
//
// Runs are sequential and blocking. An agent value may be reused for many
// runs; every run builds its own histories.
package agent
