// Package genx is the boundary between the agent loops and the chat models.
//
// # Messages
//
// A Message is an immutable (Role, Content, Tag) value. When Tag is set the
// content is sent to the model wrapped in that tag:
//
//	genx.NewTaggedMessage(genx.RoleUser, "What is 2+3?", "question").Text()
//	// "<question> What is 2+3? </question>"
//
// # Completers
//
// A Completer turns an ordered list of messages into the text of the next
// assistant turn:
//
//	type Completer interface {
//	    Complete(ctx context.Context, model string, messages []Message) (string, error)
//	}
//
// OpenAICompleter and GeminiCompleter call the respective chat APIs.
// Every provider failure is wrapped with ErrModelCall and returned as is;
// nothing here retries.
//
// # Package Structure
//
//   - genx/generators: route model names to completers (Mux)
//   - genx/modelloader: register completers from YAML/JSON model files
package genx
