package agent

import "errors"

var (
	// ErrEmptyPrompt indicates a required prompt is empty.
	ErrEmptyPrompt = errors.New("agent: empty prompt")

	// ErrNoCompleter indicates an agent was built without a completer.
	ErrNoCompleter = errors.New("agent: no completer")
)
