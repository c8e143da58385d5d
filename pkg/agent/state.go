package agent

// ReActState is the position of a ReAct run in its loop.
type ReActState string

const (
	ReActAwaitingModel     ReActState = "awaiting_model"
	ReActHaveThought       ReActState = "have_thought"
	ReActHaveToolCalls     ReActState = "have_tool_calls"
	ReActHaveFinalResponse ReActState = "have_final_response"
	ReActRoundsExhausted   ReActState = "rounds_exhausted"
)

// Terminal reports whether s ends a run.
func (s ReActState) Terminal() bool {
	return s == ReActHaveFinalResponse || s == ReActRoundsExhausted
}

// ReflectionState is the terminal state of a reflection run.
type ReflectionState string

const (
	ReflectionConverged      ReflectionState = "converged"
	ReflectionStepsExhausted ReflectionState = "steps_exhausted"
)
