package tool

import "errors"

var (
	// ErrUnknownTool is returned when a call names a tool that is not
	// registered.
	ErrUnknownTool = errors.New("tool: unknown tool")

	// ErrInvalidArgument is returned when an argument cannot be coerced to
	// its declared kind.
	ErrInvalidArgument = errors.New("tool: invalid argument")

	// ErrUnknownParameter is returned when a call carries an argument the
	// signature does not declare.
	ErrUnknownParameter = errors.New("tool: unknown parameter")

	// ErrMissingArgument is returned when a required parameter is absent.
	ErrMissingArgument = errors.New("tool: missing argument")

	// ErrDuplicateName is returned when registering a second tool with the
	// same name.
	ErrDuplicateName = errors.New("tool: duplicate name")

	// ErrUnsupportedType is returned when a tool's parameters cannot be
	// described with the primitive kinds.
	ErrUnsupportedType = errors.New("tool: unsupported parameter type")

	// ErrInvalidToolCall is returned when a <tool_call> body is not a call.
	ErrInvalidToolCall = errors.New("tool: invalid tool call")
)
