// Package tool implements the tool-calling side of the agent loops: typed
// tool signatures, a name-unique registry, argument validation against the
// declared primitive kinds, and dispatch of the JSON tool calls a model emits
// inside <tool_call> tags.
//
// A signature is rendered to the model as
//
//	{"name":"sum","description":"...","parameters":{"properties":{"a":{"type":"integer"}}}}
//
// and a call is expected back as
//
//	{"name":"sum","arguments":{"a":2,"b":3},"id":0}
//
// Validation coerces each argument to the declared kind before the tool body
// runs. Results of one round are collected into an Observation keyed by call
// id.
package tool
