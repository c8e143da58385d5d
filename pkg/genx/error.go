package genx

import (
	"errors"
	"fmt"
)

// ErrModelCall wraps every error returned by a Completer.
var ErrModelCall = errors.New("genx: model call failed")

// ErrNoMessages is returned when a completion is requested without messages.
var ErrNoMessages = errors.New("genx: no messages")

// modelCallError wraps err with ErrModelCall unless it already is one.
func modelCallError(model string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrModelCall) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrModelCall, model, err)
}
