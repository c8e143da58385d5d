package genx

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCompleteFunc(t *testing.T) {
	var c Completer = CompleteFunc(func(_ context.Context, model string, msgs []Message) (string, error) {
		return model + ":" + msgs[len(msgs)-1].Content, nil
	})
	got, err := c.Complete(context.Background(), "m", []Message{User("hi")})
	if err != nil || got != "m:hi" {
		t.Errorf("got=%q err=%v", got, err)
	}
}

func TestInspectMessages(t *testing.T) {
	got := InspectMessages([]Message{
		System("be brief"),
		NewTaggedMessage(RoleUser, "2+3?", "question"),
	})
	for _, want := range []string{"### [0] system", "be brief", "### [1] user <question>", "2+3?"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestModelCallError(t *testing.T) {
	err := modelCallError("gpt", errors.New("boom"))
	if !errors.Is(err, ErrModelCall) {
		t.Errorf("err=%v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("err=%v", err)
	}
	if again := modelCallError("gpt", err); again != err {
		t.Errorf("double wrapped: %v", again)
	}
	if modelCallError("gpt", nil) != nil {
		t.Error("nil should stay nil")
	}
}
