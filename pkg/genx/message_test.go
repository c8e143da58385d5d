package genx

import "testing"

func TestMessage_Text(t *testing.T) {
	tests := []struct {
		msg  Message
		want string
	}{
		{User("hello"), "hello"},
		{NewTaggedMessage(RoleUser, "What is 2+3?", "question"), "<question> What is 2+3? </question>"},
		{NewTaggedMessage(RoleUser, "{0: 5}", "observation"), "<observation> {0: 5} </observation>"},
		{System(""), ""},
	}
	for _, tt := range tests {
		if got := tt.msg.Text(); got != tt.want {
			t.Errorf("got=%q, want %q", got, tt.want)
		}
	}
}

func TestRole(t *testing.T) {
	for _, r := range []Role{RoleSystem, RoleUser, RoleAssistant} {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if Role("tool").Valid() {
		t.Error("tool should not be valid")
	}
	if Assistant("x").Role != RoleAssistant {
		t.Error("Assistant role mismatch")
	}
}
