package agent

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/haivivi/agentpatterns/pkg/genx"
)

func newChatPair(senderReplies, recipientReplies []string) (*ConversableAgent, *ConversableAgent, *mockCompleter, *mockCompleter) {
	sc := newMockCompleter(senderReplies...)
	rc := newMockCompleter(recipientReplies...)
	sender := &ConversableAgent{Name: "student", SystemMessage: "You are a student.", Model: "m", Completer: sc}
	recipient := &ConversableAgent{Name: "teacher", SystemMessage: "You are a teacher.", Model: "m", Completer: rc}
	return sender, recipient, sc, rc
}

func TestInitiateChat_MaxTurns(t *testing.T) {
	sender, recipient, sc, rc := newChatPair([]string{"why?"}, []string{"because", "that is all"})
	res, err := sender.InitiateChat(context.Background(), recipient, "what is 2+2?", ChatOptions{MaxTurns: 2})
	if err != nil {
		t.Fatalf("InitiateChat error: %v", err)
	}
	want := []ChatTurn{
		{Name: "student", Content: "what is 2+2?"},
		{Name: "teacher", Content: "because"},
		{Name: "student", Content: "why?"},
		{Name: "teacher", Content: "that is all"},
	}
	if !slices.Equal(res.History, want) {
		t.Errorf("history=%v", res.History)
	}
	if res.Turns != 2 || res.Summary != "that is all" {
		t.Errorf("turns=%d summary=%q", res.Turns, res.Summary)
	}

	// the recipient sees its own turns as assistant messages
	last := rc.calls[1]
	if r := roles(last); !slices.Equal(r, []genx.Role{genx.RoleSystem, genx.RoleUser, genx.RoleAssistant, genx.RoleUser}) {
		t.Errorf("recipient roles=%v", r)
	}
	if r := roles(sc.calls[0]); !slices.Equal(r, []genx.Role{genx.RoleSystem, genx.RoleAssistant, genx.RoleUser}) {
		t.Errorf("sender roles=%v", r)
	}
}

func TestInitiateChat_Termination(t *testing.T) {
	sender, recipient, _, rc := newChatPair([]string{"bye"}, []string{"hello"})
	recipient.IsTermination = func(s string) bool { return strings.Contains(s, "bye") }
	res, err := sender.InitiateChat(context.Background(), recipient, "hi", ChatOptions{MaxTurns: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.History) != 3 || res.Turns != 1 || res.Summary != "bye" {
		t.Errorf("res=%+v", res)
	}
	if len(rc.calls) != 1 {
		t.Errorf("recipient calls=%d", len(rc.calls))
	}
}

func TestInitiateChat_SenderTermination(t *testing.T) {
	sender, recipient, sc, _ := newChatPair(nil, []string{"TERMINATE"})
	sender.IsTermination = func(s string) bool { return s == "TERMINATE" }
	res, err := sender.InitiateChat(context.Background(), recipient, "hi", ChatOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.History) != 2 || res.Turns != 1 || len(sc.calls) != 0 {
		t.Errorf("res=%+v sender calls=%d", res, len(sc.calls))
	}
}

func TestInitiateChat_ReflectionSummary(t *testing.T) {
	sender, recipient, sc, _ := newChatPair([]string{"the answer is 4"}, []string{"4"})
	res, err := sender.InitiateChat(context.Background(), recipient, "2+2?", ChatOptions{
		MaxTurns: 1,
		Summary:  SummaryReflectionWithLLM,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Summary != "the answer is 4" {
		t.Errorf("summary=%q", res.Summary)
	}
	call := sc.calls[0]
	if got := call[len(call)-1]; got.Role != genx.RoleUser || got.Content != DefaultSummaryPrompt {
		t.Errorf("summary prompt=%+v", got)
	}
}

func TestInitiateChat_Errors(t *testing.T) {
	sender, recipient, _, _ := newChatPair(nil, nil)
	ctx := context.Background()
	if _, err := sender.InitiateChat(ctx, recipient, "x", ChatOptions{Summary: "poem"}); err == nil {
		t.Error("expected unknown summary method error")
	}
	if _, err := sender.InitiateChat(ctx, nil, "x", ChatOptions{}); err == nil {
		t.Error("expected nil recipient error")
	}
	if _, err := sender.InitiateChat(ctx, sender, "x", ChatOptions{}); err == nil {
		t.Error("expected same name error")
	}

	recipient.Completer = nil
	if _, err := sender.InitiateChat(ctx, recipient, "x", ChatOptions{}); !errors.Is(err, ErrNoCompleter) {
		t.Errorf("err=%v", err)
	}
}

func TestGenerateReply(t *testing.T) {
	mc := newMockCompleter("pong")
	a := &ConversableAgent{Name: "a", Completer: mc}
	got, err := a.GenerateReply(context.Background(), []genx.Message{genx.User("ping")})
	if err != nil {
		t.Fatal(err)
	}
	if got != "pong" {
		t.Errorf("got=%q", got)
	}
	if len(mc.calls[0]) != 1 {
		t.Errorf("no system message expected, got=%v", mc.calls[0])
	}
}
