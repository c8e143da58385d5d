package genx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiConvMessages(t *testing.T) {
	cfg, contents, err := geminiConvMessages([]Message{
		System("sys"),
		User("a"),
		User("b"),
		Assistant("c"),
		NewTaggedMessage(RoleUser, "d", "observation"),
	}, &ModelParams{MaxTokens: 64, Temperature: 0.2})
	if err != nil {
		t.Fatalf("conv error: %v", err)
	}
	if cfg.SystemInstruction == nil || cfg.SystemInstruction.Parts[0].Text != "sys" {
		t.Errorf("system=%v", cfg.SystemInstruction)
	}
	if cfg.MaxOutputTokens != 64 || cfg.Temperature == nil || *cfg.Temperature != 0.2 {
		t.Errorf("cfg=%+v", cfg)
	}
	if cfg.TopP != nil {
		t.Errorf("topP=%v", *cfg.TopP)
	}
	if len(contents) != 3 {
		t.Fatalf("contents=%d", len(contents))
	}
	if contents[0].Role != "user" || len(contents[0].Parts) != 2 {
		t.Errorf("contents[0]=%+v", contents[0])
	}
	if contents[1].Role != "model" {
		t.Errorf("contents[1].role=%s", contents[1].Role)
	}
	if contents[2].Parts[0].Text != "<observation> d </observation>" {
		t.Errorf("contents[2]=%q", contents[2].Parts[0].Text)
	}

	if _, _, err := geminiConvMessages([]Message{System("only")}, nil); !errors.Is(err, ErrNoMessages) {
		t.Errorf("err=%v", err)
	}
}

func TestGeminiCompleter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"<OK>"}]},"finishReason":"STOP"}]}`)
	}))
	defer srv.Close()

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test",
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  srv.Client(),
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	c := &GeminiCompleter{Client: client}
	got, err := c.Complete(context.Background(), "gemini-test", []Message{System("s"), User("u")})
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if got != "<OK>" {
		t.Errorf("got=%q", got)
	}
}
