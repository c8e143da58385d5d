package builtin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/haivivi/agentpatterns/pkg/tool"
)

func TestArithmetic(t *testing.T) {
	r, err := tool.NewRegistry(Sum(), Multiply(), Add())
	if err != nil {
		t.Fatalf("NewRegistry error: %v", err)
	}
	obs, err := r.Dispatch(context.Background(), []string{
		`{"name":"sum","arguments":{"a":2,"b":3},"id":0}`,
		`{"name":"multiply","arguments":{"a":"4","b":5},"id":1}`,
		`{"name":"add","arguments":{"x":3,"y":5},"id":2}`,
	}, tool.AbortOnError)
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if got := obs.String(); got != "{0: 5, 1: 20, 2: 8}" {
		t.Errorf("got=%s", got)
	}
}

func TestSignatures(t *testing.T) {
	got := Add().String()
	if !strings.Contains(got, `"parameters":{"properties":{"x":{"type":"integer"},"y":{"type":"integer"}}}`) {
		t.Errorf("got=%s", got)
	}
	got = (&HTTPGet{}).Tool().String()
	if !strings.Contains(got, `{"url":{"type":"string"},"jq":{"type":"string"}}`) {
		t.Errorf("got=%s", got)
	}
}

func TestByName(t *testing.T) {
	tools, err := ByName("multiply", "sum")
	if err != nil {
		t.Fatalf("ByName error: %v", err)
	}
	if len(tools) != 2 || tools[0].Name != "multiply" || tools[1].Name != "sum" {
		t.Errorf("tools=%v", tools)
	}
	all, err := ByName()
	if err != nil || len(all) != len(Defaults()) {
		t.Errorf("all=%d err=%v", len(all), err)
	}
	if _, err := ByName("divide"); !errors.Is(err, tool.ErrUnknownTool) {
		t.Errorf("err=%v", err)
	}
}

func TestHTTPGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"city":"Paris","temp":{"c":21}}`))
		case "/text":
			w.Write([]byte("plain"))
		case "/big":
			w.Write([]byte(strings.Repeat("x", MaxResponseSize+10)))
		default:
			http.Error(w, "nope", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	tl := (&HTTPGet{Client: srv.Client()}).Tool()
	ctx := context.Background()
	run := func(args map[string]any) (any, error) {
		return tl.Run(ctx, &tool.Call{Name: "http_get", Arguments: args})
	}

	t.Run("json", func(t *testing.T) {
		got, err := run(map[string]any{"url": srv.URL + "/json"})
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		m, ok := got.(map[string]any)
		if !ok || m["city"] != "Paris" {
			t.Errorf("got=%v", got)
		}
	})

	t.Run("jq", func(t *testing.T) {
		got, err := run(map[string]any{"url": srv.URL + "/json", "jq": ".temp.c"})
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		if got != 21.0 {
			t.Errorf("got=%#v", got)
		}
	})

	t.Run("bad jq", func(t *testing.T) {
		if _, err := run(map[string]any{"url": srv.URL + "/json", "jq": ".["}); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("text", func(t *testing.T) {
		got, err := run(map[string]any{"url": srv.URL + "/text"})
		if err != nil || got != "plain" {
			t.Errorf("got=%v err=%v", got, err)
		}
	})

	t.Run("status", func(t *testing.T) {
		_, err := run(map[string]any{"url": srv.URL + "/missing"})
		if err == nil || !strings.Contains(err.Error(), "404") {
			t.Errorf("err=%v", err)
		}
	})

	t.Run("too large", func(t *testing.T) {
		if _, err := run(map[string]any{"url": srv.URL + "/big"}); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("missing url", func(t *testing.T) {
		if _, err := run(map[string]any{}); !errors.Is(err, tool.ErrMissingArgument) {
			t.Errorf("err=%v", err)
		}
	})
}
