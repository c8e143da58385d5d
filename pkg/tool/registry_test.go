package tool

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
)

type mulArgs struct {
	A int `json:"a"`
	B int `json:"b"`
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(
		MustNew("sum", "Adds", sum),
		MustNew("multiply", "Multiplies", func(_ context.Context, a mulArgs) (int, error) { return a.A * a.B, nil }),
		MustNew("fail", "Always fails", func(context.Context, struct{}) (any, error) { return nil, errors.New("boom") }),
	)
	if err != nil {
		t.Fatalf("NewRegistry error: %v", err)
	}
	return r
}

func TestRegistry(t *testing.T) {
	r := newTestRegistry(t)
	if r.Len() != 3 {
		t.Errorf("len=%d", r.Len())
	}
	if got := r.Names(); !slices.Equal(got, []string{"sum", "multiply", "fail"}) {
		t.Errorf("names=%v", got)
	}
	if err := r.Register(MustNew("sum", "again", sum)); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("err=%v", err)
	}
	if _, err := r.Get("nope"); !errors.Is(err, ErrUnknownTool) {
		t.Errorf("err=%v", err)
	}
	tl, err := r.Get("multiply")
	if err != nil || tl.Name != "multiply" {
		t.Errorf("tool=%v err=%v", tl, err)
	}

	desc := r.DescribeAll()
	if !strings.HasPrefix(desc, `{"name":"sum"`) {
		t.Errorf("describe=%s", desc)
	}
	if i, j := strings.Index(desc, `"sum"`), strings.Index(desc, `"multiply"`); i > j {
		t.Errorf("describe out of order: %s", desc)
	}
}

func TestNewRegistry_Duplicate(t *testing.T) {
	_, err := NewRegistry(MustNew("sum", "", sum), MustNew("sum", "", sum))
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("err=%v", err)
	}
}

func TestRegistry_Execute(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	got, err := r.Execute(ctx, &Call{Name: "sum", Arguments: map[string]any{"a": 2, "b": 3}})
	if err != nil || got != 5 {
		t.Errorf("got=%v err=%v", got, err)
	}
	if _, err := r.Execute(ctx, &Call{Name: "sum", Arguments: map[string]any{"a": "abc", "b": 3}}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err=%v", err)
	}
	if _, err := r.Execute(ctx, &Call{Name: "sum", Arguments: map[string]any{"a": 1, "b": 2, "c": 3}}); !errors.Is(err, ErrUnknownParameter) {
		t.Errorf("err=%v", err)
	}
	if _, err := r.Execute(ctx, &Call{Name: "sum", Arguments: map[string]any{"a": 1}}); !errors.Is(err, ErrMissingArgument) {
		t.Errorf("err=%v", err)
	}
	if _, err := r.Execute(ctx, &Call{Name: "divide"}); !errors.Is(err, ErrUnknownTool) {
		t.Errorf("err=%v", err)
	}
}

func TestRegistry_Dispatch(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	t.Run("sum", func(t *testing.T) {
		obs, err := r.Dispatch(ctx, []string{`{"name":"sum","arguments":{"a":2,"b":3},"id":0}`}, AbortOnError)
		if err != nil {
			t.Fatalf("Dispatch error: %v", err)
		}
		if got := obs.String(); got != "{0: 5}" {
			t.Errorf("got=%s", got)
		}
	})

	t.Run("two calls", func(t *testing.T) {
		obs, err := r.Dispatch(ctx, []string{
			`{"name":"multiply","arguments":{"a":"4","b":5},"id":1}`,
			`{"name":"sum","arguments":{"a":1,"b":1},"id":0}`,
		}, AbortOnError)
		if err != nil {
			t.Fatalf("Dispatch error: %v", err)
		}
		if got := obs.String(); got != "{0: 2, 1: 20}" {
			t.Errorf("got=%s", got)
		}
	})

	t.Run("duplicate id overwrites", func(t *testing.T) {
		obs, err := r.Dispatch(ctx, []string{
			`{"name":"sum","arguments":{"a":1,"b":1},"id":0}`,
			`{"name":"sum","arguments":{"a":2,"b":2},"id":0}`,
		}, AbortOnError)
		if err != nil {
			t.Fatalf("Dispatch error: %v", err)
		}
		if got := obs.String(); got != "{0: 4}" {
			t.Errorf("got=%s", got)
		}
	})

	t.Run("abort", func(t *testing.T) {
		_, err := r.Dispatch(ctx, []string{
			`{"name":"sum","arguments":{"a":1,"b":1},"id":0}`,
			`{"name":"fail","arguments":{},"id":1}`,
		}, AbortOnError)
		if err == nil || !strings.Contains(err.Error(), "boom") {
			t.Errorf("err=%v", err)
		}
	})

	t.Run("report", func(t *testing.T) {
		obs, err := r.Dispatch(ctx, []string{
			`{"name":"fail","arguments":{},"id":0}`,
			`{"name":"sum","arguments":{"a":1,"b":1},"id":1}`,
			`{"arguments":{"a":1}}`,
		}, ReportErrors)
		if err != nil {
			t.Fatalf("Dispatch error: %v", err)
		}
		if got := obs[0]; got != "error: boom" {
			t.Errorf("obs[0]=%v", got)
		}
		if got := obs[1]; got != 2 {
			t.Errorf("obs[1]=%v", got)
		}
		if s, _ := obs[-3].(string); !strings.HasPrefix(s, "error: ") {
			t.Errorf("obs[-3]=%v", obs[-3])
		}
	})

	t.Run("unparseable body keeps its own key", func(t *testing.T) {
		obs, err := r.Dispatch(ctx, []string{
			`not json at all`,
			`{"name":"sum","arguments":{"a":2,"b":3},"id":0}`,
		}, ReportErrors)
		if err != nil {
			t.Fatalf("Dispatch error: %v", err)
		}
		if len(obs) != 2 {
			t.Fatalf("obs=%v", obs)
		}
		if got := obs[0]; got != 5 {
			t.Errorf("obs[0]=%v", got)
		}
		if s, _ := obs[-1].(string); !strings.HasPrefix(s, "error: ") {
			t.Errorf("obs[-1]=%v", obs[-1])
		}
		if got := obs.String(); !strings.HasPrefix(got, `{-1: "error: `) || !strings.HasSuffix(got, ", 0: 5}") {
			t.Errorf("got=%s", got)
		}
	})

	t.Run("large integer", func(t *testing.T) {
		type idArgs struct {
			X int64 `json:"x"`
		}
		ids, err := NewRegistry(MustNew("id", "Returns x", func(_ context.Context, a idArgs) (int64, error) { return a.X, nil }))
		if err != nil {
			t.Fatal(err)
		}
		obs, err := ids.Dispatch(ctx, []string{`{"name":"id","arguments":{"x":9007199254740993},"id":0}`}, AbortOnError)
		if err != nil {
			t.Fatalf("Dispatch error: %v", err)
		}
		if got := obs.String(); got != "{0: 9007199254740993}" {
			t.Errorf("got=%s", got)
		}
	})
}
