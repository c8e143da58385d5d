package agent

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/haivivi/agentpatterns/pkg/genx"
	"github.com/haivivi/agentpatterns/pkg/tool"
	"github.com/haivivi/agentpatterns/pkg/tool/builtin"
)

// mockCompleter replays scripted responses in order and records the
// messages of every call.
type mockCompleter struct {
	responses []string
	// failAt makes the n-th call (1-based) fail; 0 never fails.
	failAt int
	calls  [][]genx.Message
}

func newMockCompleter(responses ...string) *mockCompleter {
	return &mockCompleter{responses: responses}
}

func (m *mockCompleter) Complete(ctx context.Context, model string, messages []genx.Message) (string, error) {
	m.calls = append(m.calls, slices.Clone(messages))
	n := len(m.calls)
	if n == m.failAt {
		return "", fmt.Errorf("%w: scripted failure", genx.ErrModelCall)
	}
	if n > len(m.responses) {
		return "", fmt.Errorf("unexpected call %d", n)
	}
	return m.responses[n-1], nil
}

func newArithmeticRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	r, err := tool.NewRegistry(builtin.Sum(), builtin.Multiply())
	if err != nil {
		t.Fatalf("NewRegistry error: %v", err)
	}
	return r
}

func roles(msgs []genx.Message) []genx.Role {
	out := make([]genx.Role, len(msgs))
	for i, m := range msgs {
		out[i] = m.Role
	}
	return out
}
