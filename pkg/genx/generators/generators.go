// Package generators provides a multiplexer for genx.Completer routing.
package generators

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/haivivi/agentpatterns/pkg/genx"
)

var _ genx.Completer = (*Mux)(nil)

// DefaultMux is the default completer multiplexer.
var DefaultMux = NewMux()

// Handle registers a completer for the given name to the default mux.
func Handle(name string, c genx.Completer) error {
	return DefaultMux.Handle(name, c)
}

// Complete completes using the default mux.
func Complete(ctx context.Context, name string, messages []genx.Message) (string, error) {
	return DefaultMux.Complete(ctx, name, messages)
}

// Names lists the names registered to the default mux.
func Names() []string {
	return DefaultMux.Names()
}

// Mux is a completer multiplexer that routes requests to registered
// completers by model name.
type Mux struct {
	mu         sync.RWMutex
	completers map[string]genx.Completer
}

// NewMux creates a new completer multiplexer.
func NewMux() *Mux {
	return &Mux{
		completers: make(map[string]genx.Completer),
	}
}

// Handle registers a completer for the given name.
// Returns an error if a completer is already registered for the name.
func (m *Mux) Handle(name string, c genx.Completer) error {
	if name == "" {
		return fmt.Errorf("completer name is empty")
	}
	if c == nil {
		return fmt.Errorf("completer for %s is nil", name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.completers[name]; ok {
		return fmt.Errorf("completer already registered for %s", name)
	}
	m.completers[name] = c
	return nil
}

// Complete looks up the completer registered under name and calls it.
func (m *Mux) Complete(ctx context.Context, name string, messages []genx.Message) (string, error) {
	c, err := m.get(name)
	if err != nil {
		return "", err
	}
	return c.Complete(ctx, name, messages)
}

// Names returns the registered names, sorted.
func (m *Mux) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.completers))
	for name := range m.completers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (m *Mux) get(name string) (genx.Completer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.completers[name]
	if !ok {
		return nil, fmt.Errorf("%w: completer not found for %s", genx.ErrModelCall, name)
	}
	return c, nil
}
