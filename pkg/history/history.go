// Package history provides bounded chat histories for agent loops.
//
// A History keeps at most Max items. When it is full, Append evicts one item
// before adding the new one:
//
//   - EvictOldest drops the oldest item (a plain sliding window).
//   - PinFirst keeps the first item forever and drops the oldest of the rest,
//     which is how a system prompt survives a long conversation.
//
// Histories are not safe for concurrent use; each agent run owns its own.
package history

import (
	"errors"
	"fmt"
)

// Policy selects which item is evicted when a History is full.
type Policy int

const (
	// EvictOldest evicts the item at index 0.
	EvictOldest Policy = iota
	// PinFirst evicts the item at index 1 and never the first item.
	PinFirst
)

func (p Policy) String() string {
	switch p {
	case EvictOldest:
		return "evict_oldest"
	case PinFirst:
		return "pin_first"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ErrInvalidSize is returned by New when the bound leaves no room for
// items under the chosen policy.
var ErrInvalidSize = errors.New("history: invalid size")

// History is an ordered, bounded sequence of items.
type History[T any] struct {
	max    int
	policy Policy

	pinned    T
	hasPinned bool

	// ring of the unpinned items; nil when unbounded
	ring       []T
	head, tail int64

	// unbounded storage
	items []T
}

// New creates a History holding at most max items. A max of zero or less
// means unbounded. The initial items are appended in order through the same
// eviction path as Append, so the bound holds from the start.
func New[T any](max int, policy Policy, initial ...T) (*History[T], error) {
	switch policy {
	case EvictOldest, PinFirst:
	default:
		return nil, fmt.Errorf("history: unknown policy %v", policy)
	}
	if max < 0 {
		max = 0
	}
	if policy == PinFirst && max == 1 {
		return nil, fmt.Errorf("%w: pin_first needs room for at least 2 items", ErrInvalidSize)
	}
	h := &History[T]{max: max, policy: policy}
	if max > 0 {
		n := max
		if policy == PinFirst {
			n--
		}
		h.ring = make([]T, n)
	}
	for _, v := range initial {
		h.Append(v)
	}
	return h, nil
}

// MustNew is like New but panics on error.
func MustNew[T any](max int, policy Policy, initial ...T) *History[T] {
	h, err := New(max, policy, initial...)
	if err != nil {
		panic(err)
	}
	return h
}

// Append adds v to the end of the history, evicting one item first if the
// history is full.
func (h *History[T]) Append(v T) {
	if h.policy == PinFirst && !h.hasPinned {
		h.pinned = v
		h.hasPinned = true
		return
	}
	if h.ring == nil {
		h.items = append(h.items, v)
		return
	}
	h.ring[h.tail%int64(len(h.ring))] = v
	h.tail++
	if h.tail-h.head > int64(len(h.ring)) {
		h.head = h.tail - int64(len(h.ring))
	}
}

// Items returns a copy of the items, oldest first.
func (h *History[T]) Items() []T {
	out := make([]T, 0, h.Len())
	if h.hasPinned {
		out = append(out, h.pinned)
	}
	if h.ring == nil {
		return append(out, h.items...)
	}
	for i := h.head; i < h.tail; i++ {
		out = append(out, h.ring[i%int64(len(h.ring))])
	}
	return out
}

// Len returns the number of items.
func (h *History[T]) Len() int {
	n := 0
	if h.hasPinned {
		n = 1
	}
	if h.ring == nil {
		return n + len(h.items)
	}
	return n + int(h.tail-h.head)
}

// Max returns the bound, or 0 if the history is unbounded.
func (h *History[T]) Max() int {
	return h.max
}

// Policy returns the eviction policy.
func (h *History[T]) Policy() Policy {
	return h.policy
}

// Full reports whether the next Append will evict an item.
func (h *History[T]) Full() bool {
	return h.max > 0 && h.Len() == h.max
}

// First returns the oldest item (the pinned one under PinFirst).
func (h *History[T]) First() (v T, ok bool) {
	if h.hasPinned {
		return h.pinned, true
	}
	if h.ring == nil {
		if len(h.items) == 0 {
			return v, false
		}
		return h.items[0], true
	}
	if h.head == h.tail {
		return v, false
	}
	return h.ring[h.head%int64(len(h.ring))], true
}

// Last returns the most recently appended item.
func (h *History[T]) Last() (v T, ok bool) {
	if h.ring == nil {
		if len(h.items) > 0 {
			return h.items[len(h.items)-1], true
		}
	} else if h.tail > h.head {
		return h.ring[(h.tail-1)%int64(len(h.ring))], true
	}
	if h.hasPinned {
		return h.pinned, true
	}
	return v, false
}

// Reset removes every item, including a pinned one.
func (h *History[T]) Reset() {
	var zero T
	h.pinned = zero
	h.hasPinned = false
	clear(h.ring)
	h.head, h.tail = 0, 0
	h.items = nil
}
