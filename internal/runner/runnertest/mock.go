// Package runnertest provides test doubles for the runner package.
// Import this package only from _test.go files.
package runnertest

import (
	"sync"

	"github.com/shnupta/sift/internal/runner"
)

// MockRunner is a test double for runner.Iface. Each Start call returns a
// fresh MockHandle; tests deliver completions via Handle(i).Complete().
type MockRunner struct {
	LookupErr error
	StartErr  error

	mu      sync.Mutex
	starts  [][]string
	handles []*MockHandle
}

// Compile-time check that MockRunner satisfies runner.Iface.
var _ runner.Iface = (*MockRunner)(nil)

func (m *MockRunner) Lookup(exe string) error { return m.LookupErr }

func (m *MockRunner) Start(argv []string) (runner.HandleIface, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StartErr != nil {
		return nil, m.StartErr
	}
	cp := make([]string, len(argv))
	copy(cp, argv)
	m.starts = append(m.starts, cp)
	h := NewMockHandle()
	m.handles = append(m.handles, h)
	return h, nil
}

// Starts returns a copy of every argv passed to Start, in order.
func (m *MockRunner) Starts() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.starts))
	copy(out, m.starts)
	return out
}

// StartCount returns how many processes were launched.
func (m *MockRunner) StartCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.starts)
}

// Handle returns the i-th launched handle, or nil if out of range.
func (m *MockRunner) Handle(i int) *MockHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.handles) {
		return nil
	}
	return m.handles[i]
}

// LastHandle returns the most recently launched handle, or nil.
func (m *MockRunner) LastHandle() *MockHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.handles) == 0 {
		return nil
	}
	return m.handles[len(m.handles)-1]
}

// MockHandle is a scriptable runner.HandleIface.
type MockHandle struct {
	mu        sync.Mutex
	cancelled bool
	done      chan runner.Completion
}

var _ runner.HandleIface = (*MockHandle)(nil)

func NewMockHandle() *MockHandle {
	return &MockHandle{done: make(chan runner.Completion, 1)}
}

func (h *MockHandle) Done() <-chan runner.Completion { return h.done }

func (h *MockHandle) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cancelled = true
}

// Cancelled reports whether Cancel was called.
func (h *MockHandle) Cancelled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancelled
}

// Complete delivers a terminal event unless the handle was cancelled,
// mirroring the real handle's cancel-vs-complete rule.
func (h *MockHandle) Complete(c runner.Completion) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancelled {
		return
	}
	h.done <- c
}
