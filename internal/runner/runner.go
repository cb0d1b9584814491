// Package runner spawns external filter processes and reports their
// completion. A Handle owns exactly one process and delivers at most one
// terminal event; cancellation is idempotent and suppresses delivery.
package runner

import (
	"bytes"
	"fmt"
	"os/exec"
	"sync"
)

// ErrMissingExecutable reports that a filter executable could not be
// resolved. Surfaced before a session is created, never per-query.
var ErrMissingExecutable = fmt.Errorf("filter executable not found")

// Completion is the terminal event of one process run.
type Completion struct {
	ExitCode int
	Output   []byte // combined stdout+stderr
}

// Handle owns one live external process.
type Handle struct {
	cmd *exec.Cmd

	mu        sync.Mutex
	cancelled bool
	done      chan Completion
}

// Lookup resolves exe on PATH. A failure is fatal to session creation.
func Lookup(exe string) error {
	if _, err := exec.LookPath(exe); err != nil {
		return fmt.Errorf("%w: %q", ErrMissingExecutable, exe)
	}
	return nil
}

// Start launches argv[0] with the remaining arguments and begins collecting
// its combined output. The returned handle delivers exactly one Completion
// on Done(), unless cancelled first.
func Start(argv []string) (*Handle, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("start: empty argument vector")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	var buf bytes.Buffer
	// Same writer for both streams: os/exec serialises writes itself.
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", argv[0], err)
	}

	h := &Handle{
		cmd:  cmd,
		done: make(chan Completion, 1),
	}

	go func() {
		exitCode := 0
		if err := cmd.Wait(); err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				exitCode = exitErr.ExitCode()
			} else {
				exitCode = -1
			}
		}
		h.complete(Completion{ExitCode: exitCode, Output: buf.Bytes()})
	}()

	return h, nil
}

// Done returns the channel on which the terminal event is delivered.
// A cancelled handle never delivers.
func (h *Handle) Done() <-chan Completion { return h.done }

// Cancel kills the process if it is still running and suppresses any
// not-yet-delivered completion. Cancelling a finished or already-cancelled
// handle is a no-op.
func (h *Handle) Cancel() {
	h.mu.Lock()
	if h.cancelled {
		h.mu.Unlock()
		return
	}
	h.cancelled = true
	h.mu.Unlock()

	// Best-effort kill; the wait goroutine consumes the exit status and
	// its completion is discarded by complete().
	if h.cmd.Process != nil {
		_ = h.cmd.Process.Kill()
	}
}

// complete delivers the terminal event unless the handle was cancelled.
// The mutex makes cancel-vs-complete resolve to exactly one outcome.
func (h *Handle) complete(c Completion) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancelled {
		return
	}
	h.done <- c // buffered; a handle completes at most once
}
