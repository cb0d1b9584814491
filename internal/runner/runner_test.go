package runner

import (
	"errors"
	"testing"
	"time"
)

func waitDone(t *testing.T, h *Handle) Completion {
	t.Helper()
	select {
	case c := <-h.Done():
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for completion")
		return Completion{}
	}
}

func TestStartCapturesOutput(t *testing.T) {
	h, err := Start([]string{"sh", "-c", "printf hello"})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	c := waitDone(t, h)
	if c.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %d", c.ExitCode)
	}
	if string(c.Output) != "hello" {
		t.Fatalf("expected \"hello\", got %q", c.Output)
	}
}

func TestStartCombinesStderr(t *testing.T) {
	h, err := Start([]string{"sh", "-c", "printf out; printf err 1>&2"})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	c := waitDone(t, h)
	if string(c.Output) != "outerr" {
		t.Fatalf("expected combined output \"outerr\", got %q", c.Output)
	}
}

func TestStartNonzeroExit(t *testing.T) {
	h, err := Start([]string{"sh", "-c", "exit 3"})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	c := waitDone(t, h)
	if c.ExitCode != 3 {
		t.Fatalf("expected exit 3, got %d", c.ExitCode)
	}
}

func TestStartEmptyArgv(t *testing.T) {
	if _, err := Start(nil); err == nil {
		t.Fatal("expected error for empty argv")
	}
}

func TestCancelSuppressesCompletion(t *testing.T) {
	h, err := Start([]string{"sleep", "10"})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	h.Cancel()

	select {
	case c := <-h.Done():
		t.Fatalf("cancelled handle delivered a completion: %+v", c)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCancelIdempotent(t *testing.T) {
	h, err := Start([]string{"sleep", "10"})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	h.Cancel()
	h.Cancel() // second cancel is a no-op
}

func TestCancelAfterCompletionIsNoop(t *testing.T) {
	h, err := Start([]string{"sh", "-c", "printf done"})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	c := waitDone(t, h)
	h.Cancel()
	if string(c.Output) != "done" {
		t.Fatalf("expected \"done\", got %q", c.Output)
	}
}

func TestLookup(t *testing.T) {
	if err := Lookup("sh"); err != nil {
		t.Fatalf("Lookup(sh) failed: %v", err)
	}
	err := Lookup("definitely-not-a-real-binary-zzz")
	if err == nil {
		t.Fatal("expected error for missing executable")
	}
	if !errors.Is(err, ErrMissingExecutable) {
		t.Fatalf("expected ErrMissingExecutable, got %v", err)
	}
}
