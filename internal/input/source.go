// Package input resolves the session's content into a file path the
// command template can reference.
package input

import (
	"fmt"
	"io"
	"os"

	"github.com/shnupta/sift/internal/session"
)

// Resolve turns an optional file argument into an InputSource. With no
// argument, piped stdin is snapshotted into an owned temp file; an
// interactive stdin yields SourceNone.
func Resolve(arg string) (session.InputSource, error) {
	if arg != "" {
		if _, err := os.Stat(arg); err != nil {
			return session.InputSource{}, fmt.Errorf("input file: %w", err)
		}
		return session.InputSource{Kind: session.SourceFile, Path: arg}, nil
	}

	fi, err := os.Stdin.Stat()
	if err == nil && fi.Mode()&os.ModeCharDevice == 0 {
		return Snapshot(os.Stdin)
	}
	return session.InputSource{Kind: session.SourceNone}, nil
}

// Snapshot copies r into an owned temp file. The session deletes it at
// teardown.
func Snapshot(r io.Reader) (session.InputSource, error) {
	f, err := os.CreateTemp("", "sift-*")
	if err != nil {
		return session.InputSource{}, fmt.Errorf("create snapshot: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return session.InputSource{}, fmt.Errorf("write snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return session.InputSource{}, fmt.Errorf("close snapshot: %w", err)
	}
	return session.InputSource{Kind: session.SourceTemp, Path: f.Name(), Owned: true}, nil
}
