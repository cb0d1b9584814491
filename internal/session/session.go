// Package session owns the lifecycle of one interactive filter session:
// query edits in, debounced filter runs out, with cancel-and-replace
// semantics and unconditional teardown.
package session

import (
	"sync/atomic"
	"time"

	"github.com/shnupta/sift/internal/command"
	"github.com/shnupta/sift/internal/display"
)

// Status is the externally visible state of a session.
type Status int

const (
	StatusWaiting Status = iota // no run pending or in flight
	StatusRunning               // a filter process is live
	StatusSucceed               // last run produced output
	StatusError                 // last run failed (template or exit code)
	StatusNull                  // last run succeeded with empty output
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusSucceed:
		return "succeed"
	case StatusError:
		return "error"
	case StatusNull:
		return "null"
	default:
		return "waiting"
	}
}

// SourceKind classifies where the session's input content lives.
type SourceKind int

const (
	SourceNone SourceKind = iota // no input file; template must not reference {input}
	SourceFile                   // a caller-owned file on disk
	SourceTemp                   // a snapshot written by the session
)

// InputSource is the session's input file. Owned temp files are deleted
// exactly once, at teardown.
type InputSource struct {
	Kind  SourceKind
	Path  string
	Owned bool
}

// Surface is where results are drawn.
type Surface int

const (
	SurfacePanel   Surface = iota // bottom-anchored panel
	SurfaceOverlay                // centered overlay
)

// ParseSurface maps a config string to a Surface; unknown values mean panel.
func ParseSurface(s string) Surface {
	if s == "overlay" {
		return SurfaceOverlay
	}
	return SurfacePanel
}

// Config holds the immutable per-session options, merged once at creation.
type Config struct {
	Exe     string        // filter executable, substituted for {cmd}
	Delay   time.Duration // debounce delay for unseen queries
	Style   display.Style
	Bounds  display.Bounds
	Surface Surface
	Color   bool     // ask the filter for ANSI-colored output where supported
	Formats []string // write-format cycle order for {to}
}

// Session is the full state of one interactive filter session. It is
// mutated only by the engine loop.
type Session struct {
	ID       int64
	Template command.Template
	Config   Config
	Input    InputSource

	ReadFormat  string // resolved {from} tag, "" until detected
	WriteFormat string // resolved {to} tag, "" until detected

	CurrentQuery string // latest committed (trimmed) query
	CachedQuery  string // query of the last successful run
	CachedResult []byte // last non-empty output, byte-compared before redraw
	CachedHeight int    // panel height the cached result produced

	Status  Status
	History []string // committed at session end; prior sessions' entries seed the fast path
	Seen    []string // queries run successfully within this session
}

// seenOrHistory returns the queries eligible for the immediate-fire fast
// path: entries committed by prior sessions plus queries already run
// successfully in this one.
func (s *Session) seenOrHistory() []string {
	out := make([]string, 0, len(s.History)+len(s.Seen))
	out = append(out, s.History...)
	return append(out, s.Seen...)
}

// markSeen records a successfully run query once.
func (s *Session) markSeen(q string) {
	for _, v := range s.Seen {
		if v == q {
			return
		}
	}
	s.Seen = append(s.Seen, q)
}

// Detectors are the host-supplied capability hooks, fixed at creation.
// Each is a pure function from a session snapshot to an optional tag; nil
// funcs mean "no opinion".
type Detectors struct {
	Mode        func(Session) string // presentation-mode hint for rendering
	ReadFormat  func(Session) string // {from} tag when the template needs one
	WriteFormat func(Session) string // {to} tag when the template needs one
}

var nextID atomic.Int64

// newID returns a process-unique session identifier.
func newID() int64 { return nextID.Add(1) }
