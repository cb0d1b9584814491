// Package debounce decides when a query edit should trigger a filter run.
// Decide is a pure function; the session engine owns the actual timer.
package debounce

import (
	"strings"
	"time"
)

// Kind classifies the action a query edit calls for.
type Kind int

const (
	// Ignore means no run: either the query is unchanged after trimming,
	// or it trimmed to empty (the engine resets status to waiting).
	Ignore Kind = iota
	// Schedule means run after the debounce delay elapses, cancelling any
	// previously scheduled fire first.
	Schedule
	// FireNow means run immediately: the query was seen before in this
	// session, so the result is treated as cheap.
	FireNow
)

func (k Kind) String() string {
	switch k {
	case Schedule:
		return "schedule"
	case FireNow:
		return "fire_now"
	default:
		return "ignore"
	}
}

// Decision is the outcome of one query edit.
type Decision struct {
	Kind  Kind
	Query string        // the trimmed query
	Delay time.Duration // meaningful only when Kind == Schedule
}

// Decide classifies a raw query edit against the session's last-processed
// query and its history. Comparison happens on the whitespace-trimmed query.
func Decide(raw, lastProcessed string, history []string, delay time.Duration) Decision {
	q := strings.TrimSpace(raw)

	if q == lastProcessed {
		return Decision{Kind: Ignore, Query: q}
	}
	if q == "" {
		return Decision{Kind: Ignore, Query: q}
	}
	for _, h := range history {
		if h == q {
			return Decision{Kind: FireNow, Query: q}
		}
	}
	return Decision{Kind: Schedule, Query: q, Delay: delay}
}
