// Package display computes the result panel's target height from a resize
// style and the finished result's line count.
package display

import "bytes"

// Style governs how the panel height responds to changing content length.
type Style int

const (
	StyleFixed Style = iota // always the minimum bound
	StyleFit                // follows content, clamped to bounds
	StyleGrow               // follows content but never shrinks mid-session
)

func (s Style) String() string {
	switch s {
	case StyleFit:
		return "fit"
	case StyleGrow:
		return "grow"
	default:
		return "fixed"
	}
}

// ParseStyle maps a config string to a Style. Unknown values fall back to
// fit, the most forgiving default.
func ParseStyle(s string) Style {
	switch s {
	case "fixed":
		return StyleFixed
	case "grow":
		return StyleGrow
	default:
		return StyleFit
	}
}

// Bounds are the configured panel height limits.
type Bounds struct {
	Min int
	Max int
}

// Clamp restricts h to the bounds.
func (b Bounds) Clamp(h int) int {
	if h < b.Min {
		return b.Min
	}
	if h > b.Max {
		return b.Max
	}
	return h
}

// Target returns the panel height for a finished result. cachedHeight is the
// height of the previously displayed result (zero at session start); it only
// matters for StyleGrow, which is monotonically non-decreasing within a
// session.
func Target(style Style, b Bounds, cachedHeight, contentLines int) int {
	switch style {
	case StyleFixed:
		return b.Min
	case StyleGrow:
		h := contentLines
		if cachedHeight > h {
			h = cachedHeight
		}
		return b.Clamp(h)
	default: // StyleFit
		return b.Clamp(contentLines)
	}
}

// Lines counts display lines in result bytes. A trailing newline terminates
// the last line rather than opening an empty one; empty content is zero
// lines.
func Lines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte("\n"))
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}
