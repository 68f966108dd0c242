// Package engine implements pattern compilation and matching for restring.
//
// Two engine implementations share one contract: an automaton engine backed
// by coregex (guaranteed linear-time matching) and a backtracking engine
// backed by regexp2 (used only for patterns the automaton model cannot
// express). Engine selection is per pattern and deterministic; see Cache.
package engine

// Kind identifies which matching strategy backs an Engine.
type Kind int

const (
	// Linear is the automaton engine: worst-case O(pattern × input) matching.
	Linear Kind = iota
	// Backtracking is the fallback engine: full dialect, no time guarantee
	// beyond the configured match budget.
	Backtracking
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Backtracking:
		return "backtracking"
	default:
		return "unknown"
	}
}

// Span is a half-open [Start, End) byte range into the matched input.
// A Span of {-1, -1} marks a capture group that did not participate.
type Span struct {
	Start int
	End   int
}

// Valid reports whether the span refers to actual input.
func (sp Span) Valid() bool {
	return sp.Start >= 0 && sp.End >= sp.Start
}

// Match is the result of a single match attempt.
// Groups[0] is always the full match span; Groups[i] is capture group i.
// Both engines report byte offsets, regardless of input encoding.
type Match struct {
	Groups []Span
}

// Span returns the full match span.
func (m *Match) Span() Span {
	return m.Groups[0]
}

// Group returns the span for capture group idx (0 = full match).
// Out-of-range indexes and non-participating groups return {-1, -1}.
func (m *Match) Group(idx int) Span {
	if idx < 0 || idx >= len(m.Groups) {
		return Span{-1, -1}
	}
	return m.Groups[idx]
}

// Engine is a compiled pattern ready for matching.
// Implementations are immutable after construction and safe for
// concurrent use. All methods are pure functions of (engine, input).
//
// The error return is used only by the backtracking engine (match budget
// exceeded); the automaton engine never fails at match time.
type Engine interface {
	// Kind reports which strategy backs this engine.
	Kind() Kind

	// Pattern returns the original pattern text.
	Pattern() string

	// NumGroups returns the number of capture groups, counting the full
	// match as group 0. Always >= 1.
	NumGroups() int

	// Find returns the leftmost match with capture groups, or nil if the
	// input contains no match.
	Find(s string) (*Match, error)

	// FindAll returns the spans of successive non-overlapping matches in
	// left-to-right order. If n > 0, at most n spans are returned; n <= 0
	// means all. An empty match advances the scan by at least one byte,
	// so FindAll always terminates.
	FindAll(s string, n int) ([]Span, error)

	// Match reports whether the input contains any match (unanchored).
	Match(s string) (bool, error)

	// MatchPrefix reports whether a match begins at the start of the input.
	MatchPrefix(s string) (bool, error)

	// MatchSuffix reports whether a match ends at the end of the input.
	MatchSuffix(s string) (bool, error)
}
