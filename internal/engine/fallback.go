package engine

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// TimeoutError reports that the backtracking engine exceeded its match
// budget. The automaton engine never produces it.
type TimeoutError struct {
	Pattern string
	Budget  time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("match budget %v exceeded for pattern %q: %v", e.Budget, e.Pattern, e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// Fallback is the backtracking engine. It handles the full regexp2 dialect
// (backreferences, lookaround, atomic and conditional groups) with no
// linear-time guarantee; a per-call match budget bounds the damage on
// adversarial inputs.
type Fallback struct {
	pattern  string
	re       *regexp2.Regexp // unanchored
	prefixRe *regexp2.Regexp // \A(?:pattern)
	suffixRe *regexp2.Regexp // (?:pattern)\z
	budget   time.Duration
	groups   int
}

var _ Engine = (*Fallback)(nil)

// CompileFallback compiles pattern under the backtracking engine.
// budget bounds each match call; zero means unbounded.
func CompileFallback(pattern string, budget time.Duration) (*Fallback, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	// \A and \z rather than ^/$: regexp2's $ also matches before a final
	// newline, which would disagree with the automaton engine's anchors.
	prefixRe, err := regexp2.Compile(`\A(?:`+pattern+`)`, regexp2.None)
	if err != nil {
		return nil, err
	}
	suffixRe, err := regexp2.Compile(`(?:`+pattern+`)\z`, regexp2.None)
	if err != nil {
		return nil, err
	}

	groups := 0
	for _, n := range re.GetGroupNumbers() {
		if n+1 > groups {
			groups = n + 1
		}
	}
	if groups < 1 {
		groups = 1
	}

	if budget > 0 {
		re.MatchTimeout = budget
		prefixRe.MatchTimeout = budget
		suffixRe.MatchTimeout = budget
	}

	return &Fallback{
		pattern:  pattern,
		re:       re,
		prefixRe: prefixRe,
		suffixRe: suffixRe,
		budget:   budget,
		groups:   groups,
	}, nil
}

func (f *Fallback) Kind() Kind      { return Backtracking }
func (f *Fallback) Pattern() string { return f.pattern }
func (f *Fallback) NumGroups() int  { return f.groups }

func (f *Fallback) Find(s string) (*Match, error) {
	m, err := f.re.FindStringMatch(s)
	if err != nil {
		return nil, f.timeout(err)
	}
	if m == nil {
		return nil, nil
	}
	return f.buildMatch(m, newRuneMapper(s)), nil
}

func (f *Fallback) FindAll(s string, n int) ([]Span, error) {
	rm := newRuneMapper(s)
	var spans []Span
	m, err := f.re.FindStringMatch(s)
	for m != nil {
		sp := Span{rm.byteOff(m.Index), rm.byteOff(m.Index + m.Length)}
		// regexp2 reports an empty match directly after a non-empty one
		// at the same position; the automaton engine (stdlib convention)
		// suppresses it, so drop it here to keep the engines aligned.
		adjacentEmpty := sp.Start == sp.End &&
			len(spans) > 0 && spans[len(spans)-1].End == sp.Start
		if !adjacentEmpty {
			spans = append(spans, sp)
			if n > 0 && len(spans) >= n {
				break
			}
		}
		// FindNextMatch advances past empty matches, so the scan
		// always makes progress.
		m, err = f.re.FindNextMatch(m)
		if err != nil {
			break
		}
	}
	if err != nil {
		return nil, f.timeout(err)
	}
	return spans, nil
}

func (f *Fallback) Match(s string) (bool, error) {
	ok, err := f.re.MatchString(s)
	if err != nil {
		return false, f.timeout(err)
	}
	return ok, nil
}

func (f *Fallback) MatchPrefix(s string) (bool, error) {
	ok, err := f.prefixRe.MatchString(s)
	if err != nil {
		return false, f.timeout(err)
	}
	return ok, nil
}

func (f *Fallback) MatchSuffix(s string) (bool, error) {
	ok, err := f.suffixRe.MatchString(s)
	if err != nil {
		return false, f.timeout(err)
	}
	return ok, nil
}

// buildMatch converts a regexp2 match (rune offsets) into the byte-offset
// Match shape shared with the automaton engine. Groups that did not
// participate get {-1, -1}.
func (f *Fallback) buildMatch(m *regexp2.Match, rm *runeMapper) *Match {
	groups := make([]Span, f.groups)
	for i := range groups {
		groups[i] = Span{-1, -1}
	}
	for i := 0; i < f.groups; i++ {
		g := m.GroupByNumber(i)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		groups[i] = Span{rm.byteOff(g.Index), rm.byteOff(g.Index + g.Length)}
	}
	return &Match{Groups: groups}
}

func (f *Fallback) timeout(err error) error {
	return &TimeoutError{Pattern: f.pattern, Budget: f.budget, Err: err}
}

// runeMapper translates regexp2's rune offsets to byte offsets.
// ASCII inputs map 1:1 and skip the table.
type runeMapper struct {
	offs []int // offs[i] = byte offset of rune i; nil for ASCII
}

func newRuneMapper(s string) *runeMapper {
	if len(s) == utf8.RuneCountInString(s) {
		return &runeMapper{}
	}
	offs := make([]int, 0, len(s)+1)
	for i := range s {
		offs = append(offs, i)
	}
	offs = append(offs, len(s))
	return &runeMapper{offs: offs}
}

func (rm *runeMapper) byteOff(runeIdx int) int {
	if rm.offs == nil {
		return runeIdx
	}
	if runeIdx < 0 {
		return -1
	}
	if runeIdx >= len(rm.offs) {
		return rm.offs[len(rm.offs)-1]
	}
	return rm.offs[runeIdx]
}
