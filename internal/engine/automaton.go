package engine

import (
	"github.com/coregx/coregex"
	"github.com/coregx/coregex/meta"
)

// Automaton is the linear-time engine. It wraps a compiled coregex program,
// a derived anchored program for prefix testing, and the underlying meta
// engine for suffix testing.
type Automaton struct {
	pattern  string
	re       *coregex.Regexp // unanchored program, with capture tracking
	prefixRe *coregex.Regexp // ^(?:pattern)
	suffix   *meta.Engine    // absolute-position search, used by MatchSuffix
	groups   int
}

var _ Engine = (*Automaton)(nil)

// CompileAutomaton compiles pattern into the linear-time engine.
// The caller is expected to have run Classify first; patterns containing
// non-regular constructs fail here with the parser's syntax error.
func CompileAutomaton(pattern string) (*Automaton, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, err
	}

	// Wrapping in a non-capturing group keeps top-level alternations
	// under the anchor and leaves capture group numbering intact.
	prefixRe, err := coregex.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, err
	}
	suffix, err := meta.Compile(pattern)
	if err != nil {
		return nil, err
	}

	return &Automaton{
		pattern:  pattern,
		re:       re,
		prefixRe: prefixRe,
		suffix:   suffix,
		groups:   re.NumSubexp(),
	}, nil
}

func (a *Automaton) Kind() Kind      { return Linear }
func (a *Automaton) Pattern() string { return a.pattern }

// NumGroups counts the full match as group 0. coregex reports the same
// convention (entire match plus explicit groups).
func (a *Automaton) NumGroups() int {
	if a.groups < 1 {
		return 1
	}
	return a.groups
}

func (a *Automaton) Find(s string) (*Match, error) {
	idx := a.re.FindStringSubmatchIndex(s)
	if idx == nil {
		return nil, nil
	}
	groups := make([]Span, len(idx)/2)
	for i := range groups {
		groups[i] = Span{idx[2*i], idx[2*i+1]}
	}
	return &Match{Groups: groups}, nil
}

func (a *Automaton) FindAll(s string, n int) ([]Span, error) {
	if n <= 0 {
		n = -1
	}
	indices := a.re.FindAllStringIndex(s, n)
	if indices == nil {
		return nil, nil
	}
	spans := make([]Span, len(indices))
	for i, idx := range indices {
		spans[i] = Span{idx[0], idx[1]}
	}
	return spans, nil
}

func (a *Automaton) Match(s string) (bool, error) {
	return a.re.MatchString(s), nil
}

func (a *Automaton) MatchPrefix(s string) (bool, error) {
	return a.prefixRe.MatchString(s), nil
}

// MatchSuffix walks candidate match starts with the meta engine, which
// searches the full input from an absolute position, keeping anchors in
// the pattern meaningful. A derived "(?:pattern)$" program cannot serve
// here: coregex's end-anchored path misses quantified suffixes such as
// ab+ on "abb".
//
// The search is leftmost-longest, so if the longest match at a start does
// not reach the end of the input, no match at that start does, and the
// walk moves past it.
func (a *Automaton) MatchSuffix(s string) (bool, error) {
	b := []byte(s)
	for at := 0; at <= len(b); {
		m := a.suffix.FindAt(b, at)
		if m == nil {
			return false, nil
		}
		if m.End() == len(b) {
			return true, nil
		}
		at = m.Start() + 1
	}
	return false, nil
}
