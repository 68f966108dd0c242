package restring

import (
	"strings"

	"github.com/coregx/coregex"

	"github.com/kolkov/restring/internal/engine"
)

// Version is the restring version string.
const Version = "0.1.0"

// Pattern is a compiled pattern bound to its selected engine.
// It is immutable and safe for concurrent use; all matching is a pure
// function of (pattern, input).
type Pattern struct {
	eng engine.Engine
}

// Compile compiles a pattern using the default configuration and the
// process-wide engine cache.
//
// Patterns inside the regular subset (literals, classes, anchors,
// quantifiers, alternation, capture groups, escapes) compile to the
// linear-time automaton engine. Patterns using backreferences or
// lookaround are routed to the backtracking engine; that routing is not an
// error, but Pattern.Linear reports it and a one-time advisory is logged.
//
// Example:
//
//	p, err := restring.Compile(`(\w+)=(\w+)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	val, _ := p.Extract("key=value", 2) // "value"
func Compile(pattern string) (*Pattern, error) {
	return defaultOps().Compile(pattern)
}

// MustCompile is like Compile but panics if the pattern is invalid.
// It simplifies safe initialization of global variables.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic("restring: Compile(`" + pattern + "`): " + err.Error())
	}
	return p
}

// String returns the pattern text.
func (p *Pattern) String() string {
	return p.eng.Pattern()
}

// Linear reports whether this pattern is served by the linear-time
// automaton engine. When false, matches run on the backtracking engine:
// worst-case time is unbounded (capped by Config.FallbackTimeout) and
// match selection follows leftmost-first semantics, which can differ from
// the automaton engine's leftmost-longest choice on ambiguous patterns.
func (p *Pattern) Linear() bool {
	return p.eng.Kind() == engine.Linear
}

// NumGroups returns the number of capture groups, counting the whole
// match as group 0.
func (p *Pattern) NumGroups() int {
	return p.eng.NumGroups()
}

// Match reports whether s contains any match of the pattern (unanchored
// search, SQL RLIKE semantics).
func (p *Pattern) Match(s string) (bool, error) {
	return p.eng.Match(s)
}

// Split slices s around matches of the pattern.
//
// limit controls the number of splits:
//   - limit > 0: at most limit elements; the last element holds all input
//     beyond the last matched delimiter, unsplit.
//   - limit <= 0: the pattern is applied as many times as possible.
//
// An empty match consumes no input but the scan still advances, so Split
// terminates on any pattern.
//
// Example:
//
//	parts, _ := p.Split("a,b,,c", -1) // ["a", "b", "", "c"] for pattern ","
func (p *Pattern) Split(s string, limit int) ([]string, error) {
	spans, err := p.eng.FindAll(s, -1)
	if err != nil {
		return nil, err
	}
	if len(spans) == 0 {
		return []string{s}, nil
	}

	n := len(spans) + 1
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]string, 0, n)

	lastEnd := 0
	for _, sp := range spans {
		if limit > 0 && len(result) >= limit-1 {
			break
		}
		result = append(result, s[lastEnd:sp.Start])
		lastEnd = sp.End
	}
	result = append(result, s[lastEnd:])
	return result, nil
}

// ReplaceAll returns s with every match of the pattern replaced by
// replacement. The replacement is literal: no backreference or $-group
// expansion. With no matches, s is returned unchanged.
func (p *Pattern) ReplaceAll(s, replacement string) (string, error) {
	spans, err := p.eng.FindAll(s, -1)
	if err != nil {
		return "", err
	}
	if len(spans) == 0 {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s) + len(spans)*(len(replacement)))
	lastEnd := 0
	for _, sp := range spans {
		b.WriteString(s[lastEnd:sp.Start])
		b.WriteString(replacement)
		lastEnd = sp.End
	}
	b.WriteString(s[lastEnd:])
	return b.String(), nil
}

// Extract returns the text captured by group idx in the first match of the
// pattern in s. Group 0 is the whole match. It returns "" when there is no
// match, when group idx did not participate in the match, or when idx is
// outside the pattern's group range; none of these are errors.
func (p *Pattern) Extract(s string, idx int) (string, error) {
	m, err := p.eng.Find(s)
	if err != nil {
		return "", err
	}
	if m == nil {
		return "", nil
	}
	sp := m.Group(idx)
	if !sp.Valid() {
		return "", nil
	}
	return s[sp.Start:sp.End], nil
}

// QuoteMeta returns a string that escapes all regex metacharacters in
// text; the result is a pattern matching the literal text.
func QuoteMeta(text string) string {
	return coregex.QuoteMeta(text)
}

// Split slices s around matches of pattern using the default
// configuration. See Pattern.Split for limit semantics.
func Split(s, pattern string, limit int) ([]string, error) {
	p, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	return p.Split(s, limit)
}

// ReplaceAll replaces every match of pattern in s with replacement
// (literal, no backreference expansion).
func ReplaceAll(s, pattern, replacement string) (string, error) {
	p, err := Compile(pattern)
	if err != nil {
		return "", err
	}
	return p.ReplaceAll(s, replacement)
}

// Extract returns group idx of the first match of pattern in s, or ""
// if there is no match or the group did not participate.
func Extract(s, pattern string, idx int) (string, error) {
	p, err := Compile(pattern)
	if err != nil {
		return "", err
	}
	return p.Extract(s, idx)
}

// Match reports whether s contains any match of pattern (RLIKE).
func Match(s, pattern string) (bool, error) {
	p, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return p.Match(s)
}

// HasPrefix reports whether s starts with the literal text prefix.
// Regex metacharacters in prefix are treated as literal text.
func HasPrefix(s, prefix string) bool {
	return defaultOps().HasPrefix(s, prefix)
}

// HasSuffix reports whether s ends with the literal text suffix.
// Regex metacharacters in suffix are treated as literal text.
func HasSuffix(s, suffix string) bool {
	return defaultOps().HasSuffix(s, suffix)
}
