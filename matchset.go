package restring

import (
	"github.com/coregx/ahocorasick"
)

// LiteralSet matches a string against many literal needles at once using
// an Aho-Corasick automaton, in one pass regardless of how many needles
// there are. It replaces N separate regex scans for bulk "contains any of"
// filters. Immutable and safe for concurrent use.
type LiteralSet struct {
	auto *ahocorasick.Automaton
	lits []string
}

// CompileLiterals builds a LiteralSet from the given literal strings.
// The needles are matched as raw bytes; they are never interpreted as
// patterns. An empty set matches nothing.
func CompileLiterals(literals []string) (*LiteralSet, error) {
	if len(literals) == 0 {
		return &LiteralSet{}, nil
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern([]byte(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &LiteralSet{auto: auto, lits: literals}, nil
}

// MustCompileLiterals is like CompileLiterals but panics on error.
func MustCompileLiterals(literals []string) *LiteralSet {
	ls, err := CompileLiterals(literals)
	if err != nil {
		panic("restring: CompileLiterals: " + err.Error())
	}
	return ls
}

// Literals returns the needles this set was built from.
func (ls *LiteralSet) Literals() []string {
	return ls.lits
}

// ContainsAny reports whether s contains at least one of the needles.
func (ls *LiteralSet) ContainsAny(s string) bool {
	if ls.auto == nil {
		return false
	}
	return ls.auto.IsMatch([]byte(s))
}

// ContainsAnyCol reports for every row whether it contains at least one
// needle of the set. Pure matching; it cannot fail per row.
func (o *Ops) ContainsAnyCol(rows []string, set *LiteralSet) []bool {
	out, _ := applyRows(o, rows, func(i int) (bool, error) {
		return set.ContainsAny(rows[i]), nil
	})
	return out
}
