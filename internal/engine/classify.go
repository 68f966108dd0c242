package engine

// Construct identifies a pattern feature outside the automaton engine's
// dialect. The zero value means the pattern stayed inside the regular
// subset as far as the scan can tell.
type Construct int

const (
	// Regular: no non-regular construct detected.
	Regular Construct = iota
	// Backreference: \1..\9 or \k<name>.
	Backreference
	// Lookahead: (?=...) or (?!...).
	Lookahead
	// Lookbehind: (?<=...) or (?<!...).
	Lookbehind
	// AtomicGroup: (?>...).
	AtomicGroup
	// Conditional: (?(...)...).
	Conditional
	// NamedGroupDotNet: (?<name>...), the .NET spelling the automaton
	// parser does not accept. The group itself is regular, but the
	// pattern as written only compiles under the backtracking engine.
	NamedGroupDotNet
)

func (c Construct) String() string {
	switch c {
	case Regular:
		return "regular"
	case Backreference:
		return "backreference"
	case Lookahead:
		return "lookahead"
	case Lookbehind:
		return "lookbehind"
	case AtomicGroup:
		return "atomic group"
	case Conditional:
		return "conditional group"
	case NamedGroupDotNet:
		return "named group (?<name>)"
	default:
		return "unknown construct"
	}
}

// Classify scans pattern text for constructs the automaton engine cannot
// express. It is a syntactic scan, not a parse: it understands escapes and
// character classes well enough to avoid false positives (e.g. `[\1]` is a
// class member, `\\1` is a literal backslash followed by a digit), but it
// does not validate the pattern. Invalid patterns are reported as Regular
// here and rejected later by whichever engine compiles them.
//
// The first construct found wins; scanning is left to right.
func Classify(pattern string) Construct {
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\':
			if i+1 >= len(pattern) {
				return Regular
			}
			next := pattern[i+1]
			if !inClass {
				if next >= '1' && next <= '9' {
					return Backreference
				}
				if next == 'k' && i+2 < len(pattern) && (pattern[i+2] == '<' || pattern[i+2] == '\'') {
					return Backreference
				}
			}
			i++ // skip escaped byte
		case c == '[' && !inClass:
			inClass = true
			// A leading ] (or ^]) is a literal class member, not a close.
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				i++
			}
			if i+1 < len(pattern) && pattern[i+1] == ']' {
				i++
			}
		case c == ']' && inClass:
			inClass = false
		case c == '(' && !inClass:
			if ctor := classifyGroup(pattern[i:]); ctor != Regular {
				return ctor
			}
		}
	}
	return Regular
}

// classifyGroup inspects a group opener. rest begins with '('.
func classifyGroup(rest string) Construct {
	if len(rest) < 3 || rest[1] != '?' {
		return Regular
	}
	switch rest[2] {
	case '=', '!':
		return Lookahead
	case '>':
		return AtomicGroup
	case '(':
		return Conditional
	case '<':
		if len(rest) >= 4 {
			switch rest[3] {
			case '=', '!':
				return Lookbehind
			}
		}
		return NamedGroupDotNet
	case 'P':
		// (?P<name>...) is the spelling the automaton parser accepts.
		return Regular
	case '\'':
		// (?'name'...), a .NET named group.
		return NamedGroupDotNet
	}
	return Regular
}
