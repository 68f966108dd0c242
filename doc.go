// Package restring provides string-matching primitives (split, replace,
// group extraction, boolean search, prefix/suffix test) over scalar
// strings and in-memory string columns, with guaranteed worst-case
// linear-time matching for the regular subset of the pattern dialect.
//
// Patterns compile to a finite-automaton engine (coregex); patterns using
// constructs no automaton can express (backreferences, lookaround) are
// routed, per pattern and deterministically, to a backtracking engine
// (regexp2) bounded by a configurable match budget. Routing is not an
// error: the caller gets correct matches either way, plus a one-time
// advisory log that the linear-time guarantee does not apply.
//
// # Quick Start
//
// Scalar operations compile through a process-wide cache:
//
//	parts, err := restring.Split("a,b,,c", ",", -1)   // ["a" "b" "" "c"]
//	out, err := restring.ReplaceAll("2024-01-02", "[0-9]+", "#") // "#-#-#"
//	val, err := restring.Extract("key=value", `(\w+)=(\w+)`, 2)  // "value"
//	ok, err := restring.Match("hello", "^h.*o$")                 // true
//	ok := restring.HasPrefix("abc.def", ".")                     // false: "." is literal
//
// # Compiled Patterns
//
// For repeated matching, compile once:
//
//	p := restring.MustCompile(`[0-9]+`)
//	out, _ := p.ReplaceAll("2024-01-02", "#")
//	if !p.Linear() {
//	    // pattern runs on the backtracking engine
//	}
//
// # Columnar Operations
//
// An [Ops] runner applies an operation elementwise over a column of
// independent values, in parallel, preserving row order:
//
//	ops := restring.NewOps(&restring.Config{Workers: 8})
//	flags, err := ops.MatchCol(rows, `^ERROR\b`)
//
// Row failures (a backtracking match exceeding its budget) are isolated:
// the failed rows hold zero values and are reported via [RowErrors], the
// rest of the column is valid.
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [SyntaxError]: the pattern fails to parse; surfaced immediately,
//     never converted into fallback routing
//   - [TimeoutError]: a backtracking match exceeded Config.FallbackTimeout
//   - [UnsupportedError]: strict mode only (Config.DisableFallback)
//   - [RowErrors]: per-row failures from columnar operations
//
// # Thread Safety
//
// Compiled [Pattern] and [LiteralSet] values and [Ops] runners are safe
// for concurrent use. Engine compilation is cached per pattern text; under
// concurrent first access exactly one result is cached.
package restring
