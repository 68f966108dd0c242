package restring

import (
	"fmt"
	"strings"

	"github.com/kolkov/restring/internal/engine"
)

// SyntaxError represents a pattern that failed to parse.
// It is returned by Compile and by any operation given an invalid pattern;
// no partial results are produced.
type SyntaxError struct {
	Pattern string // Pattern text that failed to compile
	Err     error  // Underlying parser error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in pattern %q: %v", e.Pattern, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// TimeoutError reports that the backtracking engine exceeded the configured
// match budget (Config.FallbackTimeout). Only patterns routed to the
// fallback engine can produce it; linear-engine matches are bounded by
// construction.
type TimeoutError = engine.TimeoutError

// UnsupportedError is returned by Compile only in strict mode
// (Config.DisableFallback): the pattern parses but uses a construct the
// linear-time engine cannot express. With fallback enabled such patterns
// are not an error; they are routed to the backtracking engine silently.
type UnsupportedError = engine.UnsupportedError

// RowError is a single row's failure inside a columnar operation.
type RowError struct {
	Row int   // 0-based row index
	Err error // Cause
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// RowErrors aggregates per-row failures from a columnar operation.
// Columnar operations isolate failures to their rows: the returned column
// holds zero values at failed rows and valid results everywhere else,
// alongside a *RowErrors describing the failures.
type RowErrors struct {
	Errors []*RowError
}

func (e *RowErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no row errors"
	case 1:
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d rows failed: ", len(e.Errors))
	for i, re := range e.Errors {
		if i > 0 {
			b.WriteString("; ")
		}
		if i == 3 {
			fmt.Fprintf(&b, "... and %d more", len(e.Errors)-i)
			break
		}
		b.WriteString(re.Error())
	}
	return b.String()
}

// Unwrap returns the individual row errors for errors.Is / errors.As.
func (e *RowErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, re := range e.Errors {
		errs[i] = re
	}
	return errs
}
