package restring

import (
	"errors"
	"fmt"
	"sync"

	"github.com/kolkov/restring/internal/engine"
)

// Ops executes string operations over columns of independent values.
// Rows are processed elementwise with no cross-row state, in parallel
// across Config.Workers goroutines, preserving row order. An Ops carries
// its own engine cache; it is safe for concurrent use.
type Ops struct {
	cfg   Config
	cache *engine.Cache
}

// NewOps creates an operation runner with the given configuration.
// A nil config uses defaults.
func NewOps(config *Config) *Ops {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()
	return &Ops{
		cfg: cfg,
		cache: engine.NewCache(engine.Options{
			Budget:  cfg.FallbackTimeout,
			Strict:  cfg.DisableFallback,
			MaxSize: cfg.CacheSize,
			Logger:  cfg.Logger,
		}),
	}
}

var (
	defaultOpsOnce sync.Once
	defaultOpsInst *Ops
)

// defaultOps backs the package-level functions with a process-wide runner.
func defaultOps() *Ops {
	defaultOpsOnce.Do(func() {
		defaultOpsInst = NewOps(nil)
	})
	return defaultOpsInst
}

// Compile compiles a pattern through this runner's engine cache.
func (o *Ops) Compile(pattern string) (*Pattern, error) {
	eng, err := o.cache.Get(pattern)
	if err != nil {
		var ue *UnsupportedError
		if errors.As(err, &ue) {
			return nil, err
		}
		return nil, &SyntaxError{Pattern: pattern, Err: err}
	}
	return &Pattern{eng: eng}, nil
}

// MustCompile is like Compile but panics on error.
func (o *Ops) MustCompile(pattern string) *Pattern {
	p, err := o.Compile(pattern)
	if err != nil {
		panic("restring: Compile(`" + pattern + "`): " + err.Error())
	}
	return p
}

// HasPrefix reports whether s starts with the literal text prefix.
// The prefix is escaped, so regex metacharacters in it are inert.
func (o *Ops) HasPrefix(s, prefix string) bool {
	p, err := o.Compile(QuoteMeta(prefix))
	if err != nil {
		return false // unreachable: a quoted literal always compiles
	}
	ok, _ := p.eng.MatchPrefix(s) // literal patterns never hit the fallback
	return ok
}

// HasSuffix reports whether s ends with the literal text suffix.
func (o *Ops) HasSuffix(s, suffix string) bool {
	p, err := o.Compile(QuoteMeta(suffix))
	if err != nil {
		return false
	}
	ok, _ := p.eng.MatchSuffix(s)
	return ok
}

// Arg is a scalar-or-column operand for columnar operations, mirroring the
// string|column parameters of the SQL-style API. Use Lit for a single
// value shared by every row and Col for one value per row.
type Arg struct {
	col []string
	lit string
}

// Lit returns an Arg holding one literal value for all rows.
func Lit(s string) Arg {
	return Arg{lit: s}
}

// Col returns an Arg holding one value per row. Its length must equal the
// row count of the operation it is passed to.
func Col(values []string) Arg {
	return Arg{col: values}
}

func (a Arg) at(i int) string {
	if a.col == nil {
		return a.lit
	}
	return a.col[i]
}

func (a Arg) check(rows int) error {
	if a.col != nil && len(a.col) != rows {
		return fmt.Errorf("column argument has %d values for %d rows", len(a.col), rows)
	}
	return nil
}

// SplitCol splits every row around matches of pattern.
// See Pattern.Split for limit semantics. Rows that fail (fallback budget
// exceeded) hold nil and are reported through *RowErrors.
func (o *Ops) SplitCol(rows []string, pattern string, limit int) ([][]string, error) {
	p, err := o.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return applyRows(o, rows, func(i int) ([]string, error) {
		return p.Split(rows[i], limit)
	})
}

// ReplaceAllCol replaces every match of pattern with replacement in every
// row. Both pattern and replacement may be literal or per-row columns.
// Per-row pattern compilation failures are row errors, not a whole-column
// abort.
func (o *Ops) ReplaceAllCol(rows []string, pattern, replacement Arg) ([]string, error) {
	if err := pattern.check(len(rows)); err != nil {
		return nil, err
	}
	if err := replacement.check(len(rows)); err != nil {
		return nil, err
	}
	return applyRows(o, rows, func(i int) (string, error) {
		p, err := o.Compile(pattern.at(i))
		if err != nil {
			return "", err
		}
		return p.ReplaceAll(rows[i], replacement.at(i))
	})
}

// ExtractCol extracts capture group idx from the first match of pattern in
// every row. Rows with no match or a non-participating group hold "".
func (o *Ops) ExtractCol(rows []string, pattern string, idx int) ([]string, error) {
	p, err := o.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return applyRows(o, rows, func(i int) (string, error) {
		return p.Extract(rows[i], idx)
	})
}

// MatchCol reports for every row whether it contains a match of pattern
// (SQL RLIKE over a column).
func (o *Ops) MatchCol(rows []string, pattern string) ([]bool, error) {
	p, err := o.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return applyRows(o, rows, func(i int) (bool, error) {
		return p.Match(rows[i])
	})
}

// HasPrefixCol reports for every row whether it starts with the literal
// prefix, which may be shared (Lit) or per-row (Col).
func (o *Ops) HasPrefixCol(rows []string, prefix Arg) ([]bool, error) {
	if err := prefix.check(len(rows)); err != nil {
		return nil, err
	}
	return applyRows(o, rows, func(i int) (bool, error) {
		return o.HasPrefix(rows[i], prefix.at(i)), nil
	})
}

// HasSuffixCol reports for every row whether it ends with the literal
// suffix, which may be shared (Lit) or per-row (Col).
func (o *Ops) HasSuffixCol(rows []string, suffix Arg) ([]bool, error) {
	if err := suffix.check(len(rows)); err != nil {
		return nil, err
	}
	return applyRows(o, rows, func(i int) (bool, error) {
		return o.HasSuffix(rows[i], suffix.at(i)), nil
	})
}

// minRowsParallel is the row count below which the goroutine setup costs
// more than it saves.
const minRowsParallel = 256

// applyRows runs fn once per row index, preserving order. Failed rows keep
// the zero value; failures are collected into a single *RowErrors. With
// one worker, or for small columns, execution is sequential.
func applyRows[T any](o *Ops, rows []string, fn func(i int) (T, error)) ([]T, error) {
	out := make([]T, len(rows))
	workers := o.cfg.Workers
	if workers > len(rows) {
		workers = len(rows)
	}

	if workers <= 1 || len(rows) < minRowsParallel {
		var rerrs []*RowError
		for i := range rows {
			v, err := fn(i)
			if err != nil {
				rerrs = append(rerrs, &RowError{Row: i, Err: err})
				continue
			}
			out[i] = v
		}
		return out, rowErrsOrNil(rerrs)
	}

	// Workers pull contiguous index ranges; each worker collects its
	// errors locally, and the merged list is sorted by row afterward
	// so the error list is deterministic.
	type chunk struct{ lo, hi int }
	chunkSize := (len(rows) + workers - 1) / workers
	chunks := make(chan chunk, workers)
	errsByChunk := make([][]*RowError, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for c := range chunks {
				for i := c.lo; i < c.hi; i++ {
					v, err := fn(i)
					if err != nil {
						errsByChunk[worker] = append(errsByChunk[worker], &RowError{Row: i, Err: err})
						continue
					}
					out[i] = v
				}
			}
		}(w)
	}

	for lo := 0; lo < len(rows); lo += chunkSize {
		hi := lo + chunkSize
		if hi > len(rows) {
			hi = len(rows)
		}
		chunks <- chunk{lo, hi}
	}
	close(chunks)
	wg.Wait()

	var rerrs []*RowError
	for _, ce := range errsByChunk {
		rerrs = append(rerrs, ce...)
	}
	sortRowErrors(rerrs)
	return out, rowErrsOrNil(rerrs)
}

func rowErrsOrNil(rerrs []*RowError) error {
	if len(rerrs) == 0 {
		return nil
	}
	return &RowErrors{Errors: rerrs}
}

func sortRowErrors(rerrs []*RowError) {
	// Insertion sort: error lists are short and nearly sorted (chunks
	// are appended in worker order, rows ascend within a chunk).
	for i := 1; i < len(rerrs); i++ {
		for j := i; j > 0 && rerrs[j-1].Row > rerrs[j].Row; j-- {
			rerrs[j-1], rerrs[j] = rerrs[j], rerrs[j-1]
		}
	}
}
