package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// UnsupportedError is returned instead of silent fallback routing when the
// cache runs in strict (linear-only) mode and a pattern uses a construct
// the automaton engine cannot express.
type UnsupportedError struct {
	Pattern   string
	Construct Construct
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("pattern %q uses %s, which the linear-time engine cannot express", e.Pattern, e.Construct)
}

// Options configures engine selection.
type Options struct {
	// Budget bounds each backtracking match call. Zero means unbounded.
	Budget time.Duration

	// Strict disables fallback routing: patterns with non-regular
	// constructs fail to compile with *UnsupportedError.
	Strict bool

	// MaxSize caps the number of cached engines (FIFO eviction).
	MaxSize int

	// Logger receives the one-per-pattern advisory when a pattern is
	// routed to the backtracking engine. Nil disables the advisory.
	Logger *slog.Logger
}

// Cache is the engine selector with thread-safe compiled-engine caching.
// Selection is deterministic: a given pattern text always resolves to the
// same engine kind. Reads are lock-free via sync.Map; concurrent first
// access may compile redundantly but only one result is ever cached.
type Cache struct {
	cache   sync.Map   // map[string]Engine - lock-free reads
	orderMu sync.Mutex // protects order slice for eviction
	order   []string   // FIFO order for eviction
	size    int32
	opts    Options
}

// NewCache creates a cache with the given options.
func NewCache(opts Options) *Cache {
	if opts.MaxSize <= 0 {
		opts.MaxSize = 256
	}
	return &Cache{
		order: make([]string, 0, opts.MaxSize),
		opts:  opts,
	}
}

// Get returns the engine for pattern, selecting and compiling on first use.
//
// Selection is two-phase and explicit: Classify decides whether the pattern
// stays inside the regular subset; only that classification triggers
// fallback routing. A pattern that classifies as regular but fails to
// compile is a syntax error surfaced to the caller, never a silent
// fallback.
func (c *Cache) Get(pattern string) (Engine, error) {
	// Fast path: lock-free cache lookup
	if eng, ok := c.cache.Load(pattern); ok {
		return eng.(Engine), nil
	}

	eng, err := c.compile(pattern)
	if err != nil {
		return nil, err
	}

	// Another goroutine might have stored it already
	if existing, loaded := c.cache.LoadOrStore(pattern, eng); loaded {
		return existing.(Engine), nil
	}

	// Successfully stored - update eviction order
	c.orderMu.Lock()
	c.order = append(c.order, pattern)
	c.size++

	for int(c.size) > c.opts.MaxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.cache.Delete(oldest)
		c.size--
	}
	c.orderMu.Unlock()

	if eng.Kind() == Backtracking && c.opts.Logger != nil {
		c.opts.Logger.Warn("pattern routed to backtracking engine; linear-time guarantee does not apply",
			"pattern", pattern,
			"construct", Classify(pattern).String())
	}

	return eng, nil
}

func (c *Cache) compile(pattern string) (Engine, error) {
	if ctor := Classify(pattern); ctor != Regular {
		if c.opts.Strict {
			return nil, &UnsupportedError{Pattern: pattern, Construct: ctor}
		}
		return CompileFallback(pattern, c.opts.Budget)
	}
	return CompileAutomaton(pattern)
}

// Len returns the approximate number of cached engines.
func (c *Cache) Len() int {
	c.orderMu.Lock()
	n := int(c.size)
	c.orderMu.Unlock()
	return n
}

// Clear removes all cached engines.
func (c *Cache) Clear() {
	c.orderMu.Lock()
	defer c.orderMu.Unlock()
	for _, p := range c.order {
		c.cache.Delete(p)
	}
	c.order = c.order[:0]
	c.size = 0
}
