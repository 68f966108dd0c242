package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bothEngines compiles pattern under the automaton and the fallback engine.
// Used to check the two engines agree on the shared regular subset.
func bothEngines(t *testing.T, pattern string) (*Automaton, *Fallback) {
	t.Helper()
	a, err := CompileAutomaton(pattern)
	require.NoError(t, err, "automaton compile %q", pattern)
	f, err := CompileFallback(pattern, time.Second)
	require.NoError(t, err, "fallback compile %q", pattern)
	return a, f
}

func TestEnginesAgreeOnRegularSubset(t *testing.T) {
	// Patterns chosen to be unambiguous: leftmost-longest (automaton) and
	// leftmost-first (fallback) select the same match for all of these.
	patterns := []string{
		`[0-9]+`,
		`hello`,
		`^h.*o$`,
		`(\w+)=(\w+)`,
		`[a-z]+[0-9]{2,3}`,
		`(a)|(b)`,
		`\bword\b`,
		`a*`,
	}
	inputs := []string{
		"",
		"hello",
		"say hello there",
		"2024-01-02",
		"key=value pairs=2",
		"abc123 xy45",
		"b",
		"baa",
		"word boundary word",
		"no digits here",
	}

	for _, pattern := range patterns {
		a, f := bothEngines(t, pattern)
		assert.Equal(t, a.NumGroups(), f.NumGroups(), "NumGroups for %q", pattern)

		for _, input := range inputs {
			am, err := a.Find(input)
			require.NoError(t, err)
			fm, err := f.Find(input)
			require.NoError(t, err)
			if am == nil {
				assert.Nil(t, fm, "Find(%q, %q): fallback matched, automaton did not", pattern, input)
			} else {
				require.NotNil(t, fm, "Find(%q, %q): automaton matched, fallback did not", pattern, input)
				assert.Equal(t, am.Groups, fm.Groups, "Find(%q, %q) groups", pattern, input)
			}

			aspans, err := a.FindAll(input, -1)
			require.NoError(t, err)
			fspans, err := f.FindAll(input, -1)
			require.NoError(t, err)
			assert.Equal(t, aspans, fspans, "FindAll(%q, %q)", pattern, input)

			aok, err := a.Match(input)
			require.NoError(t, err)
			fok, err := f.Match(input)
			require.NoError(t, err)
			assert.Equal(t, aok, fok, "Match(%q, %q)", pattern, input)

			apre, err := a.MatchPrefix(input)
			require.NoError(t, err)
			fpre, err := f.MatchPrefix(input)
			require.NoError(t, err)
			assert.Equal(t, apre, fpre, "MatchPrefix(%q, %q)", pattern, input)

			asuf, err := a.MatchSuffix(input)
			require.NoError(t, err)
			fsuf, err := f.MatchSuffix(input)
			require.NoError(t, err)
			assert.Equal(t, asuf, fsuf, "MatchSuffix(%q, %q)", pattern, input)
		}
	}
}

func TestAutomatonFind(t *testing.T) {
	a, err := CompileAutomaton(`(\w+)=(\w+)`)
	require.NoError(t, err)
	assert.Equal(t, Linear, a.Kind())
	assert.Equal(t, 3, a.NumGroups())

	m, err := a.Find("x key=value y")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, Span{2, 11}, m.Span())
	assert.Equal(t, Span{2, 5}, m.Group(1))
	assert.Equal(t, Span{6, 11}, m.Group(2))
	assert.Equal(t, Span{-1, -1}, m.Group(3), "out of range group")

	m, err = a.Find("no pairs")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestAutomatonAnchoredModes(t *testing.T) {
	a, err := CompileAutomaton(`ab+`)
	require.NoError(t, err)

	for _, tt := range []struct {
		input  string
		prefix bool
		suffix bool
	}{
		{"abb", true, true},
		{"abbc", true, false},
		{"cabb", false, true},
		{"cabbc", false, false},
		{"", false, false},
	} {
		got, err := a.MatchPrefix(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.prefix, got, "MatchPrefix(%q)", tt.input)

		got, err = a.MatchSuffix(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.suffix, got, "MatchSuffix(%q)", tt.input)
	}
}

func TestAutomatonSuffixQuantified(t *testing.T) {
	// Quantified patterns must report suffix matches; the walk over
	// candidate starts may not stop at an earlier, shorter match.
	a, err := CompileAutomaton(`[a-z]+[0-9]{2,3}`)
	require.NoError(t, err)

	for _, tt := range []struct {
		input string
		want  bool
	}{
		{"abc123 xy45", true},
		{"xy45", true},
		{"abc123 xy", false},
		{"45", false},
	} {
		got, err := a.MatchSuffix(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "MatchSuffix(%q)", tt.input)
	}
}

func TestAutomatonSuffixKeepsAnchors(t *testing.T) {
	// A ^ inside the pattern still refers to the start of the whole
	// input, not to a candidate suffix position.
	a, err := CompileAutomaton(`^ab`)
	require.NoError(t, err)

	got, err := a.MatchSuffix("ab")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = a.MatchSuffix("xab")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestAutomatonAnchoredAlternation(t *testing.T) {
	// The derived anchored programs must keep top-level alternations
	// under the anchor: ^(?:ab|cd), not ^ab|cd.
	a, err := CompileAutomaton(`ab|cd`)
	require.NoError(t, err)

	got, err := a.MatchPrefix("cdx")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = a.MatchPrefix("xcd")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestFindAllEmptyMatchProgress(t *testing.T) {
	a, f := bothEngines(t, `x*`)
	for _, eng := range []Engine{a, f} {
		spans, err := eng.FindAll("abc", -1)
		require.NoError(t, err)
		// Must terminate and advance through the input.
		require.NotEmpty(t, spans, "%s engine", eng.Kind())
		last := -1
		for _, sp := range spans {
			assert.Greater(t, sp.Start, last, "%s engine: no progress", eng.Kind())
			last = sp.Start
		}
	}
}

func TestFindAllEmptyAfterNonEmpty(t *testing.T) {
	// An empty match directly after a non-empty match at the same
	// position is suppressed, on both engines, following stdlib FindAll
	// behavior: a* over "baa" is two matches, not three.
	a, f := bothEngines(t, `a*`)
	for _, eng := range []Engine{a, f} {
		spans, err := eng.FindAll("baa", -1)
		require.NoError(t, err)
		assert.Equal(t, []Span{{0, 0}, {1, 3}}, spans, "%s engine", eng.Kind())
	}
}

func TestFindAllLimit(t *testing.T) {
	a, f := bothEngines(t, `[0-9]`)
	for _, eng := range []Engine{a, f} {
		spans, err := eng.FindAll("1 2 3 4", 2)
		require.NoError(t, err)
		assert.Equal(t, []Span{{0, 1}, {2, 3}}, spans, "%s engine", eng.Kind())
	}
}

func TestFallbackBackreference(t *testing.T) {
	f, err := CompileFallback(`(\w+) \1`, time.Second)
	require.NoError(t, err)
	assert.Equal(t, Backtracking, f.Kind())

	m, err := f.Find("say hello hello twice")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, Span{4, 15}, m.Span())
	assert.Equal(t, Span{4, 9}, m.Group(1))

	m, err = f.Find("no repeats here at all")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestFallbackByteOffsetsNonASCII(t *testing.T) {
	// regexp2 reports rune offsets; the engine must translate them so
	// spans index bytes of the original string.
	f, err := CompileFallback(`(b+)\1`, time.Second)
	require.NoError(t, err)

	input := "äöü bbbb tail" // 3 two-byte runes before the match
	m, err := f.Find(input)
	require.NoError(t, err)
	require.NotNil(t, m)
	sp := m.Span()
	assert.Equal(t, "bbbb", input[sp.Start:sp.End])
	g := m.Group(1)
	assert.Equal(t, "bb", input[g.Start:g.End])
}

func TestFallbackTimeout(t *testing.T) {
	// Catastrophic backtracking: bounded by the match budget, surfaced
	// as *TimeoutError instead of hanging.
	f, err := CompileFallback(`(a+)+\1$`, 10*time.Millisecond)
	require.NoError(t, err)

	_, err = f.Match(strings.Repeat("a", 64) + "b")
	require.Error(t, err)
	var terr *TimeoutError
	assert.ErrorAs(t, err, &terr)
	assert.Equal(t, 10*time.Millisecond, terr.Budget)
}

func TestMatchGroupHelpers(t *testing.T) {
	m := &Match{Groups: []Span{{0, 5}, {1, 2}, {-1, -1}}}
	assert.Equal(t, Span{0, 5}, m.Span())
	assert.Equal(t, Span{1, 2}, m.Group(1))
	assert.False(t, m.Group(2).Valid())
	assert.False(t, m.Group(7).Valid())
	assert.False(t, m.Group(-1).Valid())
}
