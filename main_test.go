package wofa

import (
	"flag"
	"os"
	"testing"

	u "github.com/araddon/gou"
	"github.com/stretchr/testify/require"
)

var logLevel = flag.String("logging", "warn", "Which log level: [debug,info,warn,error,fatal]")

func TestMain(m *testing.M) {
	flag.Parse()
	u.SetupLogging(*logLevel)
	os.Exit(m.Run())
}

func newAB(t *testing.T) *Alphabet {
	alphabet, err := NewAlphabet("a", "b")
	require.NoError(t, err)
	return alphabet
}

// The reference automaton of the grading example: it rejects exactly the words reading a
// after reaching state 4.
func newReference(t *testing.T, alphabet *Alphabet) *Automaton {
	a, err := NewAutomaton(alphabet,
		[]int{1},
		[]Triple{
			{1, "a", 2}, {1, "b", 1},
			{2, "a", 2}, {2, "b", 3},
			{3, "a", 2}, {3, "b", 4},
			{4, "b", 1},
		},
		[]int{1, 2, 3, 4})
	require.NoError(t, err)
	return a
}

// Nondeterministic automaton accepting the words ending in ab.
func newEndsWithAB(t *testing.T, alphabet *Alphabet) *Automaton {
	a, err := NewAutomaton(alphabet,
		[]int{0},
		[]Triple{{0, "a", 0}, {0, "b", 0}, {0, "a", 1}, {1, "b", 2}},
		[]int{2})
	require.NoError(t, err)
	return a
}

// Nondeterministic automaton accepting the words whose n-th symbol from the end is a.
func newNthFromEnd(t *testing.T, alphabet *Alphabet, n int) *Automaton {
	transitions := []Triple{{0, "a", 0}, {0, "b", 0}, {0, "a", 1}}
	for i := 1; i < n; i++ {
		transitions = append(transitions, Triple{i, "a", i + 1}, Triple{i, "b", i + 1})
	}
	a, err := NewAutomaton(alphabet, []int{0}, transitions, []int{n})
	require.NoError(t, err)
	return a
}

// Returns every word over alphabet of length 0..maxLen.
func allWords(alphabet *Alphabet, maxLen int) [][]string {
	words := [][]string{{}}
	last := [][]string{{}}
	for length := 1; length <= maxLen; length++ {
		next := make([][]string, 0, len(last)*alphabet.Size())
		for _, w := range last {
			for _, symbol := range alphabet.Symbols() {
				word := append(append(make([]string, 0, length), w...), symbol)
				next = append(next, word)
			}
		}
		words = append(words, next...)
		last = next
	}
	return words
}

// Checks that a1 and a2 agree on every word up to maxLen.
func requireSameWords(t *testing.T, a1, a2 *Automaton, maxLen int) {
	t.Helper()
	for _, w := range allWords(a1.Alphabet(), maxLen) {
		require.Equalf(t, Run(a1, w), Run(a2, w), "word %v", w)
	}
}
