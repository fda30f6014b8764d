package wofa

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	alphabet := newAB(t)
	ref := newReference(t, alphabet)
	nfa := newEndsWithAB(t, alphabet)

	tests := []struct {
		word   string
		ref    bool
		endsAB bool
	}{
		{word: "", ref: true, endsAB: false},
		{word: "a", ref: true, endsAB: false},
		{word: "ab", ref: true, endsAB: true},
		{word: "abb", ref: true, endsAB: false},
		{word: "abba", ref: false, endsAB: false},
		{word: "abbb", ref: true, endsAB: false},
		{word: "abbbab", ref: true, endsAB: true},
		{word: "babbab", ref: false, endsAB: true},
		{word: "c", ref: false, endsAB: false},
		{word: "abc", ref: false, endsAB: false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			word := strings.Split(tt.word, "")
			assert.Equal(t, tt.ref, Run(ref, word))
			assert.Equal(t, tt.endsAB, Run(nfa, word))
		})
	}
}

func TestRunAutomaton(t *testing.T) {
	alphabet := newAB(t)
	nfa := newNthFromEnd(t, alphabet, 3)

	r, err := NewRunAutomaton(nfa, DEFAULT_DETERMINIZE_WORK_LIMIT)
	require.NoError(t, err)
	// Subsets of {0, 1, 2, 3} that contain 0.
	assert.Equal(t, 8, r.GetSize())
	assert.False(t, r.IsAccept(r.GetInitialState()))

	for _, w := range allWords(alphabet, 6) {
		require.Equalf(t, Run(nfa, w), r.Run(w), "word %v", w)
	}
	assert.False(t, r.Run([]string{"a", "z", "b"}))

	t.Run("partial", func(t *testing.T) {
		r, err := NewRunAutomaton(newReference(t, alphabet), DEFAULT_DETERMINIZE_WORK_LIMIT)
		require.NoError(t, err)
		assert.Equal(t, 4, r.GetSize())

		label, _ := alphabet.Label("a")
		// State 4 of the reference has no move on a.
		p := r.GetInitialState()
		for _, symbol := range []string{"a", "b", "b"} {
			l, _ := alphabet.Label(symbol)
			p = r.Step(p, l)
		}
		assert.Equal(t, -1, r.Step(p, label))
		assert.False(t, r.Run([]string{"a", "b", "b", "a", "b"}))
	})

	t.Run("work limit", func(t *testing.T) {
		_, err := NewRunAutomaton(newNthFromEnd(t, alphabet, 8), 1)
		assert.ErrorIs(t, err, ErrTooComplexToDeterminize)
	})
}
