package wofa

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrader(t *testing.T) {
	_, err := NewGrader(DefaultConfig())
	assert.NoError(t, err)

	cfg := DefaultConfig()
	cfg.TailMass = 1.5
	_, err = NewGrader(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGrader_Parameters(t *testing.T) {
	alphabet := newAB(t)
	ref := newReference(t, alphabet)

	g, err := NewGrader(DefaultConfig())
	require.NoError(t, err)
	eta, lambda, err := g.Parameters(ref)
	require.NoError(t, err)
	assert.Equal(t, 4, eta)
	assert.InDelta(t, math.Pow(0.5, 0.25), lambda, delta)

	// A language holding only the empty word still gets a positive eta.
	eta, _, err = g.Parameters(NewAutomata(alphabet).MakeEmptyString())
	require.NoError(t, err)
	assert.Equal(t, 1, eta)

	cfg := DefaultConfig()
	cfg.Eta = 6
	cfg.TailMass = 0.2
	g, err = NewGrader(cfg)
	require.NoError(t, err)
	eta, lambda, err = g.Parameters(ref)
	require.NoError(t, err)
	assert.Equal(t, 6, eta)
	assert.InDelta(t, 0.8, math.Pow(lambda, 6), delta)
}

func TestGrader_Grade(t *testing.T) {
	alphabet := newAB(t)
	ref := newReference(t, alphabet)

	g, err := NewGrader(DefaultConfig())
	require.NoError(t, err)

	t.Run("correct", func(t *testing.T) {
		// Same language with the states renamed and the sink spelled out.
		same, err := NewAutomaton(alphabet,
			[]int{10},
			[]Triple{
				{10, "a", 20}, {10, "b", 10},
				{20, "a", 20}, {20, "b", 30},
				{30, "a", 20}, {30, "b", 40},
				{40, "b", 10}, {40, "a", 99},
				{99, "a", 99}, {99, "b", 99},
			},
			[]int{10, 20, 30, 40})
		require.NoError(t, err)

		grade, err := g.Grade(ref, same)
		require.NoError(t, err)
		assert.Equal(t, 4, grade.Eta)
		assert.Equal(t, 0.0, grade.Symmetric)
	})

	t.Run("ranking", func(t *testing.T) {
		// Misses the words ending in state 4.
		partial, err := NewAutomaton(alphabet,
			[]int{1},
			[]Triple{
				{1, "a", 2}, {1, "b", 1},
				{2, "a", 2}, {2, "b", 3},
				{3, "a", 2}, {3, "b", 4},
				{4, "b", 1},
			},
			[]int{1, 2, 3})
		require.NoError(t, err)
		empty := NewAutomata(alphabet).MakeEmpty()

		g1, err := g.Grade(ref, partial)
		require.NoError(t, err)
		g2, err := g.Grade(ref, empty)
		require.NoError(t, err)

		assert.Greater(t, g1.OnlyA, 0.0)
		assert.Equal(t, 0.0, g1.OnlyB)
		assert.Less(t, g1.Symmetric, g2.Symmetric)

		w, err := Weight(ref, g2.Eta, g2.Lambda)
		require.NoError(t, err)
		assert.InDelta(t, w, g2.Symmetric, delta)
		assert.LessOrEqual(t, g2.Symmetric, 1.0)
	})

	t.Run("alphabet mismatch", func(t *testing.T) {
		other, err := NewAlphabet("a", "b", "c")
		require.NoError(t, err)
		_, err = g.Grade(ref, NewAutomata(other).MakeAnyString())
		assert.ErrorIs(t, err, ErrAlphabetMismatch)
	})
}
