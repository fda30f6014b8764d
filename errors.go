package wofa

import "errors"

var (
	// ErrInvalidAlphabet is returned for an empty alphabet, an empty symbol or a duplicated symbol.
	ErrInvalidAlphabet = errors.New("invalid alphabet")

	// ErrInvalidAutomaton is returned when an automaton references an unknown symbol or has no
	// initial state.
	ErrInvalidAutomaton = errors.New("invalid automaton")

	// ErrAlphabetMismatch is returned when two automata over different alphabets are combined.
	ErrAlphabetMismatch = errors.New("alphabet mismatch")

	// ErrUndefinedWeightParameter is returned for a lambda outside (0,1) or a negative eta.
	ErrUndefinedWeightParameter = errors.New("undefined weight parameter")

	ErrNotDeterministic = errors.New("input automaton must be deterministic")

	ErrNotComplete = errors.New("input automaton must be complete")

	// ErrTooComplexToDeterminize is returned when the subset construction exceeds its work limit.
	ErrTooComplexToDeterminize = errors.New("automaton too complex to determinize")

	ErrInvalidConfig = errors.New("invalid config")
)
