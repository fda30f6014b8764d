package wofa

import (
	"fmt"
	"slices"
)

// Triple is one transition of NewAutomaton, written with the caller's state identifiers.
type Triple struct {
	Source int
	Symbol string
	Dest   int
}

// NewAutomaton Builds an automaton from its initial states, transitions and final states. The states
// are the union of every identifier referenced; they are numbered in ascending identifier order and
// StateID maps them back. Several triples with the same source and symbol make the automaton
// nondeterministic; a missing triple means there is no move.
func NewAutomaton(alphabet *Alphabet, initial []int, transitions []Triple, final []int) (*Automaton, error) {
	if alphabet == nil {
		return nil, fmt.Errorf("%w: no alphabet", ErrInvalidAutomaton)
	}
	if len(initial) == 0 {
		return nil, fmt.Errorf("%w: initial state set is empty", ErrInvalidAutomaton)
	}

	ids := make([]int, 0, len(initial)+len(final)+2*len(transitions))
	ids = append(ids, initial...)
	ids = append(ids, final...)
	for _, tr := range transitions {
		ids = append(ids, tr.Source, tr.Dest)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	state := func(id int) int {
		s, _ := slices.BinarySearch(ids, id)
		return s
	}

	b := NewBuilder(alphabet)
	for range ids {
		b.CreateState()
	}
	b.setIDs(ids)

	for _, id := range initial {
		b.SetInitial(state(id), true)
	}
	for _, id := range final {
		b.SetAccept(state(id), true)
	}
	for _, tr := range transitions {
		label, ok := alphabet.Label(tr.Symbol)
		if !ok {
			return nil, fmt.Errorf("%w: transition (%d, %q, %d) uses a symbol outside the alphabet %s",
				ErrInvalidAutomaton, tr.Source, tr.Symbol, tr.Dest, alphabet)
		}
		if err := b.AddTransition(state(tr.Source), label, state(tr.Dest)); err != nil {
			return nil, err
		}
	}

	return b.Finish(), nil
}
