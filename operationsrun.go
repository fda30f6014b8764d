package wofa

import "github.com/bits-and-blooms/bitset"

// Run Returns true if a accepts the word. Nondeterministic automata are simulated on the set of
// current states; a symbol outside the alphabet rejects the word.
func Run(a *Automaton, word []string) bool {
	labels, err := a.alphabet.Labels(word)
	if err != nil {
		return false
	}

	current := a.isInitial.Clone()
	next := bitset.New(uint(a.GetNumStates()))
	for _, label := range labels {
		next.ClearAll()
		for s, ok := current.NextSet(0); ok; s, ok = current.NextSet(s + 1) {
			from, to := a.labelRange(int(s), label)
			first := a.states[2*s]
			for i := from; i < to; i++ {
				next.Set(uint(a.transitions[first+2*i]))
			}
		}
		if next.None() {
			return false
		}
		current, next = next, current
	}
	return current.IntersectionCardinality(a.isAccept) > 0
}
