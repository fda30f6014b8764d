package wofa

import "github.com/bits-and-blooms/bitset"

// RunAutomaton A deterministic automaton compiled into a dense transition table, for running many
// words and for counting words by length.
type RunAutomaton struct {
	alphabet *Alphabet
	size     int
	initial  int
	accept   *bitset.BitSet

	// transitions[state*alphabet.Size()+label] is the destination, -1 if there is no move.
	transitions []int
}

// NewRunAutomaton Compiles a, determinizing it first if needed.
func NewRunAutomaton(a *Automaton, determinizeWorkLimit int) (*RunAutomaton, error) {
	d, err := Determinize(a, determinizeWorkLimit)
	if err != nil {
		return nil, err
	}
	return compile(d), nil
}

// Compiles the deterministic automaton d.
func compile(d *Automaton) *RunAutomaton {
	numLabels := d.alphabet.Size()
	r := &RunAutomaton{
		alphabet:    d.alphabet,
		size:        d.GetNumStates(),
		initial:     d.GetInitialState(),
		accept:      d.getAcceptStates().Clone(),
		transitions: make([]int, d.GetNumStates()*numLabels),
	}

	for s := 0; s < r.size; s++ {
		for label := 0; label < numLabels; label++ {
			r.transitions[s*numLabels+label] = d.Step(s, label)
		}
	}
	return r
}

// GetSize Returns number of states in automaton.
func (r *RunAutomaton) GetSize() int {
	return r.size
}

func (r *RunAutomaton) GetInitialState() int {
	return r.initial
}

// IsAccept Returns acceptance status for given state.
func (r *RunAutomaton) IsAccept(state int) bool {
	return r.accept.Test(uint(state))
}

// Step Returns the state obtained by reading the given label from the given state, -1 if there is
// no move.
func (r *RunAutomaton) Step(state, label int) int {
	return r.transitions[state*r.alphabet.Size()+label]
}

// Run Returns true if the given word is accepted by this automaton.
func (r *RunAutomaton) Run(word []string) bool {
	p := r.initial
	for _, symbol := range word {
		label, ok := r.alphabet.Label(symbol)
		if !ok {
			return false
		}
		p = r.Step(p, label)
		if p == -1 {
			return false
		}
	}
	return r.IsAccept(p)
}
