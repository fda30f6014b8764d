package wofa

import "fmt"

// Automata Creates common automata over one alphabet.
type Automata struct {
	alphabet *Alphabet
}

func NewAutomata(alphabet *Alphabet) *Automata {
	return &Automata{alphabet: alphabet}
}

// MakeEmpty
// Returns a new (deterministic) automaton with the empty language.
func (r *Automata) MakeEmpty() *Automaton {
	b := NewBuilder(r.alphabet)
	s := b.CreateState()
	b.SetInitial(s, true)
	return b.Finish()
}

// MakeEmptyString
// Returns a new (deterministic) automaton that accepts only the empty string.
func (r *Automata) MakeEmptyString() *Automaton {
	b := NewBuilder(r.alphabet)
	s := b.CreateState()
	b.SetInitial(s, true)
	b.SetAccept(s, true)
	return b.Finish()
}

// MakeAnyString
// Returns a new (deterministic, complete) automaton that accepts all strings.
func (r *Automata) MakeAnyString() *Automaton {
	b := NewBuilder(r.alphabet)
	s := b.CreateState()
	b.SetInitial(s, true)
	b.SetAccept(s, true)
	for label := 0; label < r.alphabet.Size(); label++ {
		_ = b.AddTransition(s, label, s)
	}
	return b.Finish()
}

// MakeSymbol
// Returns a new (deterministic) automaton that accepts the single one-symbol string.
func (r *Automata) MakeSymbol(symbol string) (*Automaton, error) {
	return r.MakeString(symbol)
}

// MakeString
// Returns a new (deterministic) automaton that accepts exactly the given word.
func (r *Automata) MakeString(word ...string) (*Automaton, error) {
	b := NewBuilder(r.alphabet)
	s := b.CreateState()
	b.SetInitial(s, true)
	for _, symbol := range word {
		label, ok := r.alphabet.Label(symbol)
		if !ok {
			return nil, fmt.Errorf("%w: symbol %q is not in the alphabet %s", ErrInvalidAutomaton, symbol, r.alphabet)
		}
		next := b.CreateState()
		if err := b.AddTransition(s, label, next); err != nil {
			return nil, err
		}
		s = next
	}
	b.SetAccept(s, true)
	return b.Finish(), nil
}
