package wofa

import (
	"fmt"
	"slices"
	"strings"
)

// Alphabet is an ordered, finite set of symbols. The label of a symbol is its index; automata
// store labels, never symbols. Every automaton carries the alphabet it was built over and
// binary operations refuse operands whose alphabets differ.
type Alphabet struct {
	symbols []string
	labels  map[string]int
}

// NewAlphabet Returns an alphabet over the given symbols, in the given order.
func NewAlphabet(symbols ...string) (*Alphabet, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: no symbols", ErrInvalidAlphabet)
	}

	labels := make(map[string]int, len(symbols))
	for i, symbol := range symbols {
		if symbol == "" {
			return nil, fmt.Errorf("%w: empty symbol at position %d", ErrInvalidAlphabet, i)
		}
		if _, ok := labels[symbol]; ok {
			return nil, fmt.Errorf("%w: duplicate symbol %q", ErrInvalidAlphabet, symbol)
		}
		labels[symbol] = i
	}

	return &Alphabet{
		symbols: slices.Clone(symbols),
		labels:  labels,
	}, nil
}

// Size How many symbols this alphabet has.
func (a *Alphabet) Size() int {
	return len(a.symbols)
}

// Symbol Returns the symbol carrying the given label.
func (a *Alphabet) Symbol(label int) string {
	return a.symbols[label]
}

// Label Returns the label of symbol, false if the symbol is not part of the alphabet.
func (a *Alphabet) Label(symbol string) (int, bool) {
	label, ok := a.labels[symbol]
	return label, ok
}

func (a *Alphabet) Symbols() []string {
	return slices.Clone(a.symbols)
}

// Labels translates a word into labels, failing on the first unknown symbol.
func (a *Alphabet) Labels(word []string) ([]int, error) {
	labels := make([]int, len(word))
	for i, symbol := range word {
		label, ok := a.labels[symbol]
		if !ok {
			return nil, fmt.Errorf("%w: symbol %q at position %d is not in the alphabet", ErrInvalidAutomaton, symbol, i)
		}
		labels[i] = label
	}
	return labels, nil
}

// Equals Returns true if both alphabets list the same symbols in the same order.
func (a *Alphabet) Equals(other *Alphabet) bool {
	if a == other {
		return true
	}
	if a == nil || other == nil {
		return false
	}
	return slices.Equal(a.symbols, other.symbols)
}

func (a *Alphabet) String() string {
	return "{" + strings.Join(a.symbols, ", ") + "}"
}

func sameAlphabet(a1, a2 *Automaton) error {
	if !a1.alphabet.Equals(a2.alphabet) {
		return fmt.Errorf("%w: %s != %s", ErrAlphabetMismatch, a1.alphabet, a2.alphabet)
	}
	return nil
}
