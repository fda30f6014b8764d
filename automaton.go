package wofa

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Automaton Represents an immutable, possibly nondeterministic, finite automaton over an Alphabet.
// States are the integers 0..GetNumStates()-1. Transitions are labelled with alphabet labels and
// are kept sorted per state, first by label and then by dest, so all destinations of one
// (state, label) pair are adjacent. Automata are only created through a Builder or through the
// operations of this package, and no operation ever modifies its operands.
type Automaton struct {
	alphabet *Alphabet

	// Index in the transitions array, where this states leaving transitions are stored,
	// followed by number of transitions.
	states []int

	// Holds dest, label for each transition.
	transitions []int

	isInitial *bitset.BitSet
	isAccept  *bitset.BitSet

	// Caller supplied state identifiers, nil for generated automata.
	ids []int

	// True if there is one initial state and no state has two transitions leaving with the same label.
	deterministic bool

	// True if every state has a transition for every label.
	complete bool
}

// Transition Holds one transition, or serves as a cursor when iterating the transitions of a state
// with InitTransition and GetNextTransition.
type Transition struct {
	Source int
	Dest   int
	Label  int

	// Position of the next transition in the transitions array.
	TransitionUpto int
}

func NewTransition() *Transition {
	return &Transition{}
}

func (t *Transition) String() string {
	return fmt.Sprintf("%d -%d-> %d", t.Source, t.Label, t.Dest)
}

// Alphabet The alphabet this automaton is defined over.
func (a *Automaton) Alphabet() *Alphabet {
	return a.alphabet
}

// GetNumStates How many states this automaton has.
func (a *Automaton) GetNumStates() int {
	return len(a.states) / 2
}

// GetNumTransitions How many transitions this automaton has.
func (a *Automaton) GetNumTransitions() int {
	return len(a.transitions) / 2
}

// GetNumTransitionsWithState How many transitions this state has.
func (a *Automaton) GetNumTransitionsWithState(state int) int {
	return a.states[2*state+1]
}

// IsAccept Returns true if this state is an accept state.
func (a *Automaton) IsAccept(state int) bool {
	return a.isAccept.Test(uint(state))
}

// IsInitial Returns true if this state is an initial state.
func (a *Automaton) IsInitial(state int) bool {
	return a.isInitial.Test(uint(state))
}

// IsDeterministic Returns true if this automaton is deterministic (a single initial state, and for
// every state there is at most one transition for each label).
func (a *Automaton) IsDeterministic() bool {
	return a.deterministic
}

// IsComplete Returns true if every state has a transition for every label of the alphabet.
func (a *Automaton) IsComplete() bool {
	return a.complete
}

// GetInitialStates Returns the initial states in ascending order.
func (a *Automaton) GetInitialStates() []int {
	return toSlice(a.isInitial)
}

// GetInitialState Returns the lowest initial state. For a deterministic automaton this is
// the initial state.
func (a *Automaton) GetInitialState() int {
	state, _ := a.isInitial.NextSet(0)
	return int(state)
}

// GetAcceptStates Returns the accept states in ascending order.
func (a *Automaton) GetAcceptStates() []int {
	return toSlice(a.isAccept)
}

// Returns accept states. If the bit is set then that state is an accept state.
func (a *Automaton) getAcceptStates() *bitset.BitSet {
	return a.isAccept
}

// StateID Returns the identifier the caller used for this state in NewAutomaton, or the state
// itself for automata produced by an operation.
func (a *Automaton) StateID(state int) int {
	if a.ids == nil {
		return state
	}
	return a.ids[state]
}

// InitTransition Initialize the provided Transition to iterate through all transitions leaving the specified
// state. You must call GetNextTransition to get each transition. Returns the number of transitions leaving
// this state.
func (a *Automaton) InitTransition(state int, t *Transition) int {
	t.Source = state
	t.TransitionUpto = a.states[2*state]
	return a.GetNumTransitionsWithState(state)
}

// GetNextTransition Iterate to the next transition after the provided one
func (a *Automaton) GetNextTransition(t *Transition) {
	t.Dest = a.transitions[t.TransitionUpto]
	t.TransitionUpto++
	t.Label = a.transitions[t.TransitionUpto]
	t.TransitionUpto++
}

// Returns the index range [from, to) of the transitions of state carrying label.
func (a *Automaton) labelRange(state, label int) (int, int) {
	first := a.states[2*state]
	count := a.states[2*state+1]

	from := sort.Search(count, func(i int) bool {
		return a.transitions[first+2*i+1] >= label
	})
	to := from
	for to < count && a.transitions[first+2*to+1] == label {
		to++
	}
	return from, to
}

// Step Performs lookup in transitions, assuming determinism.
// Params: 	state – starting state
//
//	label – alphabet label to look up
//
// Returns: destination state, -1 if no matching outgoing transition
func (a *Automaton) Step(state, label int) int {
	from, to := a.labelRange(state, label)
	if from == to {
		return -1
	}
	return a.transitions[a.states[2*state]+2*from]
}

// Successors Returns the destinations reachable from state by label, in ascending order.
func (a *Automaton) Successors(state, label int) []int {
	from, to := a.labelRange(state, label)
	first := a.states[2*state]
	dests := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		dests = append(dests, a.transitions[first+2*i])
	}
	return dests
}

func (a *Automaton) String() string {
	b := new(strings.Builder)
	fmt.Fprintf(b, "alphabet=%s initial=%v accept=%v\n", a.alphabet, a.idsOf(a.GetInitialStates()), a.idsOf(a.GetAcceptStates()))

	t := NewTransition()
	for s := 0; s < a.GetNumStates(); s++ {
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			fmt.Fprintf(b, "  %d -%s-> %d\n", a.StateID(s), a.alphabet.Symbol(t.Label), a.StateID(t.Dest))
		}
	}
	return b.String()
}

func (a *Automaton) idsOf(states []int) []int {
	ids := make([]int, len(states))
	for i, s := range states {
		ids[i] = a.StateID(s)
	}
	return ids
}

func toSlice(set *bitset.BitSet) []int {
	values := make([]int, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		values = append(values, int(i))
	}
	return values
}

// Builder Records states and transitions in any order and freezes them into an Automaton with Finish.
// It is the only mutable form of an automaton.
type Builder struct {
	alphabet  *Alphabet
	numStates int

	// Holds source, label, dest for each transition.
	transitions []int

	isInitial *bitset.BitSet
	isAccept  *bitset.BitSet
	ids       []int
}

func NewBuilder(alphabet *Alphabet) *Builder {
	return &Builder{
		alphabet:    alphabet,
		transitions: make([]int, 0, 12),
		isInitial:   bitset.New(2),
		isAccept:    bitset.New(2),
	}
}

// CreateState Create a new state.
func (r *Builder) CreateState() int {
	state := r.numStates
	r.numStates++
	return state
}

// GetNumStates How many states this builder has.
func (r *Builder) GetNumStates() int {
	return r.numStates
}

// SetAccept Set or clear this state as an accept state.
func (r *Builder) SetAccept(state int, accept bool) {
	r.isAccept.SetTo(uint(state), accept)
}

// SetInitial Set or clear this state as an initial state.
func (r *Builder) SetInitial(state int, initial bool) {
	r.isInitial.SetTo(uint(state), initial)
}

func (r *Builder) IsAccept(state int) bool {
	return r.isAccept.Test(uint(state))
}

func (r *Builder) setIDs(ids []int) {
	r.ids = ids
}

// AddTransition Add a new transition with the specified source, label and dest.
func (r *Builder) AddTransition(source, label, dest int) error {
	if source < 0 || source >= r.numStates {
		return fmt.Errorf("%w: source state %d was not created", ErrInvalidAutomaton, source)
	}
	if dest < 0 || dest >= r.numStates {
		return fmt.Errorf("%w: dest state %d was not created", ErrInvalidAutomaton, dest)
	}
	if label < 0 || label >= r.alphabet.Size() {
		return fmt.Errorf("%w: label %d is outside the alphabet %s", ErrInvalidAutomaton, label, r.alphabet)
	}
	r.transitions = append(r.transitions, source, label, dest)
	return nil
}

// CopyStates Copies over all states, accept flags and transitions from other. The states are
// appended; the returned offset maps a state s of other to offset+s. Initial flags are not copied.
func (r *Builder) CopyStates(other *Automaton) int {
	offset := r.numStates
	r.numStates += other.GetNumStates()

	accept := other.getAcceptStates()
	for s, ok := accept.NextSet(0); ok; s, ok = accept.NextSet(s + 1) {
		r.SetAccept(offset+int(s), true)
	}

	t := NewTransition()
	for s := 0; s < other.GetNumStates(); s++ {
		count := other.InitTransition(s, t)
		for i := 0; i < count; i++ {
			other.GetNextTransition(t)
			r.transitions = append(r.transitions, offset+s, t.Label, offset+t.Dest)
		}
	}
	return offset
}

// Finish Sorts and deduplicates the recorded transitions and returns the frozen automaton.
// The builder must not be used afterwards.
func (r *Builder) Finish() *Automaton {
	numStates := r.numStates
	size := len(r.transitions) / 3
	sort.Sort(&builderSorter{values: r.transitions, size: size})

	a := &Automaton{
		alphabet:      r.alphabet,
		states:        make([]int, 2*numStates),
		transitions:   make([]int, 0, 2*size),
		isInitial:     r.isInitial,
		isAccept:      r.isAccept,
		ids:           r.ids,
		deterministic: r.isInitial.Count() == 1,
		complete:      true,
	}

	k := r.alphabet.Size()
	upto := 0
	for s := 0; s < numStates; s++ {
		a.states[2*s] = len(a.transitions)
		labels := 0
		lastLabel, lastDest := -1, -1
		for upto < size && r.transitions[3*upto] == s {
			label := r.transitions[3*upto+1]
			dest := r.transitions[3*upto+2]
			upto++
			if label == lastLabel {
				if dest == lastDest {
					continue
				}
				a.deterministic = false
			} else {
				labels++
			}
			a.transitions = append(a.transitions, dest, label)
			a.states[2*s+1]++
			lastLabel, lastDest = label, dest
		}
		if labels < k {
			a.complete = false
		}
	}

	return a
}

// Sorts packed (source, label, dest) triples ascending.
type builderSorter struct {
	values []int
	size   int
}

func (b *builderSorter) Len() int {
	return b.size
}

func (b *builderSorter) Less(i, j int) bool {
	i *= 3
	j *= 3

	for d := 0; d < 3; d++ {
		if b.values[i+d] != b.values[j+d] {
			return b.values[i+d] < b.values[j+d]
		}
	}
	return false
}

func (b *builderSorter) Swap(i, j int) {
	i *= 3
	j *= 3

	b.values[i], b.values[j] = b.values[j], b.values[i]
	b.values[i+1], b.values[j+1] = b.values[j+1], b.values[i+1]
	b.values[i+2], b.values[j+2] = b.values[j+2], b.values[i+2]
}

var _ sort.Interface = &builderSorter{}
