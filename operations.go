package wofa

import (
	"fmt"
	"slices"

	u "github.com/araddon/gou"
	"github.com/bits-and-blooms/bitset"
)

// DEFAULT_DETERMINIZE_WORK_LIMIT A decent default work limit for Determinize.
const DEFAULT_DETERMINIZE_WORK_LIMIT = 10000

// Determinize Determinizes the given automaton with the subset construction. Only subsets reachable
// from the initial subset are created; a subset accepts if it contains an accept state, and a label
// leading nowhere from every member of a subset stays a missing move.
// Worst case complexity: exponential in number of states.
// Params: 	workLimit – Maximum amount of "work" that the powerset construction will spend before
//
//	failing with ErrTooComplexToDeterminize. Higher numbers allow this operation to consume more
//	memory and CPU but allow more complex automatons. Use DEFAULT_DETERMINIZE_WORK_LIMIT as a decent
//	default if you don't otherwise know what to specify.
func Determinize(a *Automaton, workLimit int) (*Automaton, error) {
	if a.IsDeterministic() {
		return a, nil
	}
	if a.GetNumStates() == 0 {
		return nil, fmt.Errorf("%w: automaton has no states", ErrInvalidAutomaton)
	}

	effortLimit := workLimit * 10
	effortSpent := 0
	numLabels := a.alphabet.Size()

	b := NewBuilder(a.alphabet)

	initial := NewStateSet()
	for _, s := range a.GetInitialStates() {
		initial.Add(s)
	}
	initialSet := initial.Freeze(b.CreateState())
	b.SetInitial(initialSet.state, true)

	newState := NewHashMap[int](WithCapacity(16))
	newState.Set(initialSet, initialSet.state)

	worklist := []*FrozenIntSet{initialSet}
	statesSet := NewStateSet()

	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]

		effortSpent += s.Size()
		if effortSpent >= effortLimit {
			return nil, fmt.Errorf("%w: work limit %d exceeded after %d states", ErrTooComplexToDeterminize, workLimit, b.GetNumStates())
		}

		for _, q := range s.values {
			if a.IsAccept(q) {
				b.SetAccept(s.state, true)
				break
			}
		}

		for label := 0; label < numLabels; label++ {
			statesSet.Reset()
			for _, q := range s.values {
				from, to := a.labelRange(q, label)
				first := a.states[2*q]
				for i := from; i < to; i++ {
					statesSet.Add(a.transitions[first+2*i])
				}
			}
			if statesSet.Size() == 0 {
				continue
			}

			q, ok := newState.Get(statesSet)
			if !ok {
				q = b.CreateState()
				p := statesSet.Freeze(q)
				worklist = append(worklist, p)
				newState.Set(p, q)
			}
			if err := b.AddTransition(s.state, label, q); err != nil {
				return nil, err
			}
		}
	}

	result := b.Finish()
	u.Debugf("determinized %d states into %d subset states", a.GetNumStates(), result.GetNumStates())
	return result, nil
}

// IsEmpty
// Returns true if the given automaton accepts no strings.
func IsEmpty(a *Automaton) bool {
	if a.GetNumStates() == 0 {
		// Common case: no states
		return true
	}
	return getLiveStatesFromInitial(a).Intersection(a.getAcceptStates()).None()
}

// IsTotal
// Returns true if the given automaton accepts all strings.
func IsTotal(a *Automaton, determinizeWorkLimit int) (bool, error) {
	m, err := Minimize(a, determinizeWorkLimit)
	if err != nil {
		return false, err
	}
	return m.GetNumStates() == 1 && m.IsAccept(0), nil
}

// Totalize Completes the automaton: a non-accepting sink state is added and every missing
// (state, label) move leads to it. A complete automaton is returned as is.
func Totalize(a *Automaton) *Automaton {
	if a.IsComplete() {
		return a
	}

	numStates := a.GetNumStates()
	numLabels := a.alphabet.Size()

	b := NewBuilder(a.alphabet)
	b.CopyStates(a)
	copyInitial(b, a, 0)

	deadState := b.CreateState()
	for label := 0; label < numLabels; label++ {
		_ = b.AddTransition(deadState, label, deadState)
	}

	for s := 0; s < numStates; s++ {
		for label := 0; label < numLabels; label++ {
			if from, to := a.labelRange(s, label); from == to {
				_ = b.AddTransition(s, label, deadState)
			}
		}
	}

	if a.ids != nil {
		b.setIDs(append(slices.Clone(a.ids), slices.Max(a.ids)+1))
	}
	return b.Finish()
}

// Complement Returns the automaton accepting exactly the words a rejects. The input must be
// deterministic and complete, see Determinize and Totalize.
func Complement(a *Automaton) (*Automaton, error) {
	if !a.IsDeterministic() {
		return nil, fmt.Errorf("%w: cannot complement", ErrNotDeterministic)
	}
	if !a.IsComplete() {
		return nil, fmt.Errorf("%w: cannot complement", ErrNotComplete)
	}

	b := NewBuilder(a.alphabet)
	b.CopyStates(a)
	copyInitial(b, a, 0)
	for p := 0; p < a.GetNumStates(); p++ {
		b.SetAccept(p, !a.IsAccept(p))
	}
	if a.ids != nil {
		b.setIDs(slices.Clone(a.ids))
	}
	return b.Finish(), nil
}

// Combiner Decides whether a product state accepts from the acceptance of its two components.
type Combiner func(acceptA, acceptB bool) bool

var (
	// And Accepts when both operands accept: intersection.
	And Combiner = func(a, b bool) bool { return a && b }

	// Or Accepts when either operand accepts: union.
	Or Combiner = func(a, b bool) bool { return a || b }

	// Xor Accepts when exactly one operand accepts: symmetric difference.
	Xor Combiner = func(a, b bool) bool { return a != b }

	// AndNot Accepts when only the first operand accepts: difference.
	AndNot Combiner = func(a, b bool) bool { return a && !b }
)

type intPair struct {
	n1 int
	n2 int
}

// Product Builds the product of two deterministic automata over the same alphabet. Its states are
// the pairs of states reachable from the pair of initial states, a pair moves on a label to the
// pair of the moves of its components, and it accepts when combine says so. Both operands are
// totalized first, so a missing move of one operand still lets the other one decide.
func Product(a1, a2 *Automaton, combine Combiner) (*Automaton, error) {
	if err := sameAlphabet(a1, a2); err != nil {
		return nil, err
	}
	if !a1.IsDeterministic() || !a2.IsDeterministic() {
		return nil, fmt.Errorf("%w: product operands", ErrNotDeterministic)
	}

	a1, a2 = Totalize(a1), Totalize(a2)
	numLabels := a1.alphabet.Size()

	b := NewBuilder(a1.alphabet)
	newState := make(map[intPair]int)

	start := intPair{a1.GetInitialState(), a2.GetInitialState()}
	newState[start] = b.CreateState()
	b.SetInitial(newState[start], true)

	worklist := []intPair{start}
	for len(worklist) > 0 {
		p := worklist[0]
		worklist = worklist[1:]

		s := newState[p]
		b.SetAccept(s, combine(a1.IsAccept(p.n1), a2.IsAccept(p.n2)))

		for label := 0; label < numLabels; label++ {
			next := intPair{a1.Step(p.n1, label), a2.Step(p.n2, label)}
			q, ok := newState[next]
			if !ok {
				q = b.CreateState()
				newState[next] = q
				worklist = append(worklist, next)
			}
			if err := b.AddTransition(s, label, q); err != nil {
				return nil, err
			}
		}
	}

	return b.Finish(), nil
}

// Intersection Returns a deterministic automaton accepting the words both a1 and a2 accept.
func Intersection(a1, a2 *Automaton, determinizeWorkLimit int) (*Automaton, error) {
	return combineDeterminized(a1, a2, And, determinizeWorkLimit)
}

// Union Returns a deterministic automaton accepting the words a1 or a2 accept.
func Union(a1, a2 *Automaton, determinizeWorkLimit int) (*Automaton, error) {
	return combineDeterminized(a1, a2, Or, determinizeWorkLimit)
}

// SymmetricDifference Returns a deterministic automaton accepting the words exactly one of a1 and
// a2 accepts.
func SymmetricDifference(a1, a2 *Automaton, determinizeWorkLimit int) (*Automaton, error) {
	return combineDeterminized(a1, a2, Xor, determinizeWorkLimit)
}

// Difference Returns a deterministic automaton accepting the words a1 accepts and a2 rejects.
func Difference(a1, a2 *Automaton, determinizeWorkLimit int) (*Automaton, error) {
	return combineDeterminized(a1, a2, AndNot, determinizeWorkLimit)
}

func combineDeterminized(a1, a2 *Automaton, combine Combiner, determinizeWorkLimit int) (*Automaton, error) {
	if err := sameAlphabet(a1, a2); err != nil {
		return nil, err
	}
	d1, err := Determinize(a1, determinizeWorkLimit)
	if err != nil {
		return nil, err
	}
	d2, err := Determinize(a2, determinizeWorkLimit)
	if err != nil {
		return nil, err
	}
	return Product(d1, d2, combine)
}

// SameLanguage Returns true if a1 and a2 accept the same words.
func SameLanguage(a1, a2 *Automaton, determinizeWorkLimit int) (bool, error) {
	d, err := SymmetricDifference(a1, a2, determinizeWorkLimit)
	if err != nil {
		return false, err
	}
	return IsEmpty(d), nil
}

// RemoveDeadStates Returns an equivalent automaton keeping only the initial states and the states
// that are reachable from an initial state and can reach an accept state.
func RemoveDeadStates(a *Automaton) *Automaton {
	numStates := a.GetNumStates()
	liveSet := getLiveStates(a)
	liveSet.InPlaceUnion(a.isInitial)

	mp := make([]int, numStates)
	b := NewBuilder(a.alphabet)
	var ids []int
	for i := 0; i < numStates; i++ {
		if liveSet.Test(uint(i)) {
			mp[i] = b.CreateState()
			b.SetAccept(mp[i], a.IsAccept(i))
			b.SetInitial(mp[i], a.IsInitial(i))
			ids = append(ids, a.StateID(i))
		}
	}

	t := NewTransition()
	for i := 0; i < numStates; i++ {
		if !liveSet.Test(uint(i)) {
			continue
		}
		count := a.InitTransition(i, t)
		// filter out transitions to dead states:
		for j := 0; j < count; j++ {
			a.GetNextTransition(t)
			if liveSet.Test(uint(t.Dest)) {
				_ = b.AddTransition(mp[i], t.Label, mp[t.Dest])
			}
		}
	}

	if a.ids != nil {
		b.setIDs(ids)
	}
	return b.Finish()
}

// Returns the states that are reachable from an initial state and can reach an accept state.
func getLiveStates(a *Automaton) *bitset.BitSet {
	live := getLiveStatesFromInitial(a)
	live.InPlaceIntersection(getLiveStatesToAccept(a))
	return live
}

func getLiveStatesFromInitial(a *Automaton) *bitset.BitSet {
	numStates := a.GetNumStates()
	live := bitset.New(uint(numStates))
	workList := a.GetInitialStates()
	for _, s := range workList {
		live.Set(uint(s))
	}

	t := NewTransition()
	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			if !live.Test(uint(t.Dest)) {
				live.Set(uint(t.Dest))
				workList = append(workList, t.Dest)
			}
		}
	}

	return live
}

func getLiveStatesToAccept(a *Automaton) *bitset.BitSet {
	numStates := a.GetNumStates()

	// Reverse the edges once:
	predecessors := make([][]int, numStates)
	t := NewTransition()
	for s := 0; s < numStates; s++ {
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			predecessors[t.Dest] = append(predecessors[t.Dest], s)
		}
	}

	live := bitset.New(uint(numStates))
	workList := a.GetAcceptStates()
	for _, s := range workList {
		live.Set(uint(s))
	}
	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		for _, p := range predecessors[s] {
			if !live.Test(uint(p)) {
				live.Set(uint(p))
				workList = append(workList, p)
			}
		}
	}

	return live
}

// Concatenate Returns an automaton accepting the concatenations of words of the given automata,
// in order. The result is generally nondeterministic.
func Concatenate(automatons ...*Automaton) (*Automaton, error) {
	if len(automatons) == 0 {
		return nil, fmt.Errorf("%w: nothing to concatenate", ErrInvalidAutomaton)
	}

	result := automatons[0]
	for _, next := range automatons[1:] {
		if err := sameAlphabet(result, next); err != nil {
			return nil, err
		}
		result = concatenate(result, next)
	}
	return result, nil
}

func concatenate(a1, a2 *Automaton) *Automaton {
	b := NewBuilder(a1.alphabet)
	b.CopyStates(a1)
	offset := b.CopyStates(a2)

	initials2 := a2.GetInitialStates()
	copyInitial(b, a1, 0)
	if acceptsEmptyString(a1) {
		copyInitial(b, a2, offset)
	}

	// Words of a1 only end in an accept state of the result if a2 accepts the empty string:
	if !acceptsEmptyString(a2) {
		for _, s := range a1.GetAcceptStates() {
			b.SetAccept(s, false)
		}
	}

	// Link every move into an accept state of a1 to the initial states of a2 as well:
	t := NewTransition()
	for s := 0; s < a1.GetNumStates(); s++ {
		count := a1.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a1.GetNextTransition(t)
			if !a1.IsAccept(t.Dest) {
				continue
			}
			for _, q := range initials2 {
				_ = b.AddTransition(s, t.Label, offset+q)
			}
		}
	}

	return b.Finish()
}

// Repeat Returns an automaton accepting the Kleene star of the language of a.
func Repeat(a *Automaton) *Automaton {
	b := NewBuilder(a.alphabet)
	start := b.CreateState()
	b.SetInitial(start, true)
	b.SetAccept(start, true)
	offset := b.CopyStates(a)

	// start behaves like every initial state of a, and every move completing a word may also
	// restart at start.
	t := NewTransition()
	for s := 0; s < a.GetNumStates(); s++ {
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			sources := []int{offset + s}
			if a.IsInitial(s) {
				sources = append(sources, start)
			}
			dests := []int{offset + t.Dest}
			if a.IsAccept(t.Dest) {
				dests = append(dests, start)
			}
			for _, p := range sources {
				for _, q := range dests {
					_ = b.AddTransition(p, t.Label, q)
				}
			}
		}
	}

	return b.Finish()
}

// Optional Returns an automaton accepting the language of a plus the empty string.
func Optional(a *Automaton) *Automaton {
	if acceptsEmptyString(a) {
		return a
	}
	b := NewBuilder(a.alphabet)
	b.CopyStates(a)
	copyInitial(b, a, 0)
	s := b.CreateState()
	b.SetInitial(s, true)
	b.SetAccept(s, true)
	return b.Finish()
}

// Reverse Returns an automaton accepting the reversed words of a.
func Reverse(a *Automaton) *Automaton {
	if a.getAcceptStates().None() {
		return NewAutomata(a.alphabet).MakeEmpty()
	}

	numStates := a.GetNumStates()
	b := NewBuilder(a.alphabet)
	for s := 0; s < numStates; s++ {
		b.CreateState()
		b.SetInitial(s, a.IsAccept(s))
		b.SetAccept(s, a.IsInitial(s))
	}

	t := NewTransition()
	for s := 0; s < numStates; s++ {
		count := a.InitTransition(s, t)
		for i := 0; i < count; i++ {
			a.GetNextTransition(t)
			_ = b.AddTransition(t.Dest, t.Label, s)
		}
	}

	if a.ids != nil {
		b.setIDs(slices.Clone(a.ids))
	}
	return b.Finish()
}

func acceptsEmptyString(a *Automaton) bool {
	return a.isInitial.IntersectionCardinality(a.isAccept) > 0
}

func copyInitial(b *Builder, a *Automaton, offset int) {
	for _, s := range a.GetInitialStates() {
		b.SetInitial(offset+s, true)
	}
}
