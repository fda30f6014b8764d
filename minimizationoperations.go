package wofa

import (
	"slices"

	u "github.com/araddon/gou"
)

// Minimize
// Minimizes (and determinizes if not already deterministic) the given automaton. Dead states are
// dropped, the automaton is totalized and the partition {accept, reject} is refined until no class
// holds two states that move into different classes on the same label. Every class becomes one
// state of the result; classes are numbered breadth first from the initial class, so the result
// is the canonical minimal complete automaton and state 0 is its initial state.
func Minimize(a *Automaton, determinizeWorkLimit int) (*Automaton, error) {
	d, err := Determinize(a, determinizeWorkLimit)
	if err != nil {
		return nil, err
	}
	d = Totalize(RemoveDeadStates(d))

	classOf, numClasses := refinePartition(d)

	// Any member of a class represents it:
	rep := make([]int, numClasses)
	for s, c := range classOf {
		rep[c] = s
	}

	newID := make([]int, numClasses)
	for i := range newID {
		newID[i] = -1
	}

	b := NewBuilder(d.alphabet)
	numLabels := d.alphabet.Size()

	first := classOf[d.GetInitialState()]
	newID[first] = b.CreateState()
	b.SetInitial(newID[first], true)

	worklist := []int{first}
	for len(worklist) > 0 {
		c := worklist[0]
		worklist = worklist[1:]

		s := rep[c]
		b.SetAccept(newID[c], d.IsAccept(s))
		for label := 0; label < numLabels; label++ {
			dc := classOf[d.Step(s, label)]
			if newID[dc] == -1 {
				newID[dc] = b.CreateState()
				worklist = append(worklist, dc)
			}
			if err := b.AddTransition(newID[c], label, newID[dc]); err != nil {
				return nil, err
			}
		}
	}

	result := b.Finish()
	u.Debugf("minimized %d states into %d", a.GetNumStates(), result.GetNumStates())
	return result, nil
}

// Refines the partition of the states of the complete deterministic automaton d into classes of
// equivalent states. Returns the class of every state and the number of classes.
func refinePartition(d *Automaton) ([]int, int) {
	numStates := d.GetNumStates()
	numLabels := d.alphabet.Size()
	width := numLabels + 1

	classOf := make([]int, numStates)
	numClasses := 1
	if d.getAcceptStates().Count() > 0 && int(d.getAcceptStates().Count()) < numStates {
		numClasses = 2
		for s := 0; s < numStates; s++ {
			if d.IsAccept(s) {
				classOf[s] = 1
			}
		}
	}

	// signatures holds, per state, its current class followed by the classes of its successors.
	signatures := make([]int, numStates*width)
	signature := func(s int) []int {
		return signatures[s*width : (s+1)*width]
	}
	order := make([]int, numStates)
	for i := range order {
		order[i] = i
	}

	for {
		for s := 0; s < numStates; s++ {
			sig := signature(s)
			sig[0] = classOf[s]
			for label := 0; label < numLabels; label++ {
				sig[label+1] = classOf[d.Step(s, label)]
			}
		}

		slices.SortFunc(order, func(x, y int) int {
			return slices.Compare(signature(x), signature(y))
		})

		// States with equal signatures share a class; the old class leads the signature, so
		// classes only ever split.
		next := 0
		classOf[order[0]] = 0
		for i := 1; i < numStates; i++ {
			if !slices.Equal(signature(order[i]), signature(order[i-1])) {
				next++
			}
			classOf[order[i]] = next
		}

		if next+1 == numClasses {
			return classOf, numClasses
		}
		numClasses = next + 1
	}
}
